package services

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const onePixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABAgMAAABieywaAAAACVBMVEUAAAD///9fX1/S0ecCAAAACXBIWXMAAA7EAAAOxAGVKw4bAAAACklEQVQImWNoAAAAggCByxOyYQAAAABJRU5ErkJggg=="

func TestDecodeImage(t *testing.T) {
	pngData, err := base64.StdEncoding.DecodeString(onePixelPNG)
	require.NoError(t, err)

	tests := []struct {
		name        string
		uri         string
		contentType string
		ext         string
		data        []byte
		wantErr     error
	}{
		{name: "png", uri: "data:image/png;base64," + onePixelPNG, contentType: "image/png", ext: "png", data: pngData},
		{name: "jpeg", uri: "data:image/jpeg;base64,/9j/4AAQSkZJRg==", contentType: "image/jpeg", ext: "jpg", data: []byte("\xff\xd8\xff\xe0\x00\x10JFIF")},
		{name: "gif", uri: "data:image/gif;base64,R0lGODlhAQABAA==", contentType: "image/gif", ext: "gif", data: []byte("GIF89a\x01\x00\x01\x00")},
		{name: "webp", uri: "data:image/webp;base64,UklGRhoAAABXRUJQVlA4IA==", contentType: "image/webp", ext: "webp", data: []byte("RIFF\x1a\x00\x00\x00WEBPVP8 ")},
		{name: "declared type is ignored", uri: "data:image/gif;base64," + onePixelPNG, contentType: "image/png", ext: "png", data: pngData},
		{
			name:    "svg with script",
			uri:     "data:image/svg+xml;base64,PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciPjxzY3JpcHQ+YWxlcnQoMSk8L3NjcmlwdD48L3N2Zz4=",
			wantErr: errUnsupportedImage,
		},
		{name: "html labelled as png", uri: "data:image/png;base64,PGh0bWw+PHNjcmlwdD5hbGVydCgxKTwvc2NyaXB0PjwvaHRtbD4=", wantErr: errUnsupportedImage},
		{name: "plain text labelled as png", uri: "data:image/png;base64,aGVsbG8=", wantErr: errUnsupportedImage},
		{name: "plain url", uri: "http://example.com/a.png", wantErr: errInvalidImageURI},
		{name: "not an image", uri: "data:text/plain;base64,aGVsbG8=", wantErr: errInvalidImageURI},
		{name: "bad payload", uri: "data:image/png;base64,!!!", wantErr: errInvalidImagePayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := decodeImage(tt.uri)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, img)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.contentType, img.contentType)
			assert.Equal(t, tt.ext, img.ext)
			assert.Equal(t, tt.data, img.data)
		})
	}
}

func TestStoreImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockImageStore(ctrl)
	store.EXPECT().Save(gomock.Any(), gomock.Any(), "image/png", []byte("hello")).
		DoAndReturn(func(_ context.Context, key, _ string, _ []byte) (string, error) {
			return "/media/" + key, nil
		})

	url, err := storeImage(context.Background(), store, &decodedImage{contentType: "image/png", ext: "png", data: []byte("hello")})
	require.NoError(t, err)
	assert.Regexp(t, `^/media/recipes/images/.+\.png$`, url)
}
