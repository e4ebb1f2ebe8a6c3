package services

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=image.go -destination=image_mock.go -package=services

// ImageStore saves image bytes and returns their public URL.
type ImageStore interface {
	Save(ctx context.Context, key, contentType string, data []byte) (string, error)
}

const imageKeyPrefix = "recipes/images/"

var (
	errInvalidImageURI     = errors.New("expected a base64 encoded data:image URI")
	errInvalidImagePayload = errors.New("image payload is not valid base64")
	errUnsupportedImage    = errors.New("upload a valid image: jpeg, png, gif or webp")
)

// imageExtensions lists the accepted content types, as sniffed from the
// payload, with their file extensions.
var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

var dataURIPattern = regexp.MustCompile(`^data:image/([a-zA-Z0-9.+-]+);base64,(.+)$`)

// decodedImage is an image submitted as a base64 data URI.
type decodedImage struct {
	contentType string
	ext         string
	data        []byte
}

// decodeImage parses a data:image/<type>;base64,<payload> string. The
// declared type is ignored: the content type comes from the payload itself
// and must be one of imageExtensions.
func decodeImage(uri string) (*decodedImage, error) {
	m := dataURIPattern.FindStringSubmatch(strings.TrimSpace(uri))
	if m == nil {
		return nil, errInvalidImageURI
	}

	data, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil || len(data) == 0 {
		return nil, errInvalidImagePayload
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, errUnsupportedImage
	}

	return &decodedImage{
		contentType: contentType,
		ext:         ext,
		data:        data,
	}, nil
}

// storeImage saves img under a fresh key.
func storeImage(ctx context.Context, store ImageStore, img *decodedImage) (string, error) {
	key := imageKeyPrefix + uuid.NewString() + "." + img.ext
	return store.Save(ctx, key, img.contentType, img.data)
}
