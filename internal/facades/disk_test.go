package facades

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskImageFacade_Save(t *testing.T) {
	root := t.TempDir()
	facade := NewDiskImageFacade(root, "/media/")

	url, err := facade.Save(context.Background(), "recipes/images/a.jpg", "image/jpeg", []byte("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "/media/recipes/images/a.jpg", url)

	data, err := os.ReadFile(filepath.Join(root, "recipes", "images", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg"), data)
}

func TestDiskImageFacade_Save_Error(t *testing.T) {
	root := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(root, []byte("x"), 0o644))

	facade := NewDiskImageFacade(root, "/media")
	_, err := facade.Save(context.Background(), "recipes/images/a.jpg", "image/jpeg", []byte("jpeg"))
	assert.Error(t, err)
}
