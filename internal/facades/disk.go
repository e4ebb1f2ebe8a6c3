package facades

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/sbilibin2017/foodgram/internal/logger"
)

// DiskImageFacade stores recipe images under a local media directory that
// the server exposes at baseURL.
type DiskImageFacade struct {
	root    string
	baseURL string
}

func NewDiskImageFacade(root, baseURL string) *DiskImageFacade {
	return &DiskImageFacade{
		root:    root,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Save writes data to root/key and returns the URL it is served at.
// contentType is implied by the key extension.
func (f *DiskImageFacade) Save(ctx context.Context, key, contentType string, data []byte) (string, error) {
	path := filepath.Join(f.root, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Log.Errorw("failed to create media directory", "path", path, "error", err)
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		logger.Log.Errorw("failed to write image", "path", path, "error", err)
		return "", err
	}

	url := f.baseURL + "/" + key
	logger.Log.Debugw("image stored", "path", path, "size", len(data), "url", url)
	return url, nil
}
