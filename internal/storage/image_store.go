package storage

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrInvalidImage is returned when an upload payload does not decode as a
// supported raster image
var ErrInvalidImage = errors.New("payload is not a valid image")

// recipeUploadDir is the namespace for recipe images under the media root
const recipeUploadDir = "uploads/recipe"

// ImageStore writes validated recipe images under a media root directory.
// Filenames are random tokens so uploads never collide or leak the original
// name; only the extension of the uploaded file is preserved.
type ImageStore struct {
	root string
}

// NewImageStore creates a store rooted at the given media directory
func NewImageStore(root string) *ImageStore {
	return &ImageStore{root: root}
}

// SaveRecipeImage validates that data decodes as an image and writes it to
// uploads/recipe/<random-token><ext>. It returns the path relative to the
// media root, which is what gets persisted on the recipe row.
func (s *ImageStore) SaveRecipeImage(originalName string, data []byte) (string, error) {
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", ErrInvalidImage
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	relPath := filepath.ToSlash(filepath.Join(recipeUploadDir, uuid.NewString()+ext))

	fullPath := filepath.Join(s.root, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", err
	}
	return relPath, nil
}

// Remove deletes a previously stored image. A missing file is not an error:
// the reference may point at a file that was already cleaned up.
func (s *ImageStore) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, relPath))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
