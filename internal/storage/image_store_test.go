package storage

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T) []byte {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 10, 10))))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T) []byte {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 10, 10)), nil))
	return buf.Bytes()
}

func TestSaveRecipeImage(t *testing.T) {
	root := t.TempDir()
	store := NewImageStore(root)

	relPath, err := store.SaveRecipeImage("myimage.png", encodePNG(t))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(relPath, "uploads/recipe/"), "got %q", relPath)
	assert.True(t, strings.HasSuffix(relPath, ".png"), "got %q", relPath)
	// The original basename never leaks into the stored name
	assert.NotContains(t, relPath, "myimage")

	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(relPath)))
	assert.NoError(t, err)
}

func TestSaveRecipeImageUniqueNames(t *testing.T) {
	store := NewImageStore(t.TempDir())

	first, err := store.SaveRecipeImage("a.jpg", encodeJPEG(t))
	require.NoError(t, err)
	second, err := store.SaveRecipeImage("a.jpg", encodeJPEG(t))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSaveRecipeImageRejectsNonImage(t *testing.T) {
	root := t.TempDir()
	store := NewImageStore(root)

	_, err := store.SaveRecipeImage("notimage.txt", []byte("NotAnImage"))
	assert.ErrorIs(t, err, ErrInvalidImage)

	// Nothing gets written for a rejected payload
	_, err = os.Stat(filepath.Join(root, "uploads", "recipe"))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveRecipeImageNormalizesExtension(t *testing.T) {
	store := NewImageStore(t.TempDir())

	relPath, err := store.SaveRecipeImage("SHOUTY.PNG", encodePNG(t))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(relPath, ".png"), "got %q", relPath)
}

func TestRemove(t *testing.T) {
	root := t.TempDir()
	store := NewImageStore(root)

	relPath, err := store.SaveRecipeImage("a.png", encodePNG(t))
	require.NoError(t, err)

	require.NoError(t, store.Remove(relPath))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(relPath)))
	assert.True(t, os.IsNotExist(err))

	// Removing again, or removing a blank reference, is a no-op
	assert.NoError(t, store.Remove(relPath))
	assert.NoError(t, store.Remove(""))
}
