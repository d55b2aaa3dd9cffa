package services

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"DirectChat/models"

	"github.com/stretchr/testify/require"
)

var (
	gifHeader = []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;")
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
)

func TestSaveDetectsKind(t *testing.T) {
	dir := t.TempDir()
	store, err := NewMediaStorage(dir, "http://localhost:3000/", 1024)
	require.NoError(t, err)

	gif, err := store.Save(bytes.NewReader(gifHeader))
	require.NoError(t, err)
	require.Equal(t, models.KindGIF, gif.Kind)
	require.True(t, strings.HasPrefix(gif.URL, "http://localhost:3000/uploads/media/"))
	require.True(t, strings.HasSuffix(gif.Filename, ".gif"))

	png, err := store.Save(bytes.NewReader(pngHeader))
	require.NoError(t, err)
	require.Equal(t, models.KindImage, png.Kind)

	onDisk, err := os.ReadFile(filepath.Join(dir, "media", png.Filename))
	require.NoError(t, err)
	require.Equal(t, pngHeader, onDisk)
}

func TestSaveRejects(t *testing.T) {
	store, err := NewMediaStorage(t.TempDir(), "", 16)
	require.NoError(t, err)

	_, err = store.Save(strings.NewReader("just some text"))
	require.ErrorIs(t, err, ErrUnsupportedMedia)

	_, err = store.Save(bytes.NewReader(append(append([]byte{}, gifHeader...), make([]byte, 32)...)))
	require.ErrorIs(t, err, ErrMediaTooLarge)
}
