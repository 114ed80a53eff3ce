package images

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringUpload(name, body string) Upload {
	return Upload{
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}

func TestDiskUploadAndDestroy(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	d, err := NewDisk(dir, "http://localhost:3000/")
	require.NoError(t, err)

	img, err := d.Upload(context.Background(), stringUpload("Tent.JPG", "jpeg-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(img.Filename, ".jpg"))
	assert.Equal(t, "http://localhost:3000/uploads/"+img.Filename, img.URL)

	data, err := os.ReadFile(filepath.Join(dir, img.Filename))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	require.NoError(t, d.Destroy(context.Background(), img.Filename))
	_, err = os.Stat(filepath.Join(dir, img.Filename))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, d.Destroy(context.Background(), img.Filename))
}

func TestDiskRejectsUnsupportedFormat(t *testing.T) {
	d, err := NewDisk(t.TempDir(), "")
	require.NoError(t, err)

	_, err = d.Upload(context.Background(), stringUpload("notes.txt", "text"))
	assert.Error(t, err)

	entries, err := os.ReadDir(d.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDiskDestroyStaysInsideDir(t *testing.T) {
	parent := t.TempDir()
	outside := filepath.Join(parent, "keep.png")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0644))

	d, err := NewDisk(filepath.Join(parent, "uploads"), "")
	require.NoError(t, err)
	require.NoError(t, d.Destroy(context.Background(), "../keep.png"))

	_, err = os.Stat(outside)
	assert.NoError(t, err)
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check([]Upload{{Name: "a.png"}, {Name: "b.jpeg"}}))
	assert.Error(t, Check([]Upload{{Name: "a.png"}, {Name: "b.gif"}}))
}
