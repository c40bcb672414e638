package images

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.jpg", "b.png", "c.JPEG", "notes.txt", "noext"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "d"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "e.jpg"), 0755))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	got := Filter(entries, dir, DefaultExtensions)

	assert.Equal(t, []Image{
		{Name: "a.jpg", Path: filepath.Join(dir, "a.jpg"), Ext: ".jpg"},
		{Name: "c.JPEG", Path: filepath.Join(dir, "c.JPEG"), Ext: ".jpeg"},
	}, got)
}

func TestFilter_SkipsSymlinks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "real.jpg"), []byte("x"), 0644))
	if err := os.Symlink(filepath.Join(dir, "real.jpg"), filepath.Join(dir, "link.jpg")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	got := Filter(entries, dir, DefaultExtensions)
	require.Len(t, got, 1)
	assert.Equal(t, "real.jpg", got[0].Name)
}

func TestFilter_Empty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.png"), []byte("png"), 0644))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	assert.Empty(t, Filter(entries, dir, DefaultExtensions))
}

func TestFilter_CustomExtensions(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.jpg", "b.PNG"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0644))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	got := Filter(entries, dir, []string{"png"})
	require.Len(t, got, 1)
	assert.Equal(t, "b.PNG", got[0].Name)
	assert.Equal(t, ".jpg", got[0].Ext)
}

func TestNormalizeExtensions(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "already normal", in: []string{".jpg", ".jpeg"}, want: []string{".jpg", ".jpeg"}},
		{name: "missing dots and case", in: []string{"JPG", " Jpeg "}, want: []string{".jpg", ".jpeg"}},
		{name: "duplicates and blanks", in: []string{".jpg", "", "jpg", "."}, want: []string{".jpg"}},
		{name: "nil", in: nil, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeExtensions(tt.in))
		})
	}
}

func TestOutputExt(t *testing.T) {
	tests := map[string]string{
		"a.jpg":      ".jpg",
		"a.JPG":      ".jpg",
		"a.jpeg":     ".jpeg",
		"a.JPEG":     ".jpeg",
		"a.jpeg.jpg": ".jpg",
		"a.png":      ".jpg",
	}
	for name, want := range tests {
		assert.Equal(t, want, OutputExt(name), name)
	}
}
