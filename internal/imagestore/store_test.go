package imagestore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/content-pipeline/internal/content"
)

func TestSanitizeTopic(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Social Media Marketing", "social_media_marketing"},
		{"Launch", "launch"},
		{"a/b\\c", "abc"},
		{`What's "new"?`, "whats_new"},
		{"  padded  ", "padded"},
		{"", "content"},
		{"///", "content"},
		{strings.Repeat("long topic ", 10), strings.Repeat("long_topic_", 10)[:50]},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeTopic(tt.input); got != tt.expected {
				t.Errorf("SanitizeTopic(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	got := Filename("Social Media Marketing", "abc-123", "png")
	if got != "social_media_marketing_abc-123.png" {
		t.Errorf("Filename = %q, want %q", got, "social_media_marketing_abc-123.png")
	}
}

func TestFilename_DefaultsFormat(t *testing.T) {
	if got := Filename("Launch", "abc-123", ""); got != "launch_abc-123.png" {
		t.Errorf("Filename = %q", got)
	}
}

func TestStoreSave(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	id := uuid.New()

	path, err := store.Save(&content.Image{Bytes: []byte("png-bytes"), Format: "png"}, id, "Launch")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "launch_"+id.String()+".png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestStoreSave_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "images")
	store := New(dir)

	_, err := store.Save(&content.Image{Bytes: []byte("x"), Format: "png"}, uuid.New(), "Launch")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStoreSave_NoTempRemnants(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)

	_, err := store.Save(&content.Image{Bytes: []byte("x"), Format: "png"}, uuid.New(), "Launch")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Name(), ".tmp-")
}

func TestStoreSave_DistinctPerEntry(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)

	a, err := store.Save(&content.Image{Bytes: []byte("a"), Format: "png"}, uuid.New(), "Same Topic")
	require.NoError(t, err)
	b, err := store.Save(&content.Image{Bytes: []byte("b"), Format: "png"}, uuid.New(), "Same Topic")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestStoreSave_UnwritableDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}

	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	store := New(filepath.Join(dir, "images"))
	_, err := store.Save(&content.Image{Bytes: []byte("x"), Format: "png"}, uuid.New(), "Launch")
	require.Error(t, err)

	var serr *StorageError
	assert.ErrorAs(t, err, &serr)
}
