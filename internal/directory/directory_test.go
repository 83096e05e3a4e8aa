package directory_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandeptwidyaop/launchpad/internal/config"
	"github.com/pandeptwidyaop/launchpad/internal/directory"
)

func makeEntries(t *testing.T, dir string, dirs []string, files []string) {
	t.Helper()
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, d), 0755))
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("x"), 0644))
	}
}

func TestList_FiltersBundles(t *testing.T) {
	root := t.TempDir()
	makeEntries(t, root,
		[]string{"Safari.app", "Mail.app", "Utilities", ".Hidden.app", "Notes.app"},
		[]string{"README.txt", ".app", ".DS_Store"},
	)

	d := directory.New(config.DirectoryConfig{Paths: []string{root}, Suffix: ".app"})

	apps, err := d.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Mail", "Notes", "Safari"}, apps)
}

func TestList_StripsSuffixOnce(t *testing.T) {
	root := t.TempDir()
	makeEntries(t, root, []string{"Weird.app.app"}, nil)

	d := directory.New(config.DirectoryConfig{Paths: []string{root}, Suffix: ".app"})

	apps, err := d.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Weird.app"}, apps)
}

func TestList_Idempotent(t *testing.T) {
	root := t.TempDir()
	makeEntries(t, root, []string{"B.app", "A.app", "C.app"}, nil)

	d := directory.New(config.DirectoryConfig{Paths: []string{root}, Suffix: ".app"})

	first, err := d.List(context.Background())
	require.NoError(t, err)
	second, err := d.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestList_MultipleDirectoriesKeepOrderAndDedupe(t *testing.T) {
	system := t.TempDir()
	user := t.TempDir()
	makeEntries(t, system, []string{"Zed.app", "Mail.app"}, nil)
	makeEntries(t, user, []string{"Mail.app", "Arc.app"}, nil)

	d := directory.New(config.DirectoryConfig{Paths: []string{system, user}, Suffix: ".app"})

	apps, err := d.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Mail", "Zed", "Arc"}, apps)
}

func TestList_DesktopEntries(t *testing.T) {
	root := t.TempDir()
	makeEntries(t, root, nil, []string{"firefox.desktop", "mimeinfo.cache", "org.gnome.Nautilus.desktop"})

	d := directory.New(config.DirectoryConfig{Paths: []string{root}, Suffix: ".desktop"})

	apps, err := d.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"firefox", "org.gnome.Nautilus"}, apps)
}

func TestList_MissingRequiredDirectory(t *testing.T) {
	d := directory.New(config.DirectoryConfig{
		Paths:  []string{filepath.Join(t.TempDir(), "missing")},
		Suffix: ".app",
	})

	apps, err := d.List(context.Background())
	assert.Nil(t, apps)
	assert.True(t, errors.Is(err, directory.ErrUnavailable), "got %v", err)
}

func TestList_MissingOptionalDirectoryIsSkipped(t *testing.T) {
	root := t.TempDir()
	makeEntries(t, root, []string{"Mail.app"}, nil)

	d := directory.New(config.DirectoryConfig{
		Paths:         []string{root},
		OptionalPaths: []string{filepath.Join(root, "nope")},
		Suffix:        ".app",
	})

	apps, err := d.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Mail"}, apps)
}

func TestList_EmptyDirectoryReturnsEmptySlice(t *testing.T) {
	d := directory.New(config.DirectoryConfig{Paths: []string{t.TempDir()}, Suffix: ".app"})

	apps, err := d.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, apps)
	assert.Empty(t, apps)
}

func TestList_CanceledContext(t *testing.T) {
	d := directory.New(config.DirectoryConfig{Paths: []string{t.TempDir()}, Suffix: ".app"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAppName(t *testing.T) {
	tests := []struct {
		entry string
		want  string
		ok    bool
	}{
		{"Safari.app", "Safari", true},
		{"Safari", "", false},
		{".app", "", false},
		{" .app", "", false},
		{".Trash.app", "", false},
		{"Visual Studio Code.app", "Visual Studio Code", true},
	}

	for _, tt := range tests {
		got, ok := directory.AppName(tt.entry, ".app")
		assert.Equal(t, tt.ok, ok, tt.entry)
		assert.Equal(t, tt.want, got, tt.entry)
	}
}
