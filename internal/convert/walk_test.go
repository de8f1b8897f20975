// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/to-texts/internal/fixture"
	"github.com/pdiddy/to-texts/pkg/types"
)

func collect(t *testing.T, root string) []types.Document {
	t.Helper()
	var docs []types.Document
	require.NoError(t, Walk(root, zap.NewNop(), func(d types.Document) {
		docs = append(docs, d)
	}))
	return docs
}

func TestWalk_FindsSupportedFilesInOrder(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"b.pdf", "a.EPUB", "sub/deeper/c.Pdf", "sub/readme.md", "z.txt", ".pdf"} {
		require.NoError(t, fixture.WriteFile(filepath.Join(root, name), []byte("x")))
	}

	docs := collect(t, root)

	assert.Equal(t, []types.Document{
		{Path: filepath.Join(root, "a.EPUB"), Format: types.FormatEPUB},
		{Path: filepath.Join(root, "b.pdf"), Format: types.FormatPDF},
		{Path: filepath.Join(root, "sub", "deeper", "c.Pdf"), Format: types.FormatPDF},
	}, docs)
}

func TestWalk_TargetIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "single.pdf")
	require.NoError(t, fixture.WriteFile(path, []byte("x")))

	docs := collect(t, path)
	assert.Equal(t, []types.Document{{Path: path, Format: types.FormatPDF}}, docs)
}

func TestWalk_FollowsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}

	outside := t.TempDir()
	require.NoError(t, fixture.WriteFile(filepath.Join(outside, "linked.epub"), []byte("x")))
	require.NoError(t, fixture.WriteFile(filepath.Join(outside, "target.pdf"), []byte("x")))

	root := t.TempDir()
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "dirlink")))
	require.NoError(t, os.Symlink(filepath.Join(outside, "target.pdf"), filepath.Join(root, "filelink.pdf")))
	require.NoError(t, os.Symlink(filepath.Join(root, "nowhere"), filepath.Join(root, "dangling.pdf")))
	// A link back to root must not recurse forever.
	require.NoError(t, os.Symlink(root, filepath.Join(root, "loop")))

	docs := collect(t, root)

	assert.Equal(t, []types.Document{
		{Path: filepath.Join(root, "dirlink", "linked.epub"), Format: types.FormatEPUB},
		{Path: filepath.Join(root, "dirlink", "target.pdf"), Format: types.FormatPDF},
		{Path: filepath.Join(root, "filelink.pdf"), Format: types.FormatPDF},
	}, docs)
}

func TestWalk_MissingRoot(t *testing.T) {
	err := Walk(filepath.Join(t.TempDir(), "missing"), zap.NewNop(), func(types.Document) {})
	assert.Error(t, err)
}
