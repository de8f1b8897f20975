// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fixture

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSamples(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteSamples(dir))

	for _, name := range []string{
		"papers/hello.pdf",
		"papers/corrupt.pdf",
		"books/sample.epub",
		"notes.txt",
	} {
		_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(name)))
		assert.NoError(t, err, name)
	}

	pdf, err := os.ReadFile(filepath.Join(dir, "papers", "hello.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-1.4\n")))
	assert.Contains(t, string(pdf), "/Count 2")
}

func TestWriteFile_Errors(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := WriteFile(filepath.Join(blocker, "child", "a.pdf"), []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating directory for")
}

func TestPDFWithPageCount(t *testing.T) {
	data := string(PDFWithPageCount(1))
	assert.Contains(t, data, "/Kids [] /Count 1")
	assert.Contains(t, data, "trailer\n<< /Size 3 /Root 1 0 R >>")
}
