package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreSaveAndRemove(t *testing.T) {
	root := t.TempDir()
	store := LocalStore{Root: root}

	ref, err := store.Save(DocumentsPrefix, "soat 2025.PDF", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, DocumentsPrefix+"/"))
	assert.True(t, strings.HasSuffix(ref, "_soat_2025.pdf"))

	body, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(ref)))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(body))

	require.NoError(t, store.Remove(ref))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(ref)))
	assert.True(t, os.IsNotExist(err))

	// second remove is a no-op
	assert.NoError(t, store.Remove(ref))
}

func TestLocalStoreRemoveRejectsEscapes(t *testing.T) {
	store := LocalStore{Root: t.TempDir()}
	assert.Error(t, store.Remove("../etc/passwd"))
	assert.Error(t, store.Remove("/etc/passwd"))
}
