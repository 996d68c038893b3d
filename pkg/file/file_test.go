package file

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	filename := path.Join(dir, "present")
	require.NoError(t, os.WriteFile(filename, []byte("x"), 0600))
	require.True(t, Exists(filename))
	require.False(t, Exists(path.Join(dir, "bogus")))
}
