package tempfile_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fsbench/fsbench/libs/tempfile"
)

func TestNewScratchDirUnique(t *testing.T) {
	d1, err := tempfile.NewScratchDir("tempfile-test")
	require.NoError(t, err)
	defer d1.Remove()

	d2, err := tempfile.NewScratchDir("tempfile-test")
	require.NoError(t, err)
	defer d2.Remove()

	require.NotEqual(t, d1.Root(), d2.Root())
	require.DirExists(t, d1.Root())
	require.DirExists(t, d2.Root())
}

func TestScratchDirRemove(t *testing.T) {
	d, err := tempfile.NewScratchDir("tempfile-test")
	require.NoError(t, err)

	path := d.Path("some_file")
	require.NoError(t, tempfile.WriteFile(path, []byte("payload"), 0o600))

	require.NoError(t, d.Remove())
	require.NoDirExists(t, d.Root())
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))

	// Removing twice is fine.
	require.NoError(t, d.Remove())
}

func TestWriteFileRoundTrip(t *testing.T) {
	d, err := tempfile.NewScratchDir("tempfile-test")
	require.NoError(t, err)
	defer d.Remove()

	data := []byte("some arbitrary payload")
	path := d.Path("round_trip")
	require.NoError(t, tempfile.WriteFile(path, data, 0o600))

	read, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, data, read)
}

func TestWriteFileEmpty(t *testing.T) {
	d, err := tempfile.NewScratchDir("tempfile-test")
	require.NoError(t, err)
	defer d.Remove()

	path := d.Path("empty")
	require.NoError(t, tempfile.WriteFile(path, []byte{}, 0o600))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.EqualValues(t, 0, info.Size())
}

func TestWriteFileNeverOverwrites(t *testing.T) {
	d, err := tempfile.NewScratchDir("tempfile-test")
	require.NoError(t, err)
	defer d.Remove()

	path := d.Path("exclusive")
	require.NoError(t, tempfile.WriteFile(path, []byte("first"), 0o600))

	err = tempfile.WriteFile(path, []byte("second"), 0o600)
	require.Error(t, err)
	require.True(t, os.IsExist(err))

	read, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("first"), read)
}
