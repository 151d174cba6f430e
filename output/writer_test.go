package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteObjectFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.ob")

	code := []uint32{0x14, 0xFFFFFF}
	data := []uint32{5}
	require.NoError(t, WriteObject(path, code, data, 100))

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t,
		"     2 1\n"+
			"0000100 000014\n"+
			"0000101 ffffff\n"+
			"0000102 000005\n",
		string(out))
}

func TestWriteIntermediateOneLinePerEntry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.am")

	require.NoError(t, WriteIntermediate(path, []string{"mov r1, r2", "stop"}))

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "mov r1, r2\nstop\n", string(out))
}

func TestWriteEntriesFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.ent")

	require.NoError(t, WriteEntries(path, []Entry{{Name: "LOOP", Address: 105}}))

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "LOOP 0000105\n", string(out))
}

func TestWriteExternsFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.ext")

	require.NoError(t, WriteExterns(path, []Entry{{Name: "X", Address: 112}, {Name: "X", Address: 120}}))

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "X 0000112\nX 0000120\n", string(out))
}
