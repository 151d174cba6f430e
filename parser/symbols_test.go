package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSymbolTableDefineAndLookup(t *testing.T) {
	st := NewSymbolTable()
	require.NoError(t, st.Define("LOOP", 105))

	sym, ok := st.Lookup("LOOP")
	require.True(t, ok)
	require.Equal(t, uint32(105), sym.Address)
	require.False(t, sym.External)
}

func TestSymbolTableDuplicateDefineErrors(t *testing.T) {
	st := NewSymbolTable()
	require.NoError(t, st.Define("LOOP", 105))
	require.Error(t, st.Define("LOOP", 110))
}

func TestSymbolTableExternalThenEntry(t *testing.T) {
	st := NewSymbolTable()
	require.NoError(t, st.DefineExternal("X"))

	st.MarkEntry("X")
	sym, ok := st.Lookup("X")
	require.True(t, ok)
	require.True(t, sym.External)
	require.True(t, sym.Entry)
}

func TestSymbolTableLocalThenExternalErrors(t *testing.T) {
	st := NewSymbolTable()
	require.NoError(t, st.Define("X", 100))
	require.Error(t, st.DefineExternal("X"))
}

func TestSymbolTableAllPreservesInsertionOrder(t *testing.T) {
	st := NewSymbolTable()
	require.NoError(t, st.Define("B", 1))
	require.NoError(t, st.Define("A", 2))

	all := st.All()
	require.Len(t, all, 2)
	require.Equal(t, "B", all[0].Name)
	require.Equal(t, "A", all[1].Name)
}
