package assembler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PilPara/Assembler/output"
	"github.com/PilPara/Assembler/parser"
)

func TestAssembleValidFileWithEntryAndExtern(t *testing.T) {
	src := []string{
		".extern W",
		"LIST: .data 1, 2, 3",
		"MAIN: mov #5, r1",
		"      add r1, LIST",
		"      jsr W",
		"      stop",
		".entry LIST",
	}

	ctx := NewContext("t.as", 100, parser.DefaultLimits())
	ctx.Assemble(src, 100)

	require.False(t, ctx.Errors.HasErrors())
	require.Len(t, ctx.Code, 7)
	require.Equal(t, []uint32{1, 2, 3}, ctx.Data)
	require.Equal(t, []output.Entry{{Name: "LIST", Address: 100}}, ctx.Entries)
	require.Equal(t, []output.Entry{{Name: "W", Address: 108}}, ctx.Externs)
	require.Equal(t, uint32(110), ctx.IC)
	require.Equal(t, uint32(3), ctx.DC)
}

func TestAssembleDuplicateLabelReported(t *testing.T) {
	src := []string{
		"MAIN: add r3, LIST",
		"MAIN: add r4, LIST",
		"LIST: .data 1",
	}

	ctx := NewContext("t.as", 100, parser.DefaultLimits())
	ctx.Assemble(src, 100)

	require.True(t, ctx.Errors.HasErrors())
	found := false
	for _, e := range ctx.Errors.Errors {
		if e.Kind == parser.ErrLabelDuplicate {
			found = true
		}
	}
	require.True(t, found)
}

func TestAssembleDataBoundaryAndIllegalComma(t *testing.T) {
	ctx := NewContext("t.as", 100, parser.DefaultLimits())
	ctx.Assemble([]string{".data 16777216"}, 100)
	require.True(t, ctx.Errors.HasErrors())
	require.Equal(t, parser.ErrImmOutOfBounds, ctx.Errors.Errors[0].Kind)

	ctx2 := NewContext("t.as", 100, parser.DefaultLimits())
	ctx2.Assemble([]string{".data -16777217"}, 100)
	require.True(t, ctx2.Errors.HasErrors())
	require.Equal(t, parser.ErrImmOutOfBounds, ctx2.Errors.Errors[0].Kind)

	ctx3 := NewContext("t.as", 100, parser.DefaultLimits())
	ctx3.Assemble([]string{".data 6, -9, +17, , 12"}, 100)
	require.True(t, ctx3.Errors.HasErrors())
}

func TestAssembleSecondPassNeverRunsAfterFirstPassErrors(t *testing.T) {
	ctx := NewContext("t.as", 100, parser.DefaultLimits())
	ctx.Assemble([]string{"MAIN: add r3, LIST", "MAIN: add r4, LIST"}, 100)

	require.True(t, ctx.Errors.HasErrors())
	require.Empty(t, ctx.Code)
}

func TestAssembleDanglingEntryReportsSymbolNotFound(t *testing.T) {
	ctx := NewContext("t.as", 100, parser.DefaultLimits())
	ctx.Assemble([]string{".entry NEVER_DEFINED", "stop"}, 100)

	require.True(t, ctx.Errors.HasErrors())
	found := false
	for _, e := range ctx.Errors.Errors {
		if e.Kind == parser.ErrSymbolNotFound {
			found = true
		}
	}
	require.True(t, found)
}

func TestAssembleMultipleDanglingEntriesReportInSortedOrder(t *testing.T) {
	ctx := NewContext("t.as", 100, parser.DefaultLimits())
	ctx.Assemble([]string{".entry ZEBRA", ".entry APPLE", "stop"}, 100)

	require.True(t, ctx.Errors.HasErrors())
	var messages []string
	for _, e := range ctx.Errors.Errors {
		if e.Kind == parser.ErrSymbolNotFound {
			messages = append(messages, e.Message)
		}
	}
	require.Len(t, messages, 2)
	// Sorted by name, not by declaration order or map iteration order:
	// APPLE's diagnostic must precede ZEBRA's on every run.
	require.Contains(t, messages[0], "APPLE")
	require.Contains(t, messages[1], "ZEBRA")
}

func TestAssembleHonorsOverriddenLimits(t *testing.T) {
	narrow := parser.Limits{MaxLineLen: 80, MaxLabelLen: 31, MinImmediate: -8, MaxImmediate: 7}

	ctx := NewContext("t.as", 100, narrow)
	ctx.Assemble([]string{"mov #8, r1"}, 100)

	require.True(t, ctx.Errors.HasErrors())
	require.Equal(t, parser.ErrImmOutOfBounds, ctx.Errors.Errors[0].Kind)

	ctx2 := NewContext("t.as", 100, narrow)
	ctx2.Assemble([]string{"mov #7, r1"}, 100)
	require.False(t, ctx2.Errors.HasErrors())
}

func TestAssembleHonorsOverriddenMaxLabelLen(t *testing.T) {
	narrow := parser.Limits{MaxLineLen: 80, MaxLabelLen: 3, MinImmediate: parser.MinImmediate, MaxImmediate: parser.MaxImmediate}

	ctx := NewContext("t.as", 100, narrow)
	ctx.Assemble([]string{"LOOP: stop"}, 100)

	require.True(t, ctx.Errors.HasErrors())
	require.Equal(t, parser.ErrLabelMaxLen, ctx.Errors.Errors[0].Kind)
}
