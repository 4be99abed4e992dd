package slra

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func hregIndex(allocatable []Reg) map[Reg]int {
	m := make(map[Reg]int, len(allocatable))
	for i, r := range allocatable {
		m[r] = i
	}
	return m
}

func TestHardRange_SingleWrite(t *testing.T) {
	allocatable := []Reg{rr(0)}
	in := []Instr{instr("clobber").write(rr(0))}
	out, err := collectHardRanges(in, allocatable, hregIndex(allocatable), mockHooks())
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, rr(0), out[0].Reg)
	require.Equal(t, 0, out[0].LiveAfter)
	require.Equal(t, 1, out[0].DeadBefore)
}

func TestHardRange_WriteReadExtendsDeadBefore(t *testing.T) {
	allocatable := []Reg{rr(0)}
	in := []Instr{
		instr("w").write(rr(0)),
		instr("r").read(rr(0)),
	}
	out, err := collectHardRanges(in, allocatable, hregIndex(allocatable), mockHooks())
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, 0, out[0].LiveAfter)
	require.Equal(t, 2, out[0].DeadBefore)
}

func TestHardRange_TwoDisjointWrites(t *testing.T) {
	allocatable := []Reg{rr(0)}
	in := []Instr{
		instr("w1").write(rr(0)),
		instr("w2").write(rr(0)),
	}
	out, err := collectHardRanges(in, allocatable, hregIndex(allocatable), mockHooks())
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, 0, out[0].LiveAfter)
	require.Equal(t, 1, out[0].DeadBefore)
	require.Equal(t, 1, out[1].LiveAfter)
	require.Equal(t, 2, out[1].DeadBefore)
}

func TestHardRange_ReadBeforeWriteIsMalformed(t *testing.T) {
	allocatable := []Reg{rr(0)}
	in := []Instr{instr("r").read(rr(0))}
	_, err := collectHardRanges(in, allocatable, hregIndex(allocatable), mockHooks())
	require.Error(t, err)
	require.Equal(t, MalformedInput, err.(*AllocError).Kind)
}

func TestHardRange_NonAllocatableRegisterIgnored(t *testing.T) {
	allocatable := []Reg{rr(0)}
	// rr(9) (stand-in for e.g. a stack pointer) is read without ever being
	// written, which would be malformed if it were tracked -- but it isn't
	// in allocatable, so it must be silently ignored.
	in := []Instr{instr("r").read(rr(9))}
	out, err := collectHardRanges(in, allocatable, hregIndex(allocatable), mockHooks())
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestHardRange_VirtualOperandsIgnored(t *testing.T) {
	allocatable := []Reg{rr(0)}
	in := []Instr{instr("def").write(v(0))}
	out, err := collectHardRanges(in, allocatable, hregIndex(allocatable), mockHooks())
	require.NoError(t, err)
	require.Empty(t, out)
}
