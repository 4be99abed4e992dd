package slra

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReg_VirtualRoundTrip(t *testing.T) {
	r := VirtualReg(42, RegClassFloat)
	require.True(t, r.IsVirtual())
	require.Equal(t, 42, r.VRegIndex())
	require.Equal(t, RegClassFloat, r.Class())
	require.True(t, r.Valid())
}

func TestReg_RealRoundTrip(t *testing.T) {
	r := RealRegOf(RealReg(7), RegClassVec)
	require.False(t, r.IsVirtual())
	require.Equal(t, RealReg(7), r.RealRegID())
	require.Equal(t, RegClassVec, r.Class())
}

func TestReg_Invalid(t *testing.T) {
	require.False(t, RegInvalid.Valid())
	require.Equal(t, RealReg(0), RealRegInvalid)
}

// TestReg_SameIDDifferentClassAreDistinct: a real register's identity is its
// (RealRegID, Class) pair, not RealRegID alone -- GPR 0 and vector register
// 0 are different physical registers that happen to share a raw number.
func TestReg_SameIDDifferentClassAreDistinct(t *testing.T) {
	intR := RealRegOf(RealReg(1), RegClassInt)
	vecR := RealRegOf(RealReg(1), RegClassVec)
	require.Equal(t, intR.RealRegID(), vecR.RealRegID())
	require.NotEqual(t, intR, vecR)
	require.NotEqual(t, intR.Class(), vecR.Class())
}

func TestRegClass_String(t *testing.T) {
	require.Equal(t, "int", RegClassInt.String())
	require.Equal(t, "float", RegClassFloat.String())
	require.Equal(t, "vec", RegClassVec.String())
	require.Equal(t, "invalid", RegClassInvalid.String())
}

func TestReg_VirtualIndexOutOfRangePanics(t *testing.T) {
	require.Panics(t, func() {
		VirtualReg(-1, RegClassInt)
	})
}
