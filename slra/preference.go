package slra

// computePreferences is Stage 4, optional by design. It honours reg-reg
// moves the caller flags via hooks.IsMove: when one side of a move is a
// real register and the other a vreg with no preference yet and a matching
// class, the real register becomes that vreg's preference. A move between
// two vregs is left uncoalesced, and a move with no IsMove hook at all
// leaves Stage 4 a no-op, which is explicitly conformant.
func computePreferences(instrs []Instr, infos []VRegInfo, hooks Hooks) {
	if hooks.IsMove == nil {
		return
	}
	for _, instr := range instrs {
		ok, src, dst := hooks.IsMove(instr)
		if !ok {
			continue
		}
		if src.IsVirtual() == dst.IsVirtual() {
			continue
		}
		var vreg, real Reg
		if src.IsVirtual() {
			vreg, real = src, dst
		} else {
			vreg, real = dst, src
		}
		idx := vreg.VRegIndex()
		if idx < 0 || idx >= len(infos) {
			continue
		}
		info := &infos[idx]
		if info.Preferred == RegInvalid && real.Class() == vreg.Class() {
			info.Preferred = real
		}
	}
	tracef("preferences computed\n")
}
