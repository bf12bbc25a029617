// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package regulator

// SetMode toggles output stepping. Fast sets DISABLE_STEPPING so the
// rail jumps straight to its target; Normal clears it.
func (v *Voltage) SetMode(m Mode) error {
	switch m {
	case Fast:
		v.regs.Ctrl.Wr(v.regs.Ctrl.Rd() | v.desc.SteppingMask)
	case Normal:
		v.regs.Ctrl.Wr(v.regs.Ctrl.Rd() &^ v.desc.SteppingMask)
	default:
		return ErrInvalidMode
	}
	return nil
}

// Mode reads DISABLE_STEPPING back.
func (v *Voltage) Mode() Mode {
	if v.regs.Ctrl.Rd()&v.desc.SteppingMask != 0 {
		return Fast
	}
	return Normal
}

// SetMode on a current regulator is a software flag; Fast marks the
// instance as one whose budget requests must never block.
func (c *Current) SetMode(m Mode) error {
	if m != Normal && m != Fast {
		return ErrInvalidMode
	}
	l := c.lock()
	l.Lock()
	c.mode = m
	l.Unlock()
	return nil
}

func (c *Current) Mode() Mode {
	l := c.lock()
	l.Lock()
	defer l.Unlock()
	return c.mode
}
