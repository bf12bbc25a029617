// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package regulator

import (
	"time"

	"github.com/jpillora/backoff"

	"github.com/platinasystems/mxs-power/power"
)

// SetVoltageSel programs the rail's output select field and waits for
// the output to settle.
//
// On a DC-DC backed rail the DC_OK handshake is polled twice: a short
// tight loop sized for fast mode transitions, then, after reissuing the
// write, a longer yielding wait sized for stepped transitions. On a
// linreg backed or externally sourced rail there is no handshake; a
// fixed settle delay is used instead.
//
// A timeout leaves the hardware in the state last written.
func (v *Voltage) SetVoltageSel(sel uint32) error {
	if sel >= v.desc.NVoltages {
		return ErrInvalidSelector
	}

	power.WrField(v.regs.Ctrl, v.desc.VselMask, sel)

	switch v.PowerSource() {
	case LinRegDcdcOff, LinRegDcdcReady, External5V:
		time.Sleep(v.cfg.LinRegSettle)
		return nil
	}

	if _, ok := v.pollDcOk(v.cfg.FastSettle, nil); ok {
		return nil
	}

	power.WrField(v.regs.Ctrl, v.desc.VselMask, sel)
	b := &backoff.Backoff{
		Min:    100 * time.Microsecond,
		Max:    10 * time.Millisecond,
		Factor: 2,
		Jitter: true,
	}
	sts, ok := v.pollDcOk(v.cfg.SlowSettle, b)
	if !ok {
		return &TimeoutError{Sts: sts}
	}
	return nil
}

func (v *Voltage) pollDcOk(budget time.Duration, b *backoff.Backoff) (sts uint32, ok bool) {
	deadline := time.Now().Add(budget)
	for {
		sts = v.regs.Sts.Rd()
		if sts&power.StsDcOk != 0 {
			return sts, true
		}
		if time.Now().After(deadline) {
			return sts, false
		}
		if b != nil {
			time.Sleep(b.Duration())
		} else {
			time.Sleep(time.Microsecond)
		}
	}
}

// VoltageSel returns the rail's output select field. Pure read.
func (v *Voltage) VoltageSel() uint32 {
	return power.RdField(v.regs.Ctrl, v.desc.VselMask)
}

// Voltage maps a selector onto the rail's linear range, in microvolts.
func (v *Voltage) Voltage(sel uint32) (int, error) {
	if sel >= v.desc.NVoltages {
		return 0, ErrInvalidSelector
	}
	return v.desc.MinUV + int(sel)*v.desc.StepUV, nil
}

// SetVoltage selects the lowest selector at or above uV.
func (v *Voltage) SetVoltage(uV int) error {
	if uV < v.desc.MinUV {
		return ErrInvalidSelector
	}
	sel := uint32((uV - v.desc.MinUV + v.desc.StepUV - 1) / v.desc.StepUV)
	return v.SetVoltageSel(sel)
}
