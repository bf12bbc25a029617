// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package regulator

import (
	"math/bits"

	"github.com/platinasystems/log"

	"github.com/platinasystems/mxs-power/power"
)

func maskShift(mask uint32) uint { return uint(bits.TrailingZeros32(mask)) }

// Source classifies which physical path feeds a rail. The set is closed;
// it is derived from live register contents on every query and never
// stored.
type Source int

const (
	UnknownSource Source = iota
	LinRegDcdcOff        // linreg drives the rail, DC-DC gated off
	LinRegDcdcReady      // linreg drives the rail, DC-DC armed for 5V handover
	DcdcLinRegOn         // DC-DC drives the rail, linreg on below target
	DcdcLinRegOff        // DC-DC drives the rail, linreg off
	DcdcLinRegReady      // DC-DC drives the rail, linreg armed for handover
	External5V           // external 5V source
	ExternalBattery      // external battery source
)

var sourceStrings = [...]string{
	UnknownSource:   "unknown",
	LinRegDcdcOff:   "linreg, dcdc off",
	LinRegDcdcReady: "linreg, dcdc ready",
	DcdcLinRegOn:    "dcdc, linreg on",
	DcdcLinRegOff:   "dcdc, linreg off",
	DcdcLinRegReady: "dcdc, linreg ready",
	External5V:      "external 5V",
	ExternalBattery: "external battery",
}

func (s Source) String() string {
	if s < 0 || int(s) >= len(sourceStrings) {
		return "invalid"
	}
	return sourceStrings[s]
}

// PowerSource classifies the rail from a best effort snapshot of its
// control register and the shared status and 5V control registers. The
// snapshot is not transactional; a concurrent 5V event between the reads
// resolves to whichever registers were read last.
func (v *Voltage) PowerSource() Source {
	return classify(v.desc, v.regs.Ctrl.Rd(), v.regs.Sts.Rd(), v.regs.V5.Rd())
}

func classify(d *Desc, ctrl, sts, v5 uint32) Source {
	offset := (ctrl & d.LinRegOffsetMask) >> maskShift(d.LinRegOffsetMask)
	vbusValid := sts&power.StsVbusValidStatus != 0

	if d.DisableFetMask != 0 && ctrl&d.DisableFetMask != 0 {
		if vbusValid {
			return External5V
		}
		if offset == power.LinRegOffsetAbove {
			return LinRegDcdcOff
		}
		return UnknownSource
	}

	if vbusValid {
		if v5&power.FiveVCtrlEnableDcdc != 0 {
			return DcdcLinRegOn
		}
		return LinRegDcdcOff
	}

	// 5V absent, battery path
	if offset == power.LinRegOffsetBelow {
		if d.enabled(ctrl) {
			return DcdcLinRegOn
		}
		return DcdcLinRegOff
	}
	return UnknownSource
}

func dcdcBacked(s Source) bool {
	switch s {
	case DcdcLinRegOn, DcdcLinRegOff, DcdcLinRegReady:
		return true
	}
	return false
}

// The linreg and the DC-DC converter must not drive the shared output
// node at the same time. When the rail is DC-DC backed but the linreg
// offset is not yet the below-target encoding, rewrite it. Runs once,
// at bind.
func (v *Voltage) correctLinRegOffset() {
	offset := power.RdField(v.regs.Ctrl, v.desc.LinRegOffsetMask)
	if offset >= power.LinRegOffsetBelow {
		return
	}
	if dcdcBacked(v.PowerSource()) {
		log.Print("regulator: ", v.desc.Name,
			": linreg offset forced below target")
		power.WrField(v.regs.Ctrl, v.desc.LinRegOffsetMask,
			power.LinRegOffsetBelow)
	}
}
