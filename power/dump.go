// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package power

import (
	"fmt"
	"io"
	"math/bits"
)

type dumpField struct {
	name string
	mask uint32
}

var dumpRegs = []struct {
	name   string
	off    uint32
	fields []dumpField
}{
	{"HW_POWER_CTRL", Ctrl, nil},
	{"HW_POWER_5VCTRL", FiveVCtrl, []dumpField{
		{"ENABLE_DCDC", FiveVCtrlEnableDcdc},
		{"ILIMIT_EQ_ZERO", FiveVCtrlIlimitEqZero},
		{"VBUSVALID_5VDETECT", FiveVCtrlVbusValid5VDet},
		{"PWDN_5VBRNOUT", FiveVCtrlPwdn5VBrnout},
		{"VBUSVALID_TRSH", FiveVCtrlVbusValidTrsh},
	}},
	{"HW_POWER_VDDDCTRL", VdddCtrl, []dumpField{
		{"TRG", VdddCtrlTrg},
		{"LINREG_OFFSET", VdddCtrlLinRegOffset},
		{"DISABLE_FET", VdddCtrlDisableFet},
		{"ENABLE_LINREG", VdddCtrlEnableLinReg},
		{"DISABLE_STEPPING", VdddCtrlDisableStepping},
	}},
	{"HW_POWER_VDDACTRL", VddaCtrl, []dumpField{
		{"TRG", VddaCtrlTrg},
		{"LINREG_OFFSET", VddaCtrlLinRegOffset},
		{"DISABLE_FET", VddaCtrlDisableFet},
		{"ENABLE_LINREG", VddaCtrlEnableLinReg},
		{"DISABLE_STEPPING", VddaCtrlDisableStepping},
	}},
	{"HW_POWER_VDDIOCTRL", VddioCtrl, []dumpField{
		{"TRG", VddioCtrlTrg},
		{"LINREG_OFFSET", VddioCtrlLinRegOffset},
		{"DISABLE_FET", VddioCtrlDisableFet},
		{"DISABLE_STEPPING", VddioCtrlDisableStepping},
	}},
	{"HW_POWER_MISC", Misc, []dumpField{
		{"SEL_PLLCLK", MiscSelPllClk},
		{"FREQSEL", MiscFreqsel},
	}},
	{"HW_POWER_STS", Sts, []dumpField{
		{"DC_OK", StsDcOk},
		{"VBUSVALID0_STATUS", StsVbusValidStatus},
	}},
}

// Dump prints each control and status register of the block with its
// decoded bit fields. Maintenance output only.
func Dump(w io.Writer, b RegSource) {
	for _, r := range dumpRegs {
		v := b.Reg(r.off).Rd()
		fmt.Fprintf(w, "%-19s 0x%02x: 0x%08x\n", r.name, r.off, v)
		for _, f := range r.fields {
			s := uint(bits.TrailingZeros32(f.mask))
			fmt.Fprintf(w, "    %-22s 0x%x\n", f.name, (v&f.mask)>>s)
		}
	}
}
