// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package power

// HW_POWER block register offsets (i.MX23/28)
const (
	Ctrl        = 0x00
	FiveVCtrl   = 0x10
	MinPwr      = 0x20
	Charge      = 0x30
	VdddCtrl    = 0x40
	VddaCtrl    = 0x50
	VddioCtrl   = 0x60
	Dcdc4p2     = 0x80
	Misc        = 0x90
	LoopCtrl    = 0xb0
	Sts         = 0xc0
	Speed       = 0xd0
	BattMonitor = 0xe0
)

// HW_POWER_STS
const (
	StsDcOk            = 1 << 9
	StsVbusValidStatus = 1 << 15
)

// HW_POWER_5VCTRL
const (
	FiveVCtrlEnableDcdc     = 1 << 0
	FiveVCtrlIlimitEqZero   = 1 << 2
	FiveVCtrlVbusValid5VDet = 1 << 4
	FiveVCtrlPwdn5VBrnout   = 1 << 7
	FiveVCtrlVbusValidTrsh  = 7 << 8

	// VBUSVALID comparator threshold encodings
	VbusValidTrsh2V90 = 0
	VbusValidTrsh4V40 = 5
)

// HW_POWER_MISC
const (
	MiscSelPllClk = 1 << 0
	MiscFreqsel   = 7 << 4

	// MISC.FREQSEL encodings, PLL sourced
	FreqselPll20000KHz = 1
	FreqselPll24000KHz = 2
	FreqselPll19200KHz = 3
)

// Two bit LINREG_OFFSET field of the VDDxCTRL registers. The linear
// regulator tracks the rail target with a one step offset; below target
// is the required encoding while the DC-DC converter drives the rail.
const (
	LinRegOffsetNone  = 0
	LinRegOffsetAbove = 1
	LinRegOffsetBelow = 2
)

// HW_POWER_VDDDCTRL
const (
	VdddCtrlTrg             = 0x1f
	VdddCtrlLinRegOffset    = 3 << 16
	VdddCtrlDisableFet      = 1 << 20
	VdddCtrlEnableLinReg    = 1 << 21
	VdddCtrlDisableStepping = 1 << 22
)

// HW_POWER_VDDACTRL
const (
	VddaCtrlTrg             = 0x1f
	VddaCtrlLinRegOffset    = 3 << 12
	VddaCtrlDisableFet      = 1 << 16
	VddaCtrlEnableLinReg    = 1 << 17
	VddaCtrlDisableStepping = 1 << 18
)

// HW_POWER_VDDIOCTRL has no linreg enable; the linreg is always on.
const (
	VddioCtrlTrg             = 0x1f
	VddioCtrlLinRegOffset    = 3 << 12
	VddioCtrlDisableFet      = 1 << 16
	VddioCtrlDisableStepping = 1 << 17
)
