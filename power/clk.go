// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package power

import "errors"

// ErrInvalidFreq rejects DC-DC clock frequencies other than the three
// recommended by Freescale.
var ErrInvalidFreq = errors.New("power: invalid DC-DC clock frequency")

const miscFreqselShift = 4

// DcdcClkFreq returns the DC-DC converter clock in kHz.
func DcdcClkFreq(misc Reg) (int, error) {
	v := misc.Rd()

	// crystal sourced
	if v&MiscSelPllClk == 0 {
		return 24000, nil
	}

	switch (v & MiscFreqsel) >> miscFreqselShift {
	case FreqselPll20000KHz:
		return 20000, nil
	case FreqselPll24000KHz:
		return 24000, nil
	case FreqselPll19200KHz:
		return 19200, nil
	}
	return 0, ErrInvalidFreq
}

// SetDcdcClkFreq switches the DC-DC converter to the PLL at the given
// frequency. Only 19200, 20000 and 24000 kHz are accepted.
func SetDcdcClkFreq(misc Reg, kHz int) error {
	v := misc.Rd() &^ (MiscFreqsel | MiscSelPllClk)

	switch kHz {
	case 19200:
		v |= FreqselPll19200KHz << miscFreqselShift
	case 20000:
		v |= FreqselPll20000KHz << miscFreqselShift
	case 24000:
		v |= FreqselPll24000KHz << miscFreqselShift
	default:
		return ErrInvalidFreq
	}

	// program FREQSEL first, then hand the DC-DC over to the PLL
	misc.Wr(v)
	misc.Wr(v | MiscSelPllClk)

	return nil
}
