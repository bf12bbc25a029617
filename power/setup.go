// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package power

import "github.com/platinasystems/log"

// Config carries the one-shot bring-up parameters. It is passed in by
// whoever binds the block; there is no process wide state.
type Config struct {
	// DcdcPllKHz, when non zero, selects the PLL as DC-DC clock source
	// at the given frequency. Zero leaves the crystal selected.
	DcdcPllKHz int
}

// Setup programs the 5V detection comparator and the optional DC-DC
// clock source. It is meant to run once per block, at bind time.
func Setup(v5, misc Reg, cfg Config) error {
	WrField(v5, FiveVCtrlVbusValidTrsh, VbusValidTrsh4V40)
	v5.Wr(v5.Rd() | FiveVCtrlVbusValid5VDet)

	if cfg.DcdcPllKHz != 0 {
		if err := SetDcdcClkFreq(misc, cfg.DcdcPllKHz); err != nil {
			return err
		}
	}

	kHz, err := DcdcClkFreq(misc)
	if err != nil {
		return err
	}
	log.Print("daemon", "info", "power: DC-DC clock: ", kHz, " kHz")
	return nil
}
