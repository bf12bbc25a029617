// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Command mxs-power queries and configures the MXS power management
// unit from the command line.
package main

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"strconv"

	"github.com/platinasystems/fdt"
	"github.com/platinasystems/flags"
	"github.com/platinasystems/parms"

	"github.com/platinasystems/mxs-power/power"
	"github.com/platinasystems/mxs-power/regulator"
)

const usage = `usage: mxs-power [-raw] [-dtb FILE] [-pll KHZ] COMMAND [ARG...]

commands:
	dump                    print the HW_POWER registers
	vsel RAIL [SEL]         get/set a rail's voltage selector
	mv RAIL [MV]            get/set a rail's voltage in millivolts
	mode RAIL [fast|normal] get/set a rail's regulation mode
	source RAIL             classify a rail's power source
	ilimit NAME [UA]        get/set a current regulator's limit
	clk [KHZ]               get/set the DC-DC clock (19200|20000|24000)`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "mxs-power: ", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flag, args := flags.New(args, "-raw")
	parm, args := parms.New(args, "-dtb", "-pll")
	if len(args) == 0 {
		return errors.New(usage)
	}
	if parm.ByName["-dtb"] == "" {
		parm.ByName["-dtb"] = "/boot/linux.dtb"
	}

	pll := 0
	if s := parm.ByName["-pll"]; s != "" {
		var err error
		if pll, err = strconv.Atoi(s); err != nil {
			return fmt.Errorf("%s: %v", s, err)
		}
	}

	blk, err := power.MapBlock()
	if err != nil {
		return err
	}
	defer blk.Close()

	err = power.Setup(blk.Reg(power.FiveVCtrl), blk.Reg(power.Misc),
		power.Config{DcdcPllKHz: pll})
	if err != nil {
		return err
	}

	switch args[0] {
	case "dump":
		if flag.ByName["-raw"] {
			for off := uint32(0); off < power.BlockSize; off += 0x10 {
				fmt.Printf("0x%02x: 0x%08x\n", off, blk.Reg(off).Rd())
			}
			return nil
		}
		power.Dump(os.Stdout, blk)
		return nil
	case "clk":
		if len(args) > 1 {
			kHz, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("%s: %v", args[1], err)
			}
			return power.SetDcdcClkFreq(blk.Reg(power.Misc), kHz)
		}
		kHz, err := power.DcdcClkFreq(blk.Reg(power.Misc))
		if err != nil {
			return err
		}
		fmt.Println(kHz, "kHz")
		return nil
	}

	buf, err := ioutil.ReadFile(parm.ByName["-dtb"])
	if err != nil {
		return err
	}
	t := &fdt.Tree{}
	if err = t.Parse(buf); err != nil {
		return err
	}
	b, err := regulator.FromFdt(t, blk, regulator.Config{})
	if err != nil {
		return err
	}

	if len(args) < 2 {
		return errors.New(usage)
	}
	name := args[1]

	switch args[0] {
	case "vsel", "mv", "mode", "source":
		v, found := b.Voltages[name]
		if !found {
			return fmt.Errorf("%s: not found", name)
		}
		return voltageCmd(v, args)
	case "ilimit":
		c, found := b.Currents[name]
		if !found {
			return fmt.Errorf("%s: not found", name)
		}
		if len(args) > 2 {
			uA, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("%s: %v", args[2], err)
			}
			return c.SetCurrentLimit(uA)
		}
		fmt.Println(c.CurrentLimit(), "uA")
		return nil
	}
	return errors.New(usage)
}

func voltageCmd(v *regulator.Voltage, args []string) error {
	switch args[0] {
	case "vsel":
		if len(args) > 2 {
			sel, err := strconv.ParseUint(args[2], 0, 32)
			if err != nil {
				return fmt.Errorf("%s: %v", args[2], err)
			}
			return v.SetVoltageSel(uint32(sel))
		}
		fmt.Println(v.VoltageSel())
	case "mv":
		if len(args) > 2 {
			mV, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("%s: %v", args[2], err)
			}
			return v.SetVoltage(mV * 1000)
		}
		uV, err := v.Voltage(v.VoltageSel())
		if err != nil {
			return err
		}
		fmt.Println(uV/1000, "mV")
	case "mode":
		if len(args) > 2 {
			switch args[2] {
			case "fast":
				return v.SetMode(regulator.Fast)
			case "normal":
				return v.SetMode(regulator.Normal)
			default:
				return regulator.ErrInvalidMode
			}
		}
		fmt.Println(v.Mode())
	case "source":
		fmt.Println(v.PowerSource())
	}
	return nil
}
