// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Command mxs-powerd publishes the state of the MXS power management
// unit to redis: per rail voltage, power source and mode, current
// limits and the DC-DC clock. Only changed values are republished.
package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	redigo "github.com/garyburd/redigo/redis"
	"github.com/platinasystems/fdt"
	"github.com/platinasystems/log"
	"github.com/platinasystems/parms"

	"github.com/platinasystems/mxs-power/power"
	"github.com/platinasystems/mxs-power/regulator"
)

const hash = "mxs-power"

type daemon struct {
	blk  *power.Block
	b    *regulator.Bound
	conn redigo.Conn
	stop chan struct{}
	last map[string]string
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Print("daemon", "err", "mxs-powerd: ", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	parm, _ := parms.New(args, "-redis", "-dtb", "-pll", "-i")
	if parm.ByName["-redis"] == "" {
		parm.ByName["-redis"] = "127.0.0.1:6379"
	}
	if parm.ByName["-dtb"] == "" {
		parm.ByName["-dtb"] = "/boot/linux.dtb"
	}
	interval := 10 * time.Second
	if s := parm.ByName["-i"]; s != "" {
		sec, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%s: %v", s, err)
		}
		interval = time.Duration(sec) * time.Second
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

	conn, err := redigo.Dial("tcp", parm.ByName["-redis"])
	if err != nil {
		return err
	}
	defer conn.Close()

	d := &daemon{
		blk:  blk,
		b:    b,
		conn: conn,
		stop: make(chan struct{}),
		last: make(map[string]string),
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		close(d.stop)
	}()

	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-d.stop:
			return nil
		case <-tick.C:
			if err = d.update(); err != nil {
				return err
			}
		}
	}
}

func (d *daemon) update() error {
	for name, v := range d.b.Voltages {
		uV, err := v.Voltage(v.VoltageSel())
		if err != nil {
			return err
		}
		if err = d.pub("vmon."+name+".mv", strconv.Itoa(uV/1000)); err != nil {
			return err
		}
		if err = d.pub("vmon."+name+".source", v.PowerSource().String()); err != nil {
			return err
		}
		if err = d.pub("vmon."+name+".mode", v.Mode().String()); err != nil {
			return err
		}
	}
	for name, c := range d.b.Currents {
		if err := d.pub("imon."+name+".ua", strconv.Itoa(c.CurrentLimit())); err != nil {
			return err
		}
	}
	kHz, err := power.DcdcClkFreq(d.blk.Reg(power.Misc))
	if err != nil {
		return err
	}
	return d.pub("power.dcdc.khz", strconv.Itoa(kHz))
}

func (d *daemon) pub(k, v string) error {
	if d.last[k] == v {
		return nil
	}
	if _, err := d.conn.Do("HSET", hash, k, v); err != nil {
		return err
	}
	if _, err := d.conn.Do("PUBLISH", hash, k+": "+v); err != nil {
		return err
	}
	d.last[k] = v
	return nil
}
