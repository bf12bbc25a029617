// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package regulator

import (
	"testing"
	"time"
)

type fakeReg struct {
	v  uint32
	wr []uint32
}

func (f *fakeReg) Rd() uint32  { return f.v }
func (f *fakeReg) Wr(v uint32) { f.v = v; f.wr = append(f.wr, v) }

type rig struct {
	v    *Voltage
	ctrl *fakeReg
	sts  *fakeReg
	v5   *fakeReg
}

var testConfig = Config{
	FastSettle:   50 * time.Microsecond,
	SlowSettle:   10 * time.Millisecond,
	LinRegSettle: 100 * time.Microsecond,
}

// newRig binds a voltage regulator over zeroed registers, so the bind
// time offset correction does not fire. Fixtures are poked in afterward.
func newRig(t *testing.T, name string) *rig {
	t.Helper()
	r := &rig{ctrl: new(fakeReg), sts: new(fakeReg), v5: new(fakeReg)}
	v, err := NewVoltage(DescByName(name),
		Regs{Ctrl: r.ctrl, Sts: r.sts, V5: r.v5}, testConfig)
	if err != nil {
		t.Fatal(err)
	}
	r.v = v
	return r
}

func TestNewVoltageRejects(t *testing.T) {
	regs := Regs{Ctrl: new(fakeReg), Sts: new(fakeReg), V5: new(fakeReg)}
	if _, err := NewVoltage(nil, regs, Config{}); err != ErrBadDesc {
		t.Errorf("nil desc: got %v want %v", err, ErrBadDesc)
	}
	d := DescByName("overall-current")
	if _, err := NewVoltage(d, regs, Config{}); err != ErrBadDesc {
		t.Errorf("current desc: got %v want %v", err, ErrBadDesc)
	}
	d = DescByName("vddd")
	if _, err := NewVoltage(d, Regs{Ctrl: new(fakeReg)}, Config{}); err != ErrMissingReg {
		t.Errorf("missing regs: got %v want %v", err, ErrMissingReg)
	}
}

func TestNewCurrentRejects(t *testing.T) {
	if _, err := NewCurrent(DescByName("vddio"), nil, 0); err != ErrBadDesc {
		t.Errorf("voltage desc: got %v want %v", err, ErrBadDesc)
	}
}
