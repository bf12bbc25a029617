// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package power

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
)

type fake struct {
	v  uint32
	wr []uint32
}

func (f *fake) Rd() uint32  { return f.v }
func (f *fake) Wr(v uint32) { f.v = v; f.wr = append(f.wr, v) }

type fakeBlock map[uint32]*fake

func (b fakeBlock) Reg(off uint32) Reg {
	r, found := b[off]
	if !found {
		r = new(fake)
		b[off] = r
	}
	return r
}

func TestRdField(t *testing.T) {
	r := &fake{v: 0x2<<12 | 0x15}
	if got, want := RdField(r, 0x1f), uint32(0x15); got != want {
		t.Errorf("unshifted field: got %#x want %#x", got, want)
	}
	if got, want := RdField(r, 3<<12), uint32(2); got != want {
		t.Errorf("shifted field: got %#x want %#x", got, want)
	}
}

func TestWrFieldPreservesOutsideMask(t *testing.T) {
	r := &fake{v: 0xffff0000 | 0x1f}
	WrField(r, 0x1f, 0x5)
	if got, want := r.v, uint32(0xffff0000|0x5); got != want {
		t.Errorf("got %#x want %#x", got, want)
	}
	WrField(r, 3<<12, LinRegOffsetBelow)
	if got, want := r.v, uint32(0xffff0000|2<<12|0x5); got != want {
		t.Errorf("got %#x want %#x", got, want)
	}
}

func TestDcdcClkFreq(t *testing.T) {
	for _, x := range []struct {
		misc uint32
		kHz  int
	}{
		{0, 24000},
		{FreqselPll20000KHz << 4, 24000}, // crystal selected, FREQSEL ignored
		{MiscSelPllClk | FreqselPll20000KHz<<4, 20000},
		{MiscSelPllClk | FreqselPll24000KHz<<4, 24000},
		{MiscSelPllClk | FreqselPll19200KHz<<4, 19200},
	} {
		kHz, err := DcdcClkFreq(&fake{v: x.misc})
		if err != nil {
			t.Fatalf("misc %#x: %v", x.misc, err)
		}
		if kHz != x.kHz {
			t.Errorf("misc %#x: got %d want %d", x.misc, kHz, x.kHz)
		}
	}
	if _, err := DcdcClkFreq(&fake{v: MiscSelPllClk}); err != ErrInvalidFreq {
		t.Errorf("undecodable FREQSEL: got %v want %v", err, ErrInvalidFreq)
	}
}

func TestSetDcdcClkFreq(t *testing.T) {
	r := new(fake)
	if err := SetDcdcClkFreq(r, 19200); err != nil {
		t.Fatal(err)
	}
	if got, want := len(r.wr), 2; got != want {
		t.Fatalf("writes: got %d want %d", got, want)
	}
	if r.wr[0]&MiscSelPllClk != 0 {
		t.Error("first write must program FREQSEL with the PLL unselected")
	}
	if r.wr[1]&MiscSelPllClk == 0 {
		t.Error("second write must select the PLL")
	}
	if got, want := (r.v&MiscFreqsel)>>4, uint32(FreqselPll19200KHz); got != want {
		t.Errorf("FREQSEL: got %d want %d", got, want)
	}

	kHz, err := DcdcClkFreq(r)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := kHz, 19200; got != want {
		t.Errorf("readback: got %d want %d", got, want)
	}

	r = new(fake)
	if err = SetDcdcClkFreq(r, 25000); err != ErrInvalidFreq {
		t.Errorf("got %v want %v", err, ErrInvalidFreq)
	}
	if got, want := len(r.wr), 0; got != want {
		t.Errorf("writes after reject: got %d want %d", got, want)
	}
}

func TestSetup(t *testing.T) {
	v5 := new(fake)
	misc := new(fake)
	if err := Setup(v5, misc, Config{DcdcPllKHz: 20000}); err != nil {
		t.Fatal(err)
	}
	if got, want := (v5.v&FiveVCtrlVbusValidTrsh)>>8, uint32(VbusValidTrsh4V40); got != want {
		t.Errorf("VBUSVALID_TRSH: got %d want %d", got, want)
	}
	if v5.v&FiveVCtrlVbusValid5VDet == 0 {
		t.Error("VBUSVALID_5VDETECT not enabled")
	}
	kHz, err := DcdcClkFreq(misc)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := kHz, 20000; got != want {
		t.Errorf("DC-DC clock: got %d want %d", got, want)
	}

	if err = Setup(new(fake), new(fake), Config{DcdcPllKHz: 12345}); err != ErrInvalidFreq {
		t.Errorf("got %v want %v", err, ErrInvalidFreq)
	}
}

func TestDump(t *testing.T) {
	b := fakeBlock{
		Sts:       &fake{v: StsDcOk},
		VddioCtrl: &fake{v: 2<<12 | 0xa},
	}
	buf := new(bytes.Buffer)
	Dump(buf, b)
	out := buf.String()
	for _, want := range []string{
		"HW_POWER_VDDIOCTRL",
		"HW_POWER_STS",
		"DC_OK",
		"LINREG_OFFSET",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q", want)
		}
	}
	if !regexp.MustCompile(`TRG\s+0xa\n`).MatchString(out) {
		t.Errorf("dump missing decoded TRG field:\n%s", out)
	}
	if !regexp.MustCompile(`DC_OK\s+0x1\n`).MatchString(out) {
		t.Errorf("dump missing decoded DC_OK field:\n%s", out)
	}
}
