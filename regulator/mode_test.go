// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package regulator

import (
	"testing"

	"github.com/platinasystems/mxs-power/power"
)

func TestVoltageMode(t *testing.T) {
	r := newRig(t, "vddio")
	r.ctrl.v = 0xff000000 | 0xa

	if got, want := r.v.Mode(), Normal; got != want {
		t.Fatalf("got %v want %v", got, want)
	}
	if err := r.v.SetMode(Fast); err != nil {
		t.Fatal(err)
	}
	if got, want := r.v.Mode(), Fast; got != want {
		t.Errorf("got %v want %v", got, want)
	}
	if r.ctrl.v&power.VddioCtrlDisableStepping == 0 {
		t.Error("DISABLE_STEPPING not set")
	}
	if err := r.v.SetMode(Normal); err != nil {
		t.Fatal(err)
	}
	if got, want := r.ctrl.v, uint32(0xff000000|0xa); got != want {
		t.Errorf("toggle did not restore ctrl: got %#x want %#x",
			got, want)
	}
	if err := r.v.SetMode(Mode(7)); err != ErrInvalidMode {
		t.Errorf("got %v want %v", err, ErrInvalidMode)
	}
}

func TestCurrentMode(t *testing.T) {
	c, err := NewCurrent(DescByName("overall-current"), nil, 500000)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := c.Mode(), Normal; got != want {
		t.Fatalf("got %v want %v", got, want)
	}
	if err = c.SetMode(Fast); err != nil {
		t.Fatal(err)
	}
	if got, want := c.Mode(), Fast; got != want {
		t.Errorf("got %v want %v", got, want)
	}
	if err = c.SetMode(Mode(-1)); err != ErrInvalidMode {
		t.Errorf("got %v want %v", err, ErrInvalidMode)
	}
	if got, want := c.Mode(), Fast; got != want {
		t.Errorf("invalid mode took effect: got %v want %v", got, want)
	}
}

func TestModeString(t *testing.T) {
	for _, x := range []struct {
		m    Mode
		want string
	}{
		{Normal, "normal"},
		{Fast, "fast"},
		{Mode(9), "invalid"},
	} {
		if got := x.m.String(); got != x.want {
			t.Errorf("got %q want %q", got, x.want)
		}
	}
}
