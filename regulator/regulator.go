// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package regulator is the control core for the on-die regulators of the
// MXS power management unit. A voltage regulator steps its output
// selector and handshakes with the DC-DC converter; a current regulator
// draws from a shared budget arbitrated against its parent. Both are
// bound to already mapped register windows by an external caller.
package regulator

import (
	"math"
	"sync"
	"time"

	"github.com/platinasystems/mxs-power/power"
)

// Mode selects stepped (Normal) or immediate (Fast) regulation.
type Mode int

const (
	Normal Mode = iota
	Fast
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Fast:
		return "fast"
	}
	return "invalid"
}

// Steppable is the voltage selector capability.
type Steppable interface {
	SetVoltageSel(sel uint32) error
	VoltageSel() uint32
}

// CurrentLimited is the shared current budget capability.
type CurrentLimited interface {
	SetCurrentLimit(uA int) error
	CurrentLimit() int
}

// SourceClassifiable reports which physical path feeds the rail.
type SourceClassifiable interface {
	PowerSource() Source
}

// ModeControl is common to both regulator kinds.
type ModeControl interface {
	SetMode(m Mode) error
	Mode() Mode
}

// Desc is the immutable per-rail configuration, matched by name or by
// device tree compatible string and never mutated after construction.
type Desc struct {
	Name       string
	Compatible string

	// voltage rails
	CtrlOff          uint32 // control register offset in the block
	NVoltages        uint32
	MinUV            int
	StepUV           int
	VselMask         uint32
	LinRegOffsetMask uint32
	DisableFetMask   uint32
	SteppingMask     uint32

	// EnableMask is the rail's enable field; EnabledIsCleared flips
	// its polarity (vddio is enabled while DISABLE_FET is clear).
	EnableMask       uint32
	EnabledIsCleared bool

	// current rails
	MaxUA int
}

func (d *Desc) voltage() bool { return d.NVoltages != 0 }

func (d *Desc) enabled(ctrl uint32) bool {
	if d.EnableMask == 0 {
		return true
	}
	set := ctrl&d.EnableMask != 0
	if d.EnabledIsCleared {
		return !set
	}
	return set
}

var Descs = []*Desc{
	{
		Name:             "vddio",
		Compatible:       "fsl,mxs-regulator-vddio",
		CtrlOff:          power.VddioCtrl,
		NVoltages:        0x10,
		MinUV:            2800000,
		StepUV:           50000,
		VselMask:         power.VddioCtrlTrg,
		LinRegOffsetMask: power.VddioCtrlLinRegOffset,
		DisableFetMask:   power.VddioCtrlDisableFet,
		SteppingMask:     power.VddioCtrlDisableStepping,
		EnableMask:       power.VddioCtrlDisableFet,
		EnabledIsCleared: true,
	},
	{
		Name:             "vdda",
		Compatible:       "fsl,mxs-regulator-vdda",
		CtrlOff:          power.VddaCtrl,
		NVoltages:        0x1f,
		MinUV:            1500000,
		StepUV:           25000,
		VselMask:         power.VddaCtrlTrg,
		LinRegOffsetMask: power.VddaCtrlLinRegOffset,
		DisableFetMask:   power.VddaCtrlDisableFet,
		SteppingMask:     power.VddaCtrlDisableStepping,
		EnableMask:       power.VddaCtrlEnableLinReg,
	},
	{
		Name:             "vddd",
		Compatible:       "fsl,mxs-regulator-vddd",
		CtrlOff:          power.VdddCtrl,
		NVoltages:        0x1f,
		MinUV:            800000,
		StepUV:           25000,
		VselMask:         power.VdddCtrlTrg,
		LinRegOffsetMask: power.VdddCtrlLinRegOffset,
		DisableFetMask:   power.VdddCtrlDisableFet,
		SteppingMask:     power.VdddCtrlDisableStepping,
		EnableMask:       power.VdddCtrlEnableLinReg,
	},
	{
		Name:       "overall-current",
		Compatible: "fsl,mxs-regulator-overall-current",
	},
}

func DescByName(name string) *Desc {
	for _, d := range Descs {
		if d.Name == name {
			return d
		}
	}
	return nil
}

func DescByCompatible(compat string) *Desc {
	for _, d := range Descs {
		if d.Compatible == compat {
			return d
		}
	}
	return nil
}

// CurrentDesc builds a descriptor for a current regulator that is not in
// the static table, e.g. a per-consumer child of overall-current.
func CurrentDesc(name string, maxUA int) *Desc {
	return &Desc{
		Name:       name,
		Compatible: "fsl,mxs-regulator-current",
		MaxUA:      maxUA,
	}
}

// Regs binds an instance to its mapped register windows: the rail's own
// control register plus the status and 5V control registers shared with
// the sibling rails.
type Regs struct {
	Ctrl power.Reg
	Sts  power.Reg
	V5   power.Reg
}

// Config carries the settle time budgets of the voltage stepping engine.
// Zero durations take the defaults below. The DC_OK budgets differ per
// hardware revision guidance, so both are caller tunable.
type Config struct {
	FastSettle   time.Duration // first DC_OK poll, fast mode transitions
	SlowSettle   time.Duration // second DC_OK poll, stepped transitions
	LinRegSettle time.Duration // fixed wait on the linreg path
}

const (
	DefaultFastSettle   = 20 * time.Microsecond
	DefaultSlowSettle   = 80 * time.Millisecond
	DefaultLinRegSettle = time.Millisecond
)

func (c Config) withDefaults() Config {
	if c.FastSettle == 0 {
		c.FastSettle = DefaultFastSettle
	}
	if c.SlowSettle == 0 {
		c.SlowSettle = DefaultSlowSettle
	}
	if c.LinRegSettle == 0 {
		c.LinRegSettle = DefaultLinRegSettle
	}
	return c
}

// Voltage is one voltage regulator instance. It owns its register
// windows from bind to destruction.
type Voltage struct {
	desc *Desc
	regs Regs
	cfg  Config
}

// NewVoltage binds a voltage regulator to its register windows and
// applies the one-time linreg offset correction.
func NewVoltage(d *Desc, regs Regs, cfg Config) (*Voltage, error) {
	if d == nil || !d.voltage() {
		return nil, ErrBadDesc
	}
	if regs.Ctrl == nil || regs.Sts == nil || regs.V5 == nil {
		return nil, ErrMissingReg
	}
	v := &Voltage{desc: d, regs: regs, cfg: cfg.withDefaults()}
	v.correctLinRegOffset()
	return v, nil
}

func (v *Voltage) Desc() *Desc { return v.desc }

// Current is one current limited regulator instance. Its ceiling is sub
// allocated from the parent when one is set; a root instance is the
// budget for its children.
type Current struct {
	desc   *Desc
	parent *Current

	mu    sync.Mutex
	cond  *sync.Cond // waiters for headroom on this instance
	mode  Mode
	curUA int
	maxUA int
}

// NewCurrent binds a current regulator. maxUA zero takes the descriptor
// ceiling, or an unbounded root budget if the descriptor has none.
func NewCurrent(d *Desc, parent *Current, maxUA int) (*Current, error) {
	if d == nil || d.voltage() {
		return nil, ErrBadDesc
	}
	if maxUA == 0 {
		maxUA = d.MaxUA
	}
	if maxUA == 0 && parent == nil {
		maxUA = math.MaxInt32
	}
	c := &Current{desc: d, parent: parent, maxUA: maxUA}
	c.cond = sync.NewCond(&c.mu)
	return c, nil
}

func (c *Current) Desc() *Desc      { return c.desc }
func (c *Current) Parent() *Current { return c.parent }

// alloc locking: a child's counters are guarded by its parent's lock so
// that reserve and commit are one critical section on the parent.
func (c *Current) lock() *sync.Mutex {
	if c.parent != nil {
		return &c.parent.mu
	}
	return &c.mu
}
