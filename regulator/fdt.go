// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package regulator

import (
	"strings"

	"github.com/platinasystems/fdt"
	"github.com/platinasystems/log"

	"github.com/platinasystems/mxs-power/power"
)

// Bound is the result of binding every regulator node of a device tree
// against one mapped HW_POWER block.
type Bound struct {
	Voltages map[string]*Voltage
	Currents map[string]*Current
}

// FromFdt walks the tree for fsl,mxs-regulator compatibles and builds
// instances over the given block. Voltage rails come from the static
// descriptor table; the overall-current node roots the current budget
// with its regulator-max-microamp property, and any other current node
// becomes a child of that root.
func FromFdt(t *fdt.Tree, blk power.RegSource, cfg Config) (*Bound, error) {
	b := &Bound{
		Voltages: make(map[string]*Voltage),
		Currents: make(map[string]*Current),
	}

	var nodes []*fdt.Node
	t.EachProperty("compatible", "fsl,mxs-regulator", func(n *fdt.Node, name, value string) {
		nodes = append(nodes, n)
	})

	var err error
	bind := func(n *fdt.Node, root *Current) *Current {
		compat := t.PropString(n.Properties["compatible"])
		maxUA := 0
		if p, found := n.Properties["regulator-max-microamp"]; found {
			maxUA = int(t.PropUint32(p))
		}

		switch d := DescByCompatible(compat); {
		case d == nil && strings.HasPrefix(compat, "fsl,mxs-regulator-current"):
			name := nodeName(t, n)
			c, cerr := NewCurrent(CurrentDesc(name, maxUA), root, maxUA)
			if cerr != nil {
				err = cerr
				return root
			}
			b.Currents[name] = c
		case d == nil:
			log.Print("regulator: no descriptor for ", compat)
		case d.voltage():
			regs := Regs{
				Ctrl: blk.Reg(d.CtrlOff),
				Sts:  blk.Reg(power.Sts),
				V5:   blk.Reg(power.FiveVCtrl),
			}
			v, verr := NewVoltage(d, regs, cfg)
			if verr != nil {
				err = verr
				return root
			}
			b.Voltages[d.Name] = v
		default:
			c, cerr := NewCurrent(d, nil, maxUA)
			if cerr != nil {
				err = cerr
				return root
			}
			b.Currents[d.Name] = c
			root = c
		}
		return root
	}

	// root the current budget first so children can attach to it
	var root *Current
	for _, n := range nodes {
		if t.PropString(n.Properties["compatible"]) == "fsl,mxs-regulator-overall-current" {
			root = bind(n, root)
		}
	}
	for _, n := range nodes {
		if t.PropString(n.Properties["compatible"]) != "fsl,mxs-regulator-overall-current" {
			root = bind(n, root)
		}
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func nodeName(t *fdt.Tree, n *fdt.Node) string {
	if p, found := n.Properties["regulator-name"]; found {
		return t.PropString(p)
	}
	return n.Name
}
