// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package power provides access to the HW_POWER block of the Freescale
// MXS (i.MX23/28) power management unit: the register map, masked field
// accessors over a mapped register window, DC-DC clock selection, 5V
// detection bring-up and a diagnostic register dump.
package power

import (
	"fmt"
	"math/bits"
	"os"
	"sync/atomic"
	"syscall"
	"unsafe"
)

// Physical location of the HW_POWER block.
const (
	BasePhysAddr = 0x80044000
	BlockSize    = 0x100
)

// A Reg is one mapped 32 bit control or status register.
type Reg interface {
	Rd() uint32
	Wr(v uint32)
}

// A RegSource hands out register handles at HW_POWER offsets.
type RegSource interface {
	Reg(off uint32) Reg
}

// RdField returns the bits of r covered by mask, shifted down to bit 0.
func RdField(r Reg, mask uint32) uint32 {
	return (r.Rd() & mask) >> uint(bits.TrailingZeros32(mask))
}

// WrField writes v into the bits of r covered by mask, preserving the
// rest of the register.
func WrField(r Reg, mask, v uint32) {
	s := uint(bits.TrailingZeros32(mask))
	r.Wr(r.Rd()&^mask | v<<s&mask)
}

// Block is the mmap'd HW_POWER register window.
type Block struct {
	f   *os.File
	mem []byte
}

// MapBlock maps the HW_POWER block from /dev/mem.
func MapBlock() (*Block, error) { return MapBlockAt(BasePhysAddr) }

func MapBlockAt(addr int64) (*Block, error) {
	f, err := os.OpenFile("/dev/mem", os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, err
	}
	mem, err := syscall.Mmap(int(f.Fd()), addr, BlockSize,
		syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("power: mmap 0x%x: %v", addr, err)
	}
	return &Block{f: f, mem: mem}, nil
}

// Reg returns a handle for the register at the given block offset.
func (b *Block) Reg(off uint32) Reg { return mapped{b, off} }

func (b *Block) Close() error {
	err := syscall.Munmap(b.mem)
	b.mem = nil
	if cerr := b.f.Close(); err == nil {
		err = cerr
	}
	return err
}

type mapped struct {
	b   *Block
	off uint32
}

func (r mapped) ptr() *uint32 {
	return (*uint32)(unsafe.Pointer(&r.b.mem[r.off]))
}

func (r mapped) Rd() uint32  { return atomic.LoadUint32(r.ptr()) }
func (r mapped) Wr(v uint32) { atomic.StoreUint32(r.ptr(), v) }
