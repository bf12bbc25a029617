// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package regulator

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSelector rejects a voltage selector at or above the
	// rail's selector count. Nothing is written to hardware.
	ErrInvalidSelector = errors.New("regulator: voltage selector out of range")

	// ErrInvalidMode rejects modes other than Normal and Fast.
	ErrInvalidMode = errors.New("regulator: invalid mode")

	// ErrBudgetExceeded reports a current request that cannot be
	// satisfied without blocking, from a caller that must not block.
	ErrBudgetExceeded = errors.New("regulator: current budget exceeded")

	// ErrMissingReg reports a bind with a required register window
	// absent.
	ErrMissingReg = errors.New("regulator: required register window missing")

	// ErrBadDesc reports a bind against a descriptor of the wrong kind.
	ErrBadDesc = errors.New("regulator: descriptor kind mismatch")
)

// TimeoutError reports that STS.DC_OK never asserted within the settle
// budget. The hardware is left in the state last written; Sts holds the
// final status register snapshot for diagnostics.
type TimeoutError struct {
	Sts uint32
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("regulator: DC_OK timeout, status 0x%08x", e.Sts)
}
