// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package regulator

// SetCurrentLimit moves the instance's allocated current to uA.
//
// With a parent, the delta is reserved against the parent's remaining
// headroom under the parent's lock. When the headroom is short a Fast
// mode instance fails immediately; a Normal mode instance waits on the
// parent until sibling releases create room, re-checking on every wake.
// A commit that shrinks the allocation wakes every waiter, since one
// release can unblock several smaller requests.
//
// Without a parent the update is unconditional.
func (c *Current) SetCurrentLimit(uA int) error {
	if c.maxUA != 0 && uA > c.maxUA {
		return ErrBudgetExceeded
	}

	p := c.parent
	if p == nil {
		c.mu.Lock()
		shrank := uA < c.curUA
		c.curUA = uA
		if shrank {
			c.cond.Broadcast()
		}
		c.mu.Unlock()
		return nil
	}

	p.mu.Lock()
	delta := uA - c.curUA
	for p.curUA+delta > p.maxUA {
		if c.mode == Fast {
			p.mu.Unlock()
			return ErrBudgetExceeded
		}
		p.cond.Wait()
	}
	p.curUA += delta
	c.curUA = uA
	if delta < 0 {
		p.cond.Broadcast()
	}
	p.mu.Unlock()
	return nil
}

// CurrentLimit returns the instance's allocated current. For a parent
// this is the sum of its children's commitments.
func (c *Current) CurrentLimit() int {
	l := c.lock()
	l.Lock()
	defer l.Unlock()
	return c.curUA
}

// MaxUA returns the instance's ceiling.
func (c *Current) MaxUA() int { return c.maxUA }
