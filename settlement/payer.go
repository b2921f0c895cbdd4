package settlement

import (
	"context"
	"fmt"
	"sync"

	"github.com/Ngipiek/rair-dapp/addr"
)

// Transfer is one outbound payment.
type Transfer struct {
	To     addr.Address
	Amount uint64
}

// Payer executes disbursements in two phases so the engine can order them
// around the external mint: Stage validates and reserves everything that can
// fail, Commit applies, Discard releases.
//
// Commit must not fail for a correctly staged disbursement. An error from
// Commit means the payer broke its contract; the engine logs it and reports
// the settlement as failed, but cannot undo an already-performed mint.
type Payer interface {
	Stage(ctx context.Context, transfers []Transfer) (Staged, error)
}

// Staged is a reserved disbursement awaiting Commit or Discard.
// Exactly one of the two must be called, exactly once.
type Staged interface {
	Commit(ctx context.Context) error
	Discard()
}

// MemPayer settles transfers against in-memory balances. Used in tests and
// in single-process deployments where the marketplace custodies funds.
type MemPayer struct {
	mu       sync.Mutex
	balances map[addr.Address]uint64
}

// NewMemPayer creates a MemPayer with no balances.
func NewMemPayer() *MemPayer {
	return &MemPayer{balances: make(map[addr.Address]uint64)}
}

// Balance returns the current balance of an address.
func (p *MemPayer) Balance(a addr.Address) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.balances[a]
}

// Stage validates the transfers and returns a staged disbursement.
// Transfers to the zero address are rejected.
func (p *MemPayer) Stage(ctx context.Context, transfers []Transfer) (Staged, error) {
	for _, t := range transfers {
		if t.To.IsZero() {
			return nil, fmt.Errorf("%w: transfer of %d to zero address", ErrTransferFailed, t.Amount)
		}
	}
	return &memStaged{payer: p, transfers: transfers}, nil
}

var _ Payer = (*MemPayer)(nil)

type memStaged struct {
	payer     *MemPayer
	transfers []Transfer
	done      bool
}

func (s *memStaged) Commit(ctx context.Context) error {
	if s.done {
		return fmt.Errorf("%w: disbursement already finished", ErrTransferFailed)
	}
	s.done = true

	s.payer.mu.Lock()
	defer s.payer.mu.Unlock()
	for _, t := range s.transfers {
		s.payer.balances[t.To] += t.Amount
	}
	return nil
}

func (s *memStaged) Discard() {
	s.done = true
}
