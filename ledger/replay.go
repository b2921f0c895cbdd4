package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/Ngipiek/rair-dapp/addr"
	"github.com/Ngipiek/rair-dapp/event"
)

// ReplayRetained folds the journal into the per-collection retained-funds
// balances: RetainedFunds entries add, RetainedWithdrawn entries subtract.
// The result seeds the settlement engine after a restart.
func ReplayRetained(j Journal) (map[addr.Address]uint64, error) {
	balances := make(map[addr.Address]uint64)

	err := j.Replay(func(e Entry) error {
		switch e.Kind {
		case event.KindRetainedFunds:
			var p event.RetainedFunds
			if err := json.Unmarshal(e.Payload, &p); err != nil {
				return fmt.Errorf("%w: seq %d: %w", ErrCorruptEntry, e.Seq, err)
			}
			balances[p.Collection] += p.Amount

		case event.KindRetainedWithdrawn:
			var p event.RetainedWithdrawn
			if err := json.Unmarshal(e.Payload, &p); err != nil {
				return fmt.Errorf("%w: seq %d: %w", ErrCorruptEntry, e.Seq, err)
			}
			if balances[p.Collection] < p.Amount {
				return fmt.Errorf("%w: seq %d: withdrawal exceeds balance", ErrCorruptEntry, e.Seq)
			}
			balances[p.Collection] -= p.Amount
			if balances[p.Collection] == 0 {
				delete(balances, p.Collection)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return balances, nil
}
