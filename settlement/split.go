package settlement

import (
	"context"
	"fmt"
	"math"
	"math/bits"

	"github.com/Ngipiek/rair-dapp/addr"
	"github.com/Ngipiek/rair-dapp/collection"
)

// Split is the full accounting of one purchase. All amounts are in the
// native currency's smallest unit and always satisfy
//
//	Treasury + Node + Creator + Refund + Retained == Paid
//
// with no remainder: integer truncation dust ends up in Retained, as does
// the creator share of collections without royalty support.
type Split struct {
	Paid     uint64
	Price    uint64
	Refund   uint64
	Treasury uint64
	Node     uint64
	Creator  uint64
	Retained uint64

	// CreatorAddr is the royalty receiver. Zero when the collection does
	// not support royalties, in which case Creator is zero too.
	CreatorAddr addr.Address
}

// ComputeSplit prices one purchase of tokenID against the range price and
// divides the payment between the treasury, the node, and the creator.
//
// Every share is rate * price / FeeDenominator, truncated toward zero; the
// creator rate is whatever the two fees leave of the denominator. Truncation
// dust is retained by the core, as is the whole creator share when the
// collection lacks royalty support or names a zero receiver. The royalty
// amount reported by the collection is advisory: the split always uses the
// marketplace's own rate arithmetic.
func ComputeSplit(ctx context.Context, svc collection.Service, col addr.Address,
	tokenID, price, paid uint64, rangeName string, fees FeeConfig) (*Split, error) {

	if paid < price {
		return nil, fmt.Errorf("%w: paid %d, price %d", ErrInsufficientFunds, paid, price)
	}

	s := &Split{
		Paid:     paid,
		Price:    price,
		Refund:   paid - price,
		Treasury: feeShare(price, fees.TreasuryFeeRate),
		Node:     feeShare(price, fees.NodeFeeRate),
	}

	// Fees above the full denominator leave nothing for the creator.
	var creatorRate uint64
	if combined := fees.TreasuryFeeRate + fees.NodeFeeRate; combined < FeeDenominator {
		creatorRate = FeeDenominator - combined
	}
	creatorShare := feeShare(price, creatorRate)

	// Combined rates above the denominator make the fee shares exceed the
	// price (the carry bits catch the sum wrapping); there is no dust to
	// retain then, only an overdraw.
	var dust uint64
	allotted, c1 := bits.Add64(s.Treasury, s.Node, 0)
	allotted, c2 := bits.Add64(allotted, creatorShare, 0)
	if c1|c2 == 0 && allotted < price {
		dust = price - allotted
	}

	supports, err := svc.SupportsRoyalty(ctx, col)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRoyaltyQuery, err)
	}
	if supports {
		receiver, _, err := svc.RoyaltyInfo(ctx, col, tokenID, price, rangeName)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRoyaltyQuery, err)
		}
		if !receiver.IsZero() {
			s.CreatorAddr = receiver
			s.Creator = creatorShare
		}
	}

	s.Retained = dust
	if s.Creator == 0 {
		s.Retained += creatorShare
	}

	return s, nil
}

// feeShare computes price * rate / FeeDenominator with a 128-bit
// intermediate, so prices in 18-decimal smallest units cannot wrap the
// multiplication. A rate above the denominator whose share would not fit
// a uint64 saturates.
func feeShare(price, rate uint64) uint64 {
	hi, lo := bits.Mul64(price, rate)
	if hi >= FeeDenominator {
		return math.MaxUint64
	}
	share, _ := bits.Div64(hi, lo, FeeDenominator)
	return share
}

// Transfers lists the non-zero disbursements of the split, addressed to the
// given buyer and node. Retained funds stay with the engine and are not a
// transfer.
func (s *Split) Transfers(buyer, node, treasury addr.Address) []Transfer {
	var out []Transfer
	if s.Treasury > 0 {
		out = append(out, Transfer{To: treasury, Amount: s.Treasury})
	}
	if s.Node > 0 {
		out = append(out, Transfer{To: node, Amount: s.Node})
	}
	if s.Creator > 0 {
		out = append(out, Transfer{To: s.CreatorAddr, Amount: s.Creator})
	}
	if s.Refund > 0 {
		out = append(out, Transfer{To: buyer, Amount: s.Refund})
	}
	return out
}
