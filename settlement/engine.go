// Package settlement implements the marketplace core: the purchase pipeline
// that prices a token, splits the payment, disburses it, and mints, plus the
// listing and administrative operations around it.
//
// All public operations of the Engine are serialized by a single mutex, so a
// purchase observes and mutates the catalog atomically with respect to every
// listing edit and every other purchase.
package settlement

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Ngipiek/rair-dapp/access"
	"github.com/Ngipiek/rair-dapp/addr"
	"github.com/Ngipiek/rair-dapp/catalog"
	"github.com/Ngipiek/rair-dapp/collection"
	"github.com/Ngipiek/rair-dapp/event"
)

// EngineConfig carries the engine's dependencies and initial parameters.
type EngineConfig struct {
	// Operator may change fees, replace the treasury, and withdraw
	// retained funds.
	Operator addr.Address

	// Fees is the initial fee configuration.
	Fees FeeConfig

	// Access validates listing permissions. Required.
	Access *access.Validator

	// Collection is the external token collection service. Required.
	Collection collection.Service

	// Payer executes disbursements. Required.
	Payer Payer

	// Events receives committed domain events. Defaults to event.NopSink.
	Events event.Sink

	// Retained seeds the per-collection retained-funds balances, typically
	// from ledger.ReplayRetained after a restart.
	Retained map[addr.Address]uint64

	// Logger is the engine's structured logger. Defaults to a no-op logger.
	Logger *zerolog.Logger
}

// Engine is the marketplace core. Safe for concurrent use.
type Engine struct {
	mu sync.Mutex

	operator addr.Address
	fees     FeeConfig
	access   *access.Validator
	col      collection.Service
	payer    Payer
	sink     event.Sink
	log      zerolog.Logger

	cat *catalog.Catalog

	// retained holds, per collection, the creator shares kept by the core:
	// sales without royalty support plus fee truncation dust.
	retained map[addr.Address]uint64
}

// NewEngine creates an Engine with an empty catalog.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Access == nil {
		return nil, fmt.Errorf("%w: access validator", ErrNilDependency)
	}
	if cfg.Collection == nil {
		return nil, fmt.Errorf("%w: collection service", ErrNilDependency)
	}
	if cfg.Payer == nil {
		return nil, fmt.Errorf("%w: payer", ErrNilDependency)
	}
	sink := cfg.Events
	if sink == nil {
		sink = event.NopSink{}
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	retained := make(map[addr.Address]uint64, len(cfg.Retained))
	for col, amount := range cfg.Retained {
		if amount > 0 {
			retained[col] = amount
		}
	}
	return &Engine{
		operator: cfg.Operator,
		fees:     cfg.Fees,
		access:   cfg.Access,
		col:      cfg.Collection,
		payer:    cfg.Payer,
		sink:     sink,
		log:      log,
		cat:      catalog.New(),
		retained: retained,
	}, nil
}

// publish forwards an event to the sink, wrapping failures.
func (e *Engine) publish(kind event.Kind, payload any) error {
	if err := e.sink.Publish(kind, payload); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEventPublish, kind, err)
	}
	return nil
}

// liveOffer returns the offer at offerIndex if it is a live listing.
func (e *Engine) liveOffer(offerIndex int) (*catalog.Offer, error) {
	off, err := e.cat.Offer(offerIndex)
	if err != nil {
		return nil, catalog.ErrInvalidOffer
	}
	if off.CollectionAddress.IsZero() {
		return nil, catalog.ErrInvalidOffer
	}
	return off, nil
}

// CreateOffer lists a collection with an initial set of ranges. The caller
// must hold the creator capability and the core the minter capability, and
// the collection must report mintable supply for the product.
//
// Returns the new offer's catalog position.
func (e *Engine) CreateOffer(ctx context.Context, caller, col, node addr.Address,
	productIndex uint64, inputs []catalog.RangeInput) (int, error) {

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.access.ValidateRoles(ctx, col, caller); err != nil {
		return 0, err
	}
	info, err := e.col.GetCollectionInfo(ctx, col, productIndex)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCollectionQuery, err)
	}
	if info.MintableRemaining == 0 {
		return 0, fmt.Errorf("%w: product %d of %s", ErrNoMintableSupply, productIndex, col)
	}

	offerIndex, err := e.cat.CreateOffer(col, node, productIndex, inputs)
	if err != nil {
		return 0, err
	}

	if err := e.publishOfferCreated(col, productIndex, offerIndex, 0, inputs); err != nil {
		e.cat.RemoveLastOffer()
		return 0, err
	}

	e.log.Info().
		Stringer("collection", col).
		Int("offer", offerIndex).
		Int("ranges", len(inputs)).
		Msg("offer created")
	return offerIndex, nil
}

// publishOfferCreated emits the OfferAdded event followed by one
// RangeAppended per new range, starting at firstRange.
func (e *Engine) publishOfferCreated(col addr.Address, productIndex uint64,
	offerIndex, firstRange int, inputs []catalog.RangeInput) error {

	if firstRange == 0 {
		if err := e.publish(event.KindOfferAdded, event.OfferAdded{
			Collection:    col,
			ProductIndex:  productIndex,
			RangesCreated: len(inputs),
			CatalogIndex:  offerIndex,
		}); err != nil {
			return err
		}
	}
	for i, in := range inputs {
		if err := e.publish(event.KindRangeAppended, event.RangeAppended{
			Collection:   col,
			ProductIndex: productIndex,
			OfferIndex:   offerIndex,
			RangeIndex:   firstRange + i,
			Start:        in.Start,
			End:          in.End,
			Price:        in.Price,
			Name:         in.Name,
		}); err != nil {
			return err
		}
	}
	return nil
}

// AppendRange adds one range to an existing offer. The caller must hold the
// creator capability on the offer's collection.
//
// Returns the new range's position within the offer.
func (e *Engine) AppendRange(ctx context.Context, caller addr.Address,
	offerIndex int, in catalog.RangeInput) (int, error) {

	first, err := e.appendRanges(ctx, caller, offerIndex, []catalog.RangeInput{in})
	return first, err
}

// AppendRangeBatch adds several ranges to an existing offer in one call.
// The four arrays must have equal length. All bounds are validated before
// any range is created.
//
// Returns the position of the first new range.
func (e *Engine) AppendRangeBatch(ctx context.Context, caller addr.Address,
	offerIndex int, starts, ends, prices []uint64, names []string) (int, error) {

	inputs, err := catalog.BuildRangeInputs(starts, ends, prices, names)
	if err != nil {
		return 0, err
	}
	return e.appendRanges(ctx, caller, offerIndex, inputs)
}

func (e *Engine) appendRanges(ctx context.Context, caller addr.Address,
	offerIndex int, inputs []catalog.RangeInput) (int, error) {

	e.mu.Lock()
	defer e.mu.Unlock()

	off, err := e.liveOffer(offerIndex)
	if err != nil {
		return 0, err
	}
	col, productIndex := off.CollectionAddress, off.ProductIndex
	if err := e.access.ValidateRoles(ctx, col, caller); err != nil {
		return 0, err
	}

	first, err := e.cat.AppendRanges(offerIndex, inputs)
	if err != nil {
		return 0, err
	}

	if err := e.publishOfferCreated(col, productIndex, offerIndex, first, inputs); err != nil {
		for range inputs {
			e.cat.RemoveLastRange(offerIndex)
		}
		return 0, err
	}

	e.log.Info().
		Stringer("collection", col).
		Int("offer", offerIndex).
		Int("ranges", len(inputs)).
		Msg("ranges appended")
	return first, nil
}

// UpdateRange shrinks a range's bounds and replaces its price and name.
// Expanding either bound fails. The caller must hold the creator capability
// on the offer's collection.
func (e *Engine) UpdateRange(ctx context.Context, caller addr.Address,
	offerIndex, rangeIndex int, newStart, newEnd, price uint64, name string) error {

	e.mu.Lock()
	defer e.mu.Unlock()

	off, err := e.liveOffer(offerIndex)
	if err != nil {
		return err
	}
	col := off.CollectionAddress
	if err := e.access.ValidateRoles(ctx, col, caller); err != nil {
		return err
	}

	prev, remaining, err := e.cat.UpdateRange(offerIndex, rangeIndex, newStart, newEnd, price, name)
	if err != nil {
		return err
	}

	if err := e.publish(event.KindOfferUpdated, event.OfferUpdated{
		Collection:      col,
		OfferIndex:      offerIndex,
		RangeIndex:      rangeIndex,
		RemainingSupply: remaining,
		Price:           price,
		Name:            name,
	}); err != nil {
		e.cat.RestoreRange(offerIndex, rangeIndex, prev)
		return err
	}

	e.log.Info().
		Stringer("collection", col).
		Int("offer", offerIndex).
		Int("range", rangeIndex).
		Uint64("remaining", remaining).
		Msg("range updated")
	return nil
}

// Buy settles one token purchase: it validates the target range, computes
// the payment split, stages the disbursement, records the sale, mints, and
// only then commits the disbursement. Any failure before the mint rolls the
// catalog and the staged funds back completely.
//
// Returns the split for the caller's receipt.
func (e *Engine) Buy(ctx context.Context, buyer addr.Address,
	offerIndex, rangeIndex int, tokenID, paid uint64) (*Split, error) {

	e.mu.Lock()
	defer e.mu.Unlock()

	off, rng, err := e.cat.ValidatePurchase(offerIndex, rangeIndex, tokenID)
	if err != nil {
		return nil, err
	}
	col, node := off.CollectionAddress, off.NodeAddress

	split, err := ComputeSplit(ctx, e.col, col, tokenID, rng.Price, paid, rng.Name, e.fees)
	if err != nil {
		return nil, err
	}

	staged, err := e.payer.Stage(ctx, split.Transfers(buyer, node, e.fees.Treasury))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}

	remaining, soldOut, err := e.cat.DecrementSupply(offerIndex, rangeIndex)
	if err != nil {
		staged.Discard()
		return nil, err
	}
	if split.Retained > 0 {
		e.retained[col] += split.Retained
	}

	minted := false
	settled := false
	defer func() {
		if settled || minted {
			return
		}
		e.cat.RevertSale(offerIndex, rangeIndex)
		if split.Retained > 0 {
			e.retained[col] -= split.Retained
		}
		staged.Discard()
	}()

	if err := e.col.Mint(ctx, col, buyer, off.ProductIndex, tokenID); err != nil {
		return nil, fmt.Errorf("%w: token %d of %s: %w", ErrMintFailed, tokenID, col, err)
	}
	minted = true

	// The token exists now; nothing after this point may undo the sale.
	if err := staged.Commit(ctx); err != nil {
		e.log.Error().Err(err).
			Stringer("collection", col).
			Uint64("token", tokenID).
			Msg("disbursement commit failed after mint")
		return nil, fmt.Errorf("%w: commit after mint: %w", ErrTransferFailed, err)
	}
	settled = true

	e.publishSettled(buyer, col, offerIndex, rangeIndex, tokenID, soldOut, split)

	e.log.Info().
		Stringer("buyer", buyer).
		Stringer("collection", col).
		Uint64("token", tokenID).
		Uint64("remaining", remaining).
		Msg("purchase settled")
	return split, nil
}

// publishSettled emits the events of a settled purchase. The sale is already
// final, so sink failures are logged rather than surfaced.
func (e *Engine) publishSettled(buyer, col addr.Address,
	offerIndex, rangeIndex int, tokenID uint64, soldOut bool, split *Split) {

	logPublish := func(err error) {
		if err != nil {
			e.log.Error().Err(err).
				Stringer("collection", col).
				Uint64("token", tokenID).
				Msg("journal append failed for settled purchase")
		}
	}

	logPublish(e.publish(event.KindTokenMinted, event.TokenMinted{
		Buyer:      buyer,
		Collection: col,
		OfferIndex: offerIndex,
		RangeIndex: rangeIndex,
		TokenID:    tokenID,
	}))
	if soldOut {
		logPublish(e.publish(event.KindRangeSoldOut, event.RangeSoldOut{
			Collection: col,
			OfferIndex: offerIndex,
			RangeIndex: rangeIndex,
		}))
	}
	if split.Retained > 0 {
		logPublish(e.publish(event.KindRetainedFunds, event.RetainedFunds{
			Collection: col,
			Amount:     split.Retained,
		}))
	}
}

// SetTreasuryAddress replaces the treasury payee. Operator only.
func (e *Engine) SetTreasuryAddress(caller, treasury addr.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller != e.operator {
		return fmt.Errorf("%w: %s", ErrNotOperator, caller)
	}
	if err := e.publish(event.KindTreasuryChanged, event.TreasuryChanged{Treasury: treasury}); err != nil {
		return err
	}
	e.fees.Treasury = treasury
	e.log.Info().Stringer("treasury", treasury).Msg("treasury replaced")
	return nil
}

// SetTreasuryFeeRate replaces the treasury fee rate. Operator only. The rate
// is taken as given; keeping the combined rates below FeeDenominator is the
// operator's responsibility.
func (e *Engine) SetTreasuryFeeRate(caller addr.Address, rate uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller != e.operator {
		return fmt.Errorf("%w: %s", ErrNotOperator, caller)
	}
	if err := e.publish(event.KindTreasuryFeeChanged, event.TreasuryFeeChanged{Rate: rate}); err != nil {
		return err
	}
	e.fees.TreasuryFeeRate = rate
	e.log.Info().Uint64("rate", rate).Msg("treasury fee replaced")
	return nil
}

// SetNodeFeeRate replaces the node fee rate. Operator only.
func (e *Engine) SetNodeFeeRate(caller addr.Address, rate uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller != e.operator {
		return fmt.Errorf("%w: %s", ErrNotOperator, caller)
	}
	if err := e.publish(event.KindNodeFeeChanged, event.NodeFeeChanged{Rate: rate}); err != nil {
		return err
	}
	e.fees.NodeFeeRate = rate
	e.log.Info().Uint64("rate", rate).Msg("node fee replaced")
	return nil
}

// WithdrawRetained pays out a collection's full retained balance to the
// given address. Operator only.
//
// Returns the amount withdrawn.
func (e *Engine) WithdrawRetained(ctx context.Context, caller, col, to addr.Address) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller != e.operator {
		return 0, fmt.Errorf("%w: %s", ErrNotOperator, caller)
	}
	amount := e.retained[col]
	if amount == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNoRetainedFunds, col)
	}

	staged, err := e.payer.Stage(ctx, []Transfer{{To: to, Amount: amount}})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}
	delete(e.retained, col)
	if err := staged.Commit(ctx); err != nil {
		e.retained[col] = amount
		return 0, fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}

	if err := e.publish(event.KindRetainedWithdrawn, event.RetainedWithdrawn{
		Collection: col,
		To:         to,
		Amount:     amount,
	}); err != nil {
		// The payout is already committed; surface the gap in the log only.
		e.log.Error().Err(err).Stringer("collection", col).Msg("journal append failed for withdrawal")
	}

	e.log.Info().
		Stringer("collection", col).
		Stringer("to", to).
		Uint64("amount", amount).
		Msg("retained funds withdrawn")
	return amount, nil
}

// ValidateRoles reports whether caller could list or edit offers for the
// collection right now. Read-only; listing operations re-check on execution.
func (e *Engine) ValidateRoles(ctx context.Context, col, caller addr.Address) error {
	return e.access.ValidateRoles(ctx, col, caller)
}

// LookupOfferIndex returns the catalog position of a collection's live offer.
func (e *Engine) LookupOfferIndex(col addr.Address) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cat.LookupOfferIndex(col)
}

// OfferSummary returns the stored fields of an offer.
func (e *Engine) OfferSummary(offerIndex int) (*catalog.OfferSummary, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cat.OfferSummary(offerIndex)
}

// RangeSummary returns the stored fields of one range.
func (e *Engine) RangeSummary(offerIndex, rangeIndex int) (*catalog.RangeSummary, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cat.RangeSummary(offerIndex, rangeIndex)
}

// OfferCount returns the number of offers ever created.
func (e *Engine) OfferCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cat.Len()
}

// OpenSales returns the count of ranges with remaining supply above zero.
func (e *Engine) OpenSales() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cat.OpenSales()
}

// RetainedBalance returns the funds held by the core for a collection.
func (e *Engine) RetainedBalance(col addr.Address) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.retained[col]
}

// Fees returns the current fee configuration.
func (e *Engine) Fees() FeeConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fees
}

// Operator returns the engine's operator address.
func (e *Engine) Operator() addr.Address {
	return e.operator
}
