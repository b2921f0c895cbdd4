package settlement

import "errors"

var (
	// ErrInsufficientFunds indicates the payment does not cover the range price.
	ErrInsufficientFunds = errors.New("settlement: insufficient funds")

	// ErrNoMintableSupply indicates the collection reports no mintable
	// tokens left for the product.
	ErrNoMintableSupply = errors.New("settlement: no mintable supply")

	// ErrCollectionQuery indicates a collection info call failed.
	ErrCollectionQuery = errors.New("settlement: collection query failed")

	// ErrRoyaltyQuery indicates a royalty support or info call failed.
	ErrRoyaltyQuery = errors.New("settlement: royalty query failed")

	// ErrTransferFailed indicates the payer rejected or failed a disbursement.
	ErrTransferFailed = errors.New("settlement: transfer failed")

	// ErrMintFailed indicates the external collection refused the mint.
	ErrMintFailed = errors.New("settlement: mint failed")

	// ErrNotOperator indicates the caller is not the authorized operator.
	ErrNotOperator = errors.New("settlement: caller is not the operator")

	// ErrNoRetainedFunds indicates the collection has no retained balance.
	ErrNoRetainedFunds = errors.New("settlement: no retained funds")

	// ErrEventPublish indicates the event sink (journal) rejected an event.
	ErrEventPublish = errors.New("settlement: event publish failed")

	// ErrNilDependency indicates a required engine dependency is missing.
	ErrNilDependency = errors.New("settlement: nil dependency")
)
