package collection

import "errors"

var (
	// ErrConnectionFailed indicates the client could not reach the
	// collection service.
	ErrConnectionFailed = errors.New("collection: connection failed")

	// ErrInvalidResponse indicates the service returned a malformed or
	// unexpected response.
	ErrInvalidResponse = errors.New("collection: invalid response")

	// ErrMintRejected indicates the service refused to mint the identifier
	// (already minted, or the marketplace lacks mint rights).
	ErrMintRejected = errors.New("collection: mint rejected")

	// ErrDNSLookupFailed indicates an SRV/TXT endpoint lookup failed.
	ErrDNSLookupFailed = errors.New("collection: DNS lookup failed")

	// ErrNoEndpoints indicates no SRV records were found for the domain.
	ErrNoEndpoints = errors.New("collection: no endpoints found")

	// ErrDNSSECValidationFailed indicates the resolver response was not
	// DNSSEC-authenticated.
	ErrDNSSECValidationFailed = errors.New("collection: DNSSEC validation failed")

	// ErrInvalidServiceAddress indicates the advertised service address TXT
	// record is malformed.
	ErrInvalidServiceAddress = errors.New("collection: invalid service address record")
)
