package network

import "errors"

var (
	// ErrConnectionFailed indicates the client could not reach the node or got a non-2xx reply.
	ErrConnectionFailed = errors.New("network: connection failed")

	// ErrTxNotFound indicates the node does not know the requested transaction.
	ErrTxNotFound = errors.New("network: transaction not found")

	// ErrInvalidResponse indicates the node returned a malformed or unexpected response.
	ErrInvalidResponse = errors.New("network: invalid response")

	// ErrMissingConfig indicates a network with no node URL configured.
	ErrMissingConfig = errors.New("network: node URL not configured")

	// ErrDNSLookupFailed indicates a DNS query error.
	ErrDNSLookupFailed = errors.New("network: DNS lookup failed")

	// ErrDNSSECValidationFailed indicates the resolver did not authenticate the answer.
	ErrDNSSECValidationFailed = errors.New("network: DNSSEC validation failed")

	// ErrNoEndpoints indicates SRV discovery returned no nodes.
	ErrNoEndpoints = errors.New("network: no node endpoints found")
)
