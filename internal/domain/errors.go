package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates a request that cannot be served as given.
	ErrInvalidInput = errors.New("invalid input")
	// ErrGateway indicates the payment gateway rejected or failed the request.
	ErrGateway = errors.New("payment gateway error")
	// ErrGatewayTimeout indicates the payment gateway did not answer in time.
	ErrGatewayTimeout = errors.New("payment gateway timeout")
)
