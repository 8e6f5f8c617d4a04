// Package session maps a client session to the cart it is shopping with.
package session

import "context"

// Store keeps the cart id associated with a session id. CartID reports false
// when the session has no cart yet.
type Store interface {
	CartID(ctx context.Context, sessionID string) (string, bool, error)
	SetCartID(ctx context.Context, sessionID, cartID string) error
	Clear(ctx context.Context, sessionID string) error
}
