package customers

import "context"

// Store persists customer profiles keyed by sender identity.
//
// GetOrCreate returns the profile for the identity, creating a fresh one on
// first contact; the second return reports whether a profile was created.
// Implementations hand out detached copies: mutations become visible only
// through Save.
type Store interface {
	GetOrCreate(ctx context.Context, identity string) (*Customer, bool, error)
	Save(ctx context.Context, customer *Customer) error
	All(ctx context.Context) ([]*Customer, error)
}
