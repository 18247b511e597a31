package user

import "context"

type UserRepository interface {
	GetByID(ctx context.Context, userID uint) (*User, error)
	// GetByIDs returns the users found, keyed by ID. Missing IDs are
	// simply absent from the map, not an error.
	GetByIDs(ctx context.Context, userIDs []uint) (map[uint]*User, error)
}
