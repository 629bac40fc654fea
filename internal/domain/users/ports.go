package users

import "context"

// Repository defines the interface for user persistence.
// Lookups return (nil, nil) when the user does not exist.
type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}
