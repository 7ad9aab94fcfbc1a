package interfaces

import "context"

//go:generate mockgen -destination=mocks/users.go . IUsersSource,IUsersService

// User is a single directory record
type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// IUsersSource provides raw user records
type IUsersSource interface {
	// FetchAll returns the whole ordered user collection
	FetchAll(ctx context.Context) ([]User, error)

	// FetchOne returns the user with the given id
	FetchOne(ctx context.Context, id int) (User, error)
}

// IUsersService is consumed by the HTTP layer
type IUsersService interface {
	// ListUsers returns all users, served from cache when fresh
	ListUsers(ctx context.Context) ([]User, CacheStatus, error)

	// GetUser returns one user, preferring cached data
	GetUser(ctx context.Context, id int) (User, CacheStatus, error)

	// InvalidateUsers marks all cached user data as invalidated
	InvalidateUsers() int

	// Healthy reports whether the service can answer requests
	Healthy() bool
}
