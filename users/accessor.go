package users

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/status-im/user-directory/cache"
	"github.com/status-im/user-directory/interfaces"
)

// UsersKey is the cache key of the whole users collection
var UsersKey = cache.Key("users")

// UserKey returns the cache key of a single user
func UserKey(id int) string {
	return cache.Key("users", id)
}

// Accessor resolves single users, answering from a fresh cached collection
// when there is one and going to the source otherwise
type Accessor struct {
	cache  interfaces.IQueryStateReader
	source interfaces.IUsersSource
}

// NewAccessor creates an accessor over the given cache and source
func NewAccessor(cache interfaces.IQueryStateReader, source interfaces.IUsersSource) *Accessor {
	return &Accessor{
		cache:  cache,
		source: source,
	}
}

// Resolve returns the user with the given id.
// A fresh collection is authoritative: an id missing from it is reported as
// ErrNotFound without asking the source. The result of a source lookup is
// never written into the collection entry.
func (a *Accessor) Resolve(ctx context.Context, id int) (interfaces.User, interfaces.CacheStatus, error) {
	if users, ok := a.freshCollection(); ok {
		user, found := users.Find(id)
		if !found {
			return interfaces.User{}, interfaces.CacheStatusDerived, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		logrus.WithField("id", id).Info("Returning user from cache")
		return user, interfaces.CacheStatusDerived, nil
	}

	logrus.WithField("id", id).Debug("Users collection not cached, asking source")
	user, err := a.source.FetchOne(ctx, id)
	if err != nil {
		return interfaces.User{}, interfaces.CacheStatusMiss, err
	}
	return user, interfaces.CacheStatusMiss, nil
}

func (a *Accessor) freshCollection() (*Collection, bool) {
	state, ok := a.cache.GetQueryState(UsersKey)
	if !ok || !state.IsFresh() {
		return nil, false
	}
	users, ok := state.Data.(*Collection)
	return users, ok
}
