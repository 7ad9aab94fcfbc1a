package users

import (
	"encoding/json"
	"fmt"

	"github.com/status-im/user-directory/interfaces"
)

// Collection is an ordered list of users indexed by id.
// It is never modified after creation, so it can be shared between readers.
type Collection struct {
	items []interfaces.User
	index map[int]int
}

// NewCollection builds a collection keeping the given order.
// Duplicate ids are rejected.
func NewCollection(items []interfaces.User) (*Collection, error) {
	c := &Collection{
		items: make([]interfaces.User, len(items)),
		index: make(map[int]int, len(items)),
	}
	copy(c.items, items)

	for pos, u := range c.items {
		if _, ok := c.index[u.ID]; ok {
			return nil, fmt.Errorf("duplicate user id %d", u.ID)
		}
		c.index[u.ID] = pos
	}
	return c, nil
}

// Find returns the user with the given id
func (c *Collection) Find(id int) (interfaces.User, bool) {
	pos, ok := c.index[id]
	if !ok {
		return interfaces.User{}, false
	}
	return c.items[pos], true
}

// Items returns a copy of the users in source order
func (c *Collection) Items() []interfaces.User {
	items := make([]interfaces.User, len(c.items))
	copy(items, c.items)
	return items
}

// Len returns the number of users
func (c *Collection) Len() int {
	return len(c.items)
}

// MarshalJSON encodes the collection as a plain array
func (c *Collection) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.items)
}
