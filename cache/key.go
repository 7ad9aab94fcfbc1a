package cache

import (
	"fmt"
	"strings"
)

// KeySeparator joins query key parts
const KeySeparator = ":"

// Key builds a cache key from its parts: Key("users") is "users",
// Key("users", 1) is "users:1".
func Key(parts ...any) string {
	s := make([]string, len(parts))
	for i, part := range parts {
		s[i] = fmt.Sprint(part)
	}
	return strings.Join(s, KeySeparator)
}

// MatchesPrefix reports whether key equals prefix or is nested under it.
// "users" matches "users" and "users:1" but not "users2".
// An empty prefix matches every key.
func MatchesPrefix(key, prefix string) bool {
	if prefix == "" || key == prefix {
		return true
	}
	return strings.HasPrefix(key, prefix+KeySeparator)
}
