package interfaces

// CacheStatus describes how a read was served. It is exposed to HTTP clients
// through the Cache-Status header.
type CacheStatus string

const (
	// CacheStatusHit means the entry for the requested key was fresh
	CacheStatusHit CacheStatus = "hit"
	// CacheStatusDerived means the value was taken out of a fresh collection entry
	CacheStatusDerived CacheStatus = "derived"
	// CacheStatusMiss means the data source had to be called
	CacheStatusMiss CacheStatus = "miss"
)

func (cs CacheStatus) String() string {
	return string(cs)
}
