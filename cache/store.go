package cache

// Store is a minimal byte store for snapshot persistence. Entries are kept
// until overwritten; a stale snapshot must remain readable, so stores never
// expire the values they hold.
type Store interface {
	// Get retrieves the value for a key; ok is false when the key is absent
	Get(key string) (data []byte, ok bool)

	// Set stores a value for a key, replacing any previous value
	Set(key string, data []byte) error

	// ItemCount returns the number of stored items, for metrics
	ItemCount() int
}
