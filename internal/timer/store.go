package timer

// Store persists the two durable fields of the timer state. The service
// loads once at construction and saves after every committed change to the
// countdown value or the running flag.
type Store interface {
	// Load returns the persisted countdown. Absent or malformed values come
	// back as 0 / not running rather than as an error; the error return is
	// for storage-level failures only.
	Load() (seconds int, running bool, err error)

	// Save writes both durable fields.
	Save(seconds int, running bool) error
}
