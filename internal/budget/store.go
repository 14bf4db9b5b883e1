package budget

// Origin reports how the persisted counter value was obtained at load time.
type Origin int

const (
	// OriginFresh means no stored value existed; the counter starts at zero.
	OriginFresh Origin = iota
	// OriginPersisted means a stored value was read successfully.
	OriginPersisted
	// OriginDefaulted means the stored value was unreadable or non-numeric
	// and the counter fell back to zero.
	OriginDefaulted
)

func (o Origin) String() string {
	switch o {
	case OriginFresh:
		return "fresh"
	case OriginPersisted:
		return "persisted"
	case OriginDefaulted:
		return "defaulted"
	default:
		return "unknown"
	}
}

// LoadResult captures the outcome of reading the persisted counter. Err is
// informational: the load still succeeds with Used=0 when Origin is
// OriginDefaulted.
type LoadResult struct {
	Used   int64
	Origin Origin
	Err    error
}

// Store is the durable backing for a spend ledger. Implementations are not
// required to be safe for concurrent writer processes unless they document
// otherwise.
type Store interface {
	// Load reads the persisted counter. It never fails: missing or corrupt
	// state yields zero with the corresponding origin.
	Load() LoadResult
	// Save persists the counter value, replacing any previous value.
	Save(used int64) error
	// Reset removes the persisted counter so the next load starts fresh.
	Reset() error
	// Location describes where the counter lives, for reporting.
	Location() string
	// Close releases any resources (locks, database handles) held by the store.
	Close() error
}
