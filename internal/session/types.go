package session

// SourceTag records where an item's image reference came from.
type SourceTag int

const (
	// SourceFetched means the image was retrieved from the provider.
	SourceFetched SourceTag = iota
	// SourceFallback means the provider failed for this slot and a
	// direct, non-cached reference was substituted.
	SourceFallback
)

func (s SourceTag) String() string {
	if s == SourceFallback {
		return "fallback"
	}
	return "fetched"
}

// Item is one card in a batch. Immutable after creation.
type Item struct {
	ID       int
	ImageRef string
	Source   SourceTag
}

// Batch is the ordered, fixed-size set of items for one session.
// Order is stable for the lifetime of the session.
type Batch []Item

// Verdict is the recorded outcome for one item.
type Verdict int

const (
	// VerdictLiked keeps the item for the summary.
	VerdictLiked Verdict = iota
	// VerdictDismissed drops the item.
	VerdictDismissed
)

func (v Verdict) String() string {
	if v == VerdictDismissed {
		return "dismissed"
	}
	return "liked"
}

// Decision pairs an item with its verdict. Created exactly once per
// item, in position order.
type Decision struct {
	ItemID  int
	Verdict Verdict
}

// ViewState is the screen the session is currently on. The three
// states are mutually exclusive; there are no independent flags.
type ViewState int

const (
	// StateLoading means a batch fetch is in flight.
	StateLoading ViewState = iota
	// StateBrowsing means cards are being presented one at a time.
	StateBrowsing
	// StateSummary means all items have been decided.
	StateSummary
)

func (s ViewState) String() string {
	switch s {
	case StateBrowsing:
		return "browsing"
	case StateSummary:
		return "summary"
	default:
		return "loading"
	}
}
