// Package session owns the authoritative state of one browsing
// session: the batch, the position, the accumulated decisions, and the
// Loading -> Browsing -> Summary view-state machine.
package session

import (
	"errors"
	"fmt"

	"github.com/abelbrown/pawdeck/internal/logging"
)

// ErrInvalidTransition is returned when an operation is called in a
// view state that does not permit it. This is a contract violation by
// the caller, not a recoverable condition.
var ErrInvalidTransition = errors.New("session: invalid state transition")

// ErrNoCurrentItem is returned by CurrentItem outside of Browsing.
var ErrNoCurrentItem = errors.New("session: no current item")

// Releaser frees cached binary resources for a superseded batch.
// Implemented by the image cache; nil disables release.
type Releaser interface {
	ReleaseGeneration(gen uint64) error
}

// Controller is the single owner of session state. Not safe for
// concurrent use; the UI event loop serializes all mutation.
type Controller struct {
	batchSize int
	releaser  Releaser

	gen      uint64
	state    ViewState
	batch    Batch
	position int
	liked    []Item
	history  []Decision
}

// NewController creates a Controller for batches of batchSize items.
// The controller starts in Loading with no batch; call BeginLoad to
// obtain the first generation before fetching.
func NewController(batchSize int, releaser Releaser) *Controller {
	return &Controller{
		batchSize: batchSize,
		releaser:  releaser,
		state:     StateLoading,
	}
}

// BeginLoad starts a new session load. It releases the cached
// resources of exactly the batch being superseded, clears all session
// state, and returns the new generation. Fetch results must carry this
// generation back to CompleteLoad.
func (c *Controller) BeginLoad() uint64 {
	if c.batch != nil {
		c.release(c.gen)
	}

	c.gen++
	c.state = StateLoading
	c.batch = nil
	c.position = 0
	c.liked = nil
	c.history = nil

	logging.Debug("session load started", "generation", c.gen)
	return c.gen
}

// CompleteLoad installs a fetched batch. Results tagged with a
// generation other than the current one are stale (a newer load has
// already started); they are dropped and their resources released, and
// CompleteLoad reports false.
func (c *Controller) CompleteLoad(gen uint64, batch Batch) bool {
	if gen != c.gen {
		logging.Debug("stale batch dropped", "generation", gen, "current", c.gen)
		c.release(gen)
		return false
	}
	if len(batch) != c.batchSize {
		// The fetcher guarantees exactly batchSize items; anything
		// else is a bug worth surfacing in the log.
		logging.Error("batch size mismatch", "want", c.batchSize, "got", len(batch))
	}

	c.batch = batch
	c.position = 0
	c.state = StateBrowsing
	logging.Info("session browsing", "generation", gen, "items", len(batch))
	return true
}

// RecordDecision applies a verdict to the current item and advances.
// Only legal while Browsing with items remaining; any other call is a
// programming error and returns ErrInvalidTransition without touching
// state.
func (c *Controller) RecordDecision(v Verdict) error {
	if c.state != StateBrowsing || c.position >= len(c.batch) {
		return fmt.Errorf("%w: recordDecision in %s at position %d", ErrInvalidTransition, c.state, c.position)
	}

	item := c.batch[c.position]
	c.history = append(c.history, Decision{ItemID: item.ID, Verdict: v})
	if v == VerdictLiked {
		c.liked = append(c.liked, item)
	}
	c.position++

	if c.position == len(c.batch) {
		c.state = StateSummary
		logging.Info("session complete", "liked", len(c.liked), "of", len(c.batch))
	}
	return nil
}

// Reset discards the session and starts a fresh load. Equivalent to
// BeginLoad from any state.
func (c *Controller) Reset() uint64 {
	return c.BeginLoad()
}

// CurrentItem returns the item awaiting a decision.
func (c *Controller) CurrentItem() (Item, error) {
	if c.state != StateBrowsing || c.position >= len(c.batch) {
		return Item{}, ErrNoCurrentItem
	}
	return c.batch[c.position], nil
}

// State returns the current view state.
func (c *Controller) State() ViewState {
	return c.state
}

// Generation returns the current session generation.
func (c *Controller) Generation() uint64 {
	return c.gen
}

// Position returns how many decisions have been recorded.
func (c *Controller) Position() int {
	return c.position
}

// BatchSize returns the configured batch size.
func (c *Controller) BatchSize() int {
	return c.batchSize
}

// Liked returns the liked items in decision order. The returned slice
// is the controller's own; callers must not mutate it.
func (c *Controller) Liked() []Item {
	return c.liked
}

// Decisions returns all recorded decisions in order.
func (c *Controller) Decisions() []Decision {
	return c.history
}

func (c *Controller) release(gen uint64) {
	if c.releaser == nil {
		return
	}
	if err := c.releaser.ReleaseGeneration(gen); err != nil {
		logging.Warn("failed to release batch resources", "generation", gen, "error", err)
	}
}
