package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReleaser records which generations were released.
type fakeReleaser struct {
	released []uint64
}

func (f *fakeReleaser) ReleaseGeneration(gen uint64) error {
	f.released = append(f.released, gen)
	return nil
}

func testBatch(n int) Batch {
	batch := make(Batch, n)
	for i := range batch {
		batch[i] = Item{ID: i, ImageRef: "https://example.test/cat", Source: SourceFetched}
	}
	return batch
}

func TestControllerFullSession(t *testing.T) {
	t.Parallel()

	c := NewController(3, nil)
	assert.Equal(t, StateLoading, c.State())

	gen := c.BeginLoad()
	require.True(t, c.CompleteLoad(gen, testBatch(3)))
	assert.Equal(t, StateBrowsing, c.State())

	// dismiss, like, like
	require.NoError(t, c.RecordDecision(VerdictDismissed))
	assert.Equal(t, 1, c.Position())
	assert.Empty(t, c.Liked())
	assert.Equal(t, StateBrowsing, c.State())

	require.NoError(t, c.RecordDecision(VerdictLiked))
	assert.Equal(t, 2, c.Position())
	require.Len(t, c.Liked(), 1)
	assert.Equal(t, 1, c.Liked()[0].ID)

	require.NoError(t, c.RecordDecision(VerdictLiked))
	assert.Equal(t, 3, c.Position())
	require.Len(t, c.Liked(), 2)
	assert.Equal(t, 1, c.Liked()[0].ID)
	assert.Equal(t, 2, c.Liked()[1].ID)
	assert.Equal(t, StateSummary, c.State())
}

func TestControllerLikedCountMatchesVerdicts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		verdicts []Verdict
		liked    int
	}{
		{name: "all liked", verdicts: []Verdict{VerdictLiked, VerdictLiked, VerdictLiked}, liked: 3},
		{name: "all dismissed", verdicts: []Verdict{VerdictDismissed, VerdictDismissed, VerdictDismissed}, liked: 0},
		{name: "mixed", verdicts: []Verdict{VerdictLiked, VerdictDismissed, VerdictLiked}, liked: 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := NewController(len(tc.verdicts), nil)
			gen := c.BeginLoad()
			require.True(t, c.CompleteLoad(gen, testBatch(len(tc.verdicts))))

			for _, v := range tc.verdicts {
				require.NoError(t, c.RecordDecision(v))
			}

			assert.Equal(t, StateSummary, c.State())
			assert.Len(t, c.Liked(), tc.liked)
			assert.Len(t, c.Decisions(), len(tc.verdicts))
		})
	}
}

func TestControllerDecisionAfterSummaryRejected(t *testing.T) {
	t.Parallel()

	c := NewController(1, nil)
	gen := c.BeginLoad()
	require.True(t, c.CompleteLoad(gen, testBatch(1)))
	require.NoError(t, c.RecordDecision(VerdictLiked))
	require.Equal(t, StateSummary, c.State())

	err := c.RecordDecision(VerdictDismissed)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Rejected, not silently applied.
	assert.Equal(t, 1, c.Position())
	assert.Len(t, c.Liked(), 1)
}

func TestControllerDecisionWhileLoadingRejected(t *testing.T) {
	t.Parallel()

	c := NewController(3, nil)
	c.BeginLoad()

	assert.ErrorIs(t, c.RecordDecision(VerdictLiked), ErrInvalidTransition)
	assert.Equal(t, 0, c.Position())
}

func TestControllerResetClearsState(t *testing.T) {
	t.Parallel()

	c := NewController(2, nil)
	gen := c.BeginLoad()
	require.True(t, c.CompleteLoad(gen, testBatch(2)))
	require.NoError(t, c.RecordDecision(VerdictLiked))

	next := c.Reset()

	assert.Greater(t, next, gen)
	assert.Equal(t, StateLoading, c.State())
	assert.Equal(t, 0, c.Position())
	assert.Empty(t, c.Liked())
	assert.Empty(t, c.Decisions())

	_, err := c.CurrentItem()
	assert.ErrorIs(t, err, ErrNoCurrentItem)
}

func TestControllerStaleBatchDropped(t *testing.T) {
	t.Parallel()

	c := NewController(2, nil)
	first := c.BeginLoad()
	second := c.BeginLoad()
	require.Greater(t, second, first)

	// The slow fetch from the superseded load arrives after the newer
	// load has started; last writer wins on session identity.
	assert.False(t, c.CompleteLoad(first, testBatch(2)))
	assert.Equal(t, StateLoading, c.State())

	assert.True(t, c.CompleteLoad(second, testBatch(2)))
	assert.Equal(t, StateBrowsing, c.State())
}

func TestControllerStaleBatchCannotOverwriteNewer(t *testing.T) {
	t.Parallel()

	c := NewController(1, nil)
	first := c.BeginLoad()
	second := c.BeginLoad()

	require.True(t, c.CompleteLoad(second, Batch{{ID: 7, ImageRef: "new"}}))
	require.False(t, c.CompleteLoad(first, Batch{{ID: 1, ImageRef: "old"}}))

	item, err := c.CurrentItem()
	require.NoError(t, err)
	assert.Equal(t, 7, item.ID)
}

func TestControllerReleasesSupersededBatch(t *testing.T) {
	t.Parallel()

	rel := &fakeReleaser{}
	c := NewController(1, rel)

	gen := c.BeginLoad()
	require.True(t, c.CompleteLoad(gen, testBatch(1)))
	assert.Empty(t, rel.released, "nothing to release before the first batch is superseded")

	c.Reset()
	assert.Equal(t, []uint64{gen}, rel.released, "reset must release exactly the outgoing batch")
}

func TestControllerReleasesStaleBatchResources(t *testing.T) {
	t.Parallel()

	rel := &fakeReleaser{}
	c := NewController(1, rel)

	first := c.BeginLoad()
	second := c.BeginLoad()

	require.False(t, c.CompleteLoad(first, testBatch(1)))
	assert.Contains(t, rel.released, first, "stale results must not leak cached bytes")

	require.True(t, c.CompleteLoad(second, testBatch(1)))
	assert.NotContains(t, rel.released, second)
}

func TestControllerCurrentItem(t *testing.T) {
	t.Parallel()

	c := NewController(2, nil)

	_, err := c.CurrentItem()
	assert.ErrorIs(t, err, ErrNoCurrentItem)

	gen := c.BeginLoad()
	require.True(t, c.CompleteLoad(gen, testBatch(2)))

	item, err := c.CurrentItem()
	require.NoError(t, err)
	assert.Equal(t, 0, item.ID)

	require.NoError(t, c.RecordDecision(VerdictDismissed))
	item, err = c.CurrentItem()
	require.NoError(t, err)
	assert.Equal(t, 1, item.ID)

	require.NoError(t, c.RecordDecision(VerdictDismissed))
	_, err = c.CurrentItem()
	assert.ErrorIs(t, err, ErrNoCurrentItem)
}
