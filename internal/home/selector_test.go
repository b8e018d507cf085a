package home

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection_ToggleCap(t *testing.T) {
	s := NewSelection([]string{"p1", "p2", "p3"}, nil, 2)

	require.NoError(t, s.Toggle("p1"))
	require.NoError(t, s.Toggle("p2"))

	// Cap reached: the third toggle is rejected, the set is unchanged.
	err := s.Toggle("p3")
	assert.ErrorIs(t, err, ErrCapReached)
	assert.Equal(t, []string{"p1", "p2"}, s.Featured())

	// Remove one, then the blocked project fits.
	require.NoError(t, s.Toggle("p1"))
	require.NoError(t, s.Toggle("p3"))
	assert.Equal(t, []string{"p2", "p3"}, s.Featured())
}

func TestSelection_CapInvariantUnderToggleSequences(t *testing.T) {
	eligible := []string{"a", "b", "c", "d", "e"}
	s := NewSelection(eligible, nil, 3)

	seq := []string{"a", "b", "c", "d", "a", "e", "b", "d", "c", "a", "e"}
	for _, id := range seq {
		_ = s.Toggle(id)
		assert.LessOrEqual(t, len(s.Featured()), 3)
	}
}

func TestSelection_ToggleUnknownProject(t *testing.T) {
	s := NewSelection([]string{"p1"}, nil, 3)

	assert.ErrorIs(t, s.Toggle("draft-project"), ErrUnknownProject)
}

func TestSelection_Reorder(t *testing.T) {
	s := NewSelection([]string{"p1", "p2", "p3"}, []string{"p1", "p2"}, 3)

	require.NoError(t, s.Reorder([]string{"p2", "p1"}))
	assert.Equal(t, []string{"p2", "p1"}, s.Featured())

	t.Run("drops ids absent from the sequence", func(t *testing.T) {
		require.NoError(t, s.Reorder([]string{"p3"}))
		assert.Equal(t, []string{"p3"}, s.Featured())
	})

	t.Run("rejects ineligible id", func(t *testing.T) {
		assert.ErrorIs(t, s.Reorder([]string{"ghost"}), ErrUnknownProject)
	})

	t.Run("rejects sequence over cap", func(t *testing.T) {
		s := NewSelection([]string{"a", "b", "c"}, nil, 2)
		assert.ErrorIs(t, s.Reorder([]string{"a", "b", "c"}), ErrCapReached)
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		s := NewSelection([]string{"a", "b"}, nil, 2)
		assert.Error(t, s.Reorder([]string{"a", "a"}))
	})
}

func TestSelection_SetCapTruncatesByHomeOrder(t *testing.T) {
	s := NewSelection([]string{"a", "b", "c", "d"}, []string{"c", "a", "d"}, 3)

	s.SetCap(2)

	// The first two slots by homeOrder survive; the tail is dropped.
	assert.Equal(t, []string{"c", "a"}, s.Featured())
	assert.Equal(t, 2, s.Cap())
}

func TestSelection_TruncatesOverCapFeaturedOnLoad(t *testing.T) {
	// The cap can drop through the settings endpoint while three
	// projects are still featured; the loaded selection reconciles to
	// the cap instead of carrying the stale membership forward.
	s := NewSelection([]string{"a", "b", "c", "d"}, []string{"a", "b", "c"}, 1)

	assert.Equal(t, []string{"a"}, s.Featured())

	// The truncated tail really is unfeatured: re-adding past the cap
	// is rejected, swapping is fine.
	assert.ErrorIs(t, s.Toggle("c"), ErrCapReached)
	require.NoError(t, s.Toggle("a"))
	require.NoError(t, s.Toggle("c"))
	assert.Equal(t, []string{"c"}, s.Featured())

	featured := 0
	for _, a := range s.Assignments() {
		if a.Featured {
			featured++
		}
	}
	assert.LessOrEqual(t, featured, s.Cap())
}

func TestSelection_IgnoresIneligibleFeatured(t *testing.T) {
	// A featured project that was unpublished since the last save
	// disappears from the selection instead of wedging it.
	s := NewSelection([]string{"a", "b"}, []string{"ghost", "a"}, 3)

	assert.Equal(t, []string{"a"}, s.Featured())
}

func TestSelection_Assignments(t *testing.T) {
	s := NewSelection([]string{"a", "b", "c", "d"}, []string{"c", "a"}, 3)

	got := map[string][2]int{} // id -> {featured(0/1), homeOrder}
	for _, a := range s.Assignments() {
		f := 0
		if a.Featured {
			f = 1
		}
		got[a.ProjectID] = [2]int{f, a.HomeOrder}
	}

	assert.Equal(t, map[string][2]int{
		"a": {1, 1},
		"b": {0, 0},
		"c": {1, 0},
		"d": {0, 0},
	}, got)
}
