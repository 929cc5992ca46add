package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pursuit-cli/pursuit/internal/opportunity"
)

func testRecord(id string, category opportunity.Category) *opportunity.Record {
	return &opportunity.Record{
		ID:       id,
		Name:     "Test Opportunity",
		Category: category,
		Status:   opportunity.StatusResearch,
		Deadline: opportunity.Deadline{Type: opportunity.DeadlineRolling},
		Amount:   opportunity.Amount{Value: 5000, Type: opportunity.AmountLumpSum},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(t.TempDir())

	r := testRecord("g1", opportunity.CategoryGrant)
	require.NoError(t, s.Save(r))

	// The file lands in the category partition.
	_, err := os.Stat(filepath.Join(s.Dir(), "grant", "g1.yaml"))
	require.NoError(t, err)

	loaded, err := s.Load("g1")
	require.NoError(t, err)
	assert.Equal(t, r, loaded)
}

func TestSaveRequiresID(t *testing.T) {
	s := New(t.TempDir())
	err := s.Save(&opportunity.Record{Category: opportunity.CategoryGrant})
	assert.Error(t, err)
}

func TestLoadMissingRecord(t *testing.T) {
	s := New(t.TempDir())

	_, err := s.Load("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadRejectsIDFilenameMismatch(t *testing.T) {
	s := New(t.TempDir())

	r := testRecord("g1", opportunity.CategoryGrant)
	require.NoError(t, s.Save(r))

	// Simulate a copied file nobody edited.
	src := filepath.Join(s.Dir(), "grant", "g1.yaml")
	dst := filepath.Join(s.Dir(), "grant", "g2.yaml")
	data, err := os.ReadFile(src)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(dst, data, 0o644))

	_, err = s.Load("g2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match filename")
}

func TestLoadAll(t *testing.T) {
	s := New(t.TempDir())

	require.NoError(t, s.Save(testRecord("z-grant", opportunity.CategoryGrant)))
	require.NoError(t, s.Save(testRecord("a-job", opportunity.CategoryJob)))
	require.NoError(t, s.Save(testRecord("m-res", opportunity.CategoryResidency)))

	records, errs := s.LoadAll()
	assert.Empty(t, errs)
	// Sorted by id regardless of partition.
	assert.Equal(t, []string{"a-job", "m-res", "z-grant"}, records.IDs())
}

func TestLoadAllCollectsPerFileErrors(t *testing.T) {
	s := New(t.TempDir())

	require.NoError(t, s.Save(testRecord("good", opportunity.CategoryGrant)))

	broken := filepath.Join(s.Dir(), "grant", "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("{{not yaml"), 0o644))

	records, errs := s.LoadAll()
	// The broken file is reported but does not hide the good one.
	require.Len(t, errs, 1)
	assert.Equal(t, []string{"good"}, records.IDs())
}

func TestLoadAllDetectsDuplicateIDs(t *testing.T) {
	s := New(t.TempDir())

	r := testRecord("dup", opportunity.CategoryGrant)
	require.NoError(t, s.Save(r))
	r.Category = opportunity.CategoryJob
	require.NoError(t, s.Save(r))

	records, errs := s.LoadAll()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "duplicate")
	assert.Equal(t, 1, records.Len())
}

func TestLoadAllIgnoresStrayFiles(t *testing.T) {
	s := New(t.TempDir())

	require.NoError(t, s.Save(testRecord("g1", opportunity.CategoryGrant)))
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "grant", "notes.txt"), []byte("scratch"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(s.Dir(), "grant", "archive"), 0o755))

	records, errs := s.LoadAll()
	assert.Empty(t, errs)
	assert.Equal(t, 1, records.Len())
}

func TestUpdate(t *testing.T) {
	// A hand-written record file with human annotations that a partial
	// update must not destroy.
	const doc = `id: g1
name: Test Opportunity
category: grant
# remember to ask Sam about budget
status: research # promoted last week
deadline:
  type: rolling
amount:
  value: 5000
  type: lump_sum
notes: keep an eye on the spring cycle
`

	newStore := func(t *testing.T) *Store {
		t.Helper()
		s := New(t.TempDir())
		dir := filepath.Join(s.Dir(), "grant")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "g1.yaml"), []byte(doc), 0o644))
		return s
	}

	t.Run("updates the field", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Update("g1", map[string]interface{}{"status": "qualified"}))

		loaded, err := s.Load("g1")
		require.NoError(t, err)
		assert.Equal(t, opportunity.StatusQualified, loaded.Status)
	})

	t.Run("preserves comments and unmanaged fields", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Update("g1", map[string]interface{}{
			"status":       "qualified",
			"last_touched": "2026-03-01",
		}))

		data, err := os.ReadFile(filepath.Join(s.Dir(), "grant", "g1.yaml"))
		require.NoError(t, err)
		text := string(data)
		assert.Contains(t, text, "# remember to ask Sam about budget")
		assert.Contains(t, text, "# promoted last week")
		assert.Contains(t, text, "notes: keep an eye on the spring cycle")
		assert.Contains(t, text, "status: qualified")
		assert.Contains(t, text, "last_touched: \"2026-03-01\"")
	})

	t.Run("creates nested paths that do not exist yet", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Update("g1", map[string]interface{}{
			"timeline.qualified": "2026-03-01",
			"fit.score":          7.5,
		}))

		loaded, err := s.Load("g1")
		require.NoError(t, err)
		assert.Equal(t, "2026-03-01", loaded.Timeline.Qualified.String())
		assert.Equal(t, 7.5, loaded.Fit.Score)
	})

	t.Run("rejects paths outside the whitelist", func(t *testing.T) {
		s := newStore(t)
		err := s.Update("g1", map[string]interface{}{"name": "Renamed"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not updatable")

		err = s.Update("g1", map[string]interface{}{"amount.value": 0})
		require.Error(t, err)
	})

	t.Run("missing record", func(t *testing.T) {
		s := New(t.TempDir())
		err := s.Update("ghost", map[string]interface{}{"status": "qualified"})
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("empty update is a no-op", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Update("g1", nil))
	})
}
