package commits

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/commitlens/pkg/changelog"
)

func rec(id, file, author string, ts time.Time) changelog.ChangeRecord {
	return changelog.ChangeRecord{CommitID: id, FilePath: file, Author: author, Timestamp: ts}
}

func TestAggregate_GroupsAndSorts(t *testing.T) {
	t.Parallel()

	late := time.Date(2024, 1, 10, 22, 15, 0, 0, time.UTC) // Wednesday.
	early := time.Date(2024, 1, 7, 2, 0, 0, 0, time.UTC)   // Sunday.

	records := []changelog.ChangeRecord{
		rec("b", "x.js", "Bob", late),
		rec("a", "y.css", "Alice", early),
		rec("b", "z.js", "Mallory", early),
		rec("a", "y.css", "Alice", early),
		rec("b", "x.js", "Bob", late),
	}

	got := Aggregate(records, time.UTC)

	require.Len(t, got, 2)

	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, 2, got[0].LineCount)
	assert.Equal(t, time.Sunday, got[0].Day)
	assert.InDelta(t, 2.0, got[0].Hour, 1e-9)

	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, "Bob", got[1].Author, "author comes from the first row")
	assert.Equal(t, 3, got[1].LineCount)
	assert.InDelta(t, 22.25, got[1].Hour, 1e-9)
	assert.Equal(t, time.Wednesday, got[1].Day)
	assert.Equal(t, "Wed", got[1].DayLabel())
	assert.Len(t, got[1].Lines, 3)
}

func TestAggregate_DropsUnresolvedRepresentative(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)

	records := []changelog.ChangeRecord{
		rec("a", "f", "A", time.Time{}),
		rec("a", "f", "A", ts),
		rec("b", "f", "B", ts),
		rec("c", "f", "C", time.Time{}),
	}

	got := Aggregate(records, time.UTC)

	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, 3, DistinctIDs(records))
	assert.LessOrEqual(t, len(got), DistinctIDs(records))
}

func TestAggregate_EqualWhenAllResolve(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	records := []changelog.ChangeRecord{rec("a", "f", "A", ts), rec("b", "f", "B", ts), rec("a", "g", "A", ts)}

	got := Aggregate(records, time.UTC)

	assert.Len(t, got, DistinctIDs(records))
	assert.Equal(t, "a", got[0].ID, "ties keep first-seen order")
}

func TestAggregate_UsesLocation(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 1, 7, 2, 30, 0, 0, time.UTC) // Sunday 02:30 UTC.
	loc := time.FixedZone("minus5", -5*3600)

	got := Aggregate([]changelog.ChangeRecord{rec("a", "f", "A", ts)}, loc)

	require.Len(t, got, 1)
	assert.Equal(t, time.Saturday, got[0].Day)
	assert.InDelta(t, 21.5, got[0].Hour, 1e-9)
}

func TestAggregate_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Aggregate(nil, nil))
	assert.Zero(t, DistinctIDs(nil))
}

func TestRecordsAndShortID(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	got := Aggregate([]changelog.ChangeRecord{
		rec("0123456789abcdef", "f", "A", ts), rec("xyz", "g", "B", ts.Add(time.Hour)), rec("0123456789abcdef", "h", "A", ts),
	}, time.UTC)

	flat := Records(got)

	require.Len(t, flat, 3)
	assert.Equal(t, []string{"f", "h", "g"}, []string{flat[0].FilePath, flat[1].FilePath, flat[2].FilePath})
	assert.Equal(t, "0123456", got[0].ShortID())
	assert.Equal(t, "xyz", got[1].ShortID())
}
