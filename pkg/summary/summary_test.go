package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/commitlens/pkg/changelog"
	"github.com/Sumatoshi-tech/commitlens/pkg/commits"
)

func commitAt(hour float64, day time.Weekday, lines int) commits.Commit {
	return commits.Commit{Hour: hour, Day: day, LineCount: lines}
}

func TestCompute_BucketAndDayLeaders(t *testing.T) {
	t.Parallel()

	derived := []commits.Commit{
		commitAt(2.0, time.Sunday, 5),
		commitAt(10.5, time.Wednesday, 40),
		commitAt(22.25, time.Friday, 2),
	}

	s := Compute(nil, derived)

	assert.Equal(t, []Total{
		{Label: "Night", Lines: 5},
		{Label: "Morning", Lines: 40},
		{Label: "Afternoon", Lines: 0},
		{Label: "Evening", Lines: 2},
	}, s.TimeOfDay)
	assert.Equal(t, "Morning", s.TopTimeOfDay)
	assert.Equal(t, 5, s.Weekdays[time.Sunday].Lines)
	assert.Equal(t, 40, s.Weekdays[time.Wednesday].Lines)
	assert.Equal(t, 2, s.Weekdays[time.Friday].Lines)
	assert.Equal(t, "Wed", s.TopDay)
}

func TestLeader_TiesFavorCanonicalOrder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, Leader([]int{3, 7, 7, 1}))
	assert.Equal(t, 0, Leader([]int{4, 4, 4, 4}))
	assert.Equal(t, 0, Leader(nil))

	s := Compute(nil, []commits.Commit{
		commitAt(20, time.Saturday, 10),
		commitAt(1, time.Monday, 10),
	})

	assert.Equal(t, "Night", s.TopTimeOfDay)
	assert.Equal(t, "Mon", s.TopDay)
}

func TestBucketOf_Boundaries(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Night, BucketOf(0))
	assert.Equal(t, Night, BucketOf(5.99))
	assert.Equal(t, Morning, BucketOf(6))
	assert.Equal(t, Afternoon, BucketOf(12))
	assert.Equal(t, Evening, BucketOf(18))
	assert.Equal(t, Evening, BucketOf(23.99))
	assert.Equal(t, "Afternoon", Afternoon.String())
	assert.Equal(t, "Unknown", Bucket(9).String())
}

func TestCompute_FileAndLineMetrics(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	records := []changelog.ChangeRecord{
		{CommitID: "a", FilePath: "a.js", LineNumber: 1, LineLength: 10, NestingDepth: 0, Author: "Ann", Timestamp: ts},
		{CommitID: "a", FilePath: "a.js", LineNumber: 30, LineLength: 80, NestingDepth: 2, Author: "Ann", Timestamp: ts},
		{CommitID: "b", FilePath: "b.css", LineNumber: 30, LineLength: 5, NestingDepth: 4, Author: "Ben", Timestamp: ts},
		{CommitID: "c", FilePath: "c.html", LineNumber: 12, LineLength: 7, NestingDepth: 1, Author: "Ben"},
	}

	s := Compute(records, commits.Aggregate(records, time.UTC))

	assert.Equal(t, 4, s.TotalRecords)
	assert.Equal(t, 3, s.DistinctCommitIDs)
	assert.Equal(t, 2, s.Commits)
	assert.Equal(t, 2, s.Authors)
	assert.Equal(t, 3, s.Files)

	require.Len(t, s.FileStats, 3)
	assert.Equal(t, FileStat{Path: "a.js", MaxLineNumber: 30, AvgNestingDepth: 1}, s.FileStats[0])

	assert.Equal(t, "a.js", s.LongestFile, "first file with the max wins")
	assert.Equal(t, 30, s.MaxFileLength)
	assert.InDelta(t, 24.0, s.AvgFileLength, 1e-9)
	assert.Equal(t, 80, s.MaxLineLength)
	assert.Equal(t, 4, s.MaxDepth)
	assert.InDelta(t, 1.75, s.AvgDepth, 1e-9)
}

func TestCompute_Empty(t *testing.T) {
	t.Parallel()

	s := Compute(nil, nil)

	assert.Zero(t, s.TotalRecords)
	assert.Empty(t, s.LongestFile)
	assert.Empty(t, s.TopTimeOfDay)
	assert.Empty(t, s.TopDay)
	assert.Len(t, s.TimeOfDay, 4)
	assert.Len(t, s.Weekdays, 7)
	assert.Zero(t, s.AvgDepth)
}
