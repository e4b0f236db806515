// Package summary computes the headline statistics of a change log.
package summary

import (
	"time"

	"github.com/Sumatoshi-tech/commitlens/pkg/changelog"
	"github.com/Sumatoshi-tech/commitlens/pkg/commits"
)

// Bucket is a coarse time-of-day class.
type Bucket int

// Buckets in canonical order.
const (
	Night Bucket = iota
	Morning
	Afternoon
	Evening
)

// bucketCount is the number of time-of-day buckets.
const bucketCount = 4

// Bucket boundaries in hours.
const (
	morningStart   = 6
	afternoonStart = 12
	eveningStart   = 18
)

var bucketLabels = [bucketCount]string{"Night", "Morning", "Afternoon", "Evening"}

// String returns the bucket label.
func (b Bucket) String() string {
	if b < Night || b > Evening {
		return "Unknown"
	}

	return bucketLabels[b]
}

// BucketOf returns the bucket of an hour in [0,24).
func BucketOf(hour float64) Bucket {
	switch {
	case hour < morningStart:
		return Night
	case hour < afternoonStart:
		return Morning
	case hour < eveningStart:
		return Afternoon
	default:
		return Evening
	}
}

// FileStat describes one file over the full record set.
type FileStat struct {
	Path            string  `json:"path"              yaml:"path"`
	MaxLineNumber   int     `json:"max_line_number"   yaml:"max_line_number"`
	AvgNestingDepth float64 `json:"avg_nesting_depth" yaml:"avg_nesting_depth"`
}

// Total pairs a label with a summed line count.
type Total struct {
	Label string `json:"label" yaml:"label"`
	Lines int    `json:"lines" yaml:"lines"`
}

// Summary holds the statistics of the whole, unfiltered log.
type Summary struct {
	TotalRecords      int        `json:"total_records"       yaml:"total_records"`
	DistinctCommitIDs int        `json:"distinct_commit_ids" yaml:"distinct_commit_ids"`
	Commits           int        `json:"commits"             yaml:"commits"`
	Authors           int        `json:"authors"             yaml:"authors"`
	Files             int        `json:"files"               yaml:"files"`
	FileStats         []FileStat `json:"file_stats"          yaml:"file_stats"`
	LongestFile       string     `json:"longest_file"        yaml:"longest_file"`
	MaxFileLength     int        `json:"max_file_length"     yaml:"max_file_length"`
	AvgFileLength     float64    `json:"avg_file_length"     yaml:"avg_file_length"`
	MaxLineLength     int        `json:"max_line_length"     yaml:"max_line_length"`
	MaxDepth          int        `json:"max_depth"           yaml:"max_depth"`
	AvgDepth          float64    `json:"avg_depth"           yaml:"avg_depth"`
	TimeOfDay         []Total    `json:"time_of_day"         yaml:"time_of_day"`
	Weekdays          []Total    `json:"weekdays"            yaml:"weekdays"`
	// TopTimeOfDay and TopDay are empty when there are no commits.
	TopTimeOfDay string `json:"top_time_of_day" yaml:"top_time_of_day"`
	TopDay       string `json:"top_day"         yaml:"top_day"`
}

// Compute reduces the raw records and the derived commits. It must be given
// the full sets, never a time-filtered subset.
func Compute(records []changelog.ChangeRecord, derived []commits.Commit) Summary {
	s := Summary{
		TotalRecords:      len(records),
		DistinctCommitIDs: commits.DistinctIDs(records),
		Commits:           len(derived),
		Authors:           countDistinct(records, func(r changelog.ChangeRecord) string { return r.Author }),
	}

	s.FileStats = FileStats(records)
	s.Files = len(s.FileStats)
	s.LongestFile, s.MaxFileLength = LongestFile(s.FileStats)

	if len(s.FileStats) > 0 {
		sum := 0
		for _, fs := range s.FileStats {
			sum += fs.MaxLineNumber
		}

		s.AvgFileLength = float64(sum) / float64(len(s.FileStats))
	}

	depthSum := 0

	for _, r := range records {
		s.MaxLineLength = max(s.MaxLineLength, r.LineLength)
		s.MaxDepth = max(s.MaxDepth, r.NestingDepth)
		depthSum += r.NestingDepth
	}

	if len(records) > 0 {
		s.AvgDepth = float64(depthSum) / float64(len(records))
	}

	bucketTotals := BucketTotals(derived)
	dayTotals := DayTotals(derived)

	s.TimeOfDay = make([]Total, bucketCount)
	for i, lines := range bucketTotals {
		s.TimeOfDay[i] = Total{Label: bucketLabels[i], Lines: lines}
	}

	s.Weekdays = make([]Total, len(dayTotals))
	for i, lines := range dayTotals {
		s.Weekdays[i] = Total{Label: commits.DayLabels[i], Lines: lines}
	}

	if len(derived) > 0 {
		s.TopTimeOfDay = bucketLabels[Leader(bucketTotals[:])]
		s.TopDay = commits.DayLabels[Leader(dayTotals[:])]
	}

	return s
}

// FileStats returns per-file statistics in first-seen file order.
func FileStats(records []changelog.ChangeRecord) []FileStat {
	type acc struct {
		maxLine  int
		depthSum int
		n        int
	}

	index := make(map[string]*acc)

	var order []string

	for _, r := range records {
		a, ok := index[r.FilePath]
		if !ok {
			a = &acc{}
			index[r.FilePath] = a
			order = append(order, r.FilePath)
		}

		a.maxLine = max(a.maxLine, r.LineNumber)
		a.depthSum += r.NestingDepth
		a.n++
	}

	stats := make([]FileStat, len(order))

	for i, path := range order {
		a := index[path]
		stats[i] = FileStat{
			Path:            path,
			MaxLineNumber:   a.maxLine,
			AvgNestingDepth: float64(a.depthSum) / float64(a.n),
		}
	}

	return stats
}

// LongestFile returns the first file holding the largest max line number.
func LongestFile(stats []FileStat) (string, int) {
	best := -1
	longest := 0

	for i, fs := range stats {
		if best < 0 || fs.MaxLineNumber > longest {
			best = i
			longest = fs.MaxLineNumber
		}
	}

	if best < 0 {
		return "", 0
	}

	return stats[best].Path, longest
}

// BucketTotals sums commit line counts per time-of-day bucket.
func BucketTotals(derived []commits.Commit) [bucketCount]int {
	var totals [bucketCount]int

	for _, c := range derived {
		totals[BucketOf(c.Hour)] += c.LineCount
	}

	return totals
}

// DayTotals sums commit line counts per weekday, Sunday first.
func DayTotals(derived []commits.Commit) [7]int {
	var totals [7]int

	for _, c := range derived {
		if c.Day >= time.Sunday && c.Day <= time.Saturday {
			totals[c.Day] += c.LineCount
		}
	}

	return totals
}

// Leader returns the index of the largest total. Ties go to the lowest index,
// which is the earliest entry in canonical order.
func Leader(totals []int) int {
	best := 0

	for i := 1; i < len(totals); i++ {
		if totals[i] > totals[best] {
			best = i
		}
	}

	return best
}

func countDistinct(records []changelog.ChangeRecord, key func(changelog.ChangeRecord) string) int {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		seen[key(r)] = struct{}{}
	}

	return len(seen)
}
