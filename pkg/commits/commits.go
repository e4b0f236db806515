// Package commits groups change records into chronologically ordered commits.
package commits

import (
	"sort"
	"time"

	"github.com/Sumatoshi-tech/commitlens/pkg/changelog"
)

// DayLabels are the short weekday names in canonical order, indexed by time.Weekday.
var DayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// minutesPerHour converts minutes into fractional hours.
const minutesPerHour = 60

// Commit is the aggregate of all records sharing one commit id.
type Commit struct {
	ID        string                   `json:"id"         yaml:"id"`
	Author    string                   `json:"author"     yaml:"author"`
	Datetime  time.Time                `json:"datetime"   yaml:"datetime"`
	Hour      float64                  `json:"hour"       yaml:"hour"`
	Day       time.Weekday             `json:"day"        yaml:"day"`
	LineCount int                      `json:"line_count" yaml:"line_count"`
	Lines     []changelog.ChangeRecord `json:"-"          yaml:"-"`
}

// DayLabel returns the short weekday name of the commit.
func (c Commit) DayLabel() string {
	return DayLabels[c.Day]
}

// ShortID returns the first seven characters of the id.
func (c Commit) ShortID() string {
	const shortLen = 7

	if len(c.ID) <= shortLen {
		return c.ID
	}

	return c.ID[:shortLen]
}

type group struct {
	id   string
	rows []changelog.ChangeRecord
}

// Aggregate groups records by commit id in first-seen order and returns the
// commits sorted ascending by datetime. The first row of each group is its
// representative: it supplies the author and the timestamp that hour and day
// are computed from, in loc. Groups whose representative has no resolved
// timestamp are dropped. Commits with equal datetimes keep first-seen order.
func Aggregate(records []changelog.ChangeRecord, loc *time.Location) []Commit {
	if loc == nil {
		loc = time.Local
	}

	groups := groupRecords(records)
	result := make([]Commit, 0, len(groups))

	for _, g := range groups {
		first := g.rows[0]
		if !first.Resolved() {
			continue
		}

		when := first.Timestamp.In(loc)
		hour := float64(when.Hour()) + float64(when.Minute())/minutesPerHour

		result = append(result, Commit{
			ID:        g.id,
			Author:    first.Author,
			Datetime:  when,
			Hour:      hour,
			Day:       when.Weekday(),
			LineCount: len(g.rows),
			Lines:     g.rows,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Datetime.Before(result[j].Datetime)
	})

	return result
}

// DistinctIDs counts the distinct commit ids of the raw records.
func DistinctIDs(records []changelog.ChangeRecord) int {
	return len(groupRecords(records))
}

func groupRecords(records []changelog.ChangeRecord) []*group {
	index := make(map[string]*group)

	var groups []*group

	for _, rec := range records {
		g, ok := index[rec.CommitID]
		if !ok {
			g = &group{id: rec.CommitID}
			index[rec.CommitID] = g
			groups = append(groups, g)
		}

		g.rows = append(g.rows, rec)
	}

	return groups
}

// Records flattens commits back to their change records, commit by commit.
func Records(commits []Commit) []changelog.ChangeRecord {
	total := 0
	for _, c := range commits {
		total += len(c.Lines)
	}

	out := make([]changelog.ChangeRecord, 0, total)
	for _, c := range commits {
		out = append(out, c.Lines...)
	}

	return out
}
