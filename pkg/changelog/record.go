// Package changelog loads per-line source-change logs and normalizes their rows
// into typed change records.
package changelog

import "time"

// Column names of the change log.
const (
	ColCommit   = "commit"
	ColFile     = "file"
	ColLine     = "line"
	ColLength   = "length"
	ColDepth    = "depth"
	ColType     = "type"
	ColAuthor   = "author"
	ColDatetime = "datetime"
	ColDate     = "date"
	ColTime     = "time"
	ColTimezone = "timezone"
)

// Row is one raw log row keyed by column name. Missing columns read as "".
type Row map[string]string

// RawTime keeps the timestamp columns exactly as they appeared in the row.
type RawTime struct {
	Datetime string `json:"datetime,omitempty" yaml:"datetime,omitempty"`
	Date     string `json:"date,omitempty"     yaml:"date,omitempty"`
	Time     string `json:"time,omitempty"     yaml:"time,omitempty"`
	Timezone string `json:"timezone,omitempty" yaml:"timezone,omitempty"`
}

// ChangeRecord is one line-level change entry. It is never mutated after load.
type ChangeRecord struct {
	CommitID     string    `json:"commit"          yaml:"commit"`
	FilePath     string    `json:"file"            yaml:"file"`
	LineNumber   int       `json:"line"            yaml:"line"`
	LineLength   int       `json:"length"          yaml:"length"`
	NestingDepth int       `json:"depth"           yaml:"depth"`
	LanguageTag  string    `json:"type,omitempty"  yaml:"type,omitempty"`
	Author       string    `json:"author"          yaml:"author"`
	Raw          RawTime   `json:"raw"             yaml:"raw"`
	Timestamp    time.Time `json:"timestamp"       yaml:"timestamp"`
}

// Resolved reports whether the record carries a usable timestamp.
func (r ChangeRecord) Resolved() bool {
	return !r.Timestamp.IsZero()
}
