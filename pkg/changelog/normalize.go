package changelog

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// midnight is appended to date-only values.
const midnight = "T00:00"

// zonedLayouts carry their own offset.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02 15:04:05 -0700",
}

// localLayouts are interpreted in the caller's location.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Normalize converts a raw row into a ChangeRecord. Values without an explicit
// offset are read in loc; a nil loc means time.Local.
//
// The timestamp is resolved from, in order: the combined datetime column, the
// date and time (and timezone) columns, the date column alone at midnight. If
// none of them parse the record keeps a zero Timestamp. Normalize never fails:
// malformed numbers become 0 and missing strings become "".
func Normalize(row Row, loc *time.Location) ChangeRecord {
	if loc == nil {
		loc = time.Local
	}

	raw := RawTime{
		Datetime: field(row, ColDatetime),
		Date:     field(row, ColDate),
		Time:     field(row, ColTime),
		Timezone: field(row, ColTimezone),
	}

	return ChangeRecord{
		CommitID:     field(row, ColCommit),
		FilePath:     field(row, ColFile),
		LineNumber:   intField(row, ColLine),
		LineLength:   intField(row, ColLength),
		NestingDepth: intField(row, ColDepth),
		LanguageTag:  field(row, ColType),
		Author:       field(row, ColAuthor),
		Raw:          raw,
		Timestamp:    ResolveTimestamp(raw, loc),
	}
}

// ResolveTimestamp applies the timestamp priority to raw. It returns the zero
// time when nothing resolves.
func ResolveTimestamp(raw RawTime, loc *time.Location) time.Time {
	if raw.Datetime != "" {
		if ts, ok := parseDatetime(raw.Datetime, loc); ok {
			return ts
		}
	}

	if raw.Date != "" && raw.Time != "" {
		if ts, ok := parseDatetime(raw.Date+"T"+raw.Time+raw.Timezone, loc); ok {
			return ts
		}
	}

	if raw.Date != "" {
		if ts, ok := parseDatetime(raw.Date+midnight+raw.Timezone, loc); ok {
			return ts
		}
	}

	return time.Time{}
}

func parseDatetime(value string, loc *time.Location) (time.Time, bool) {
	for _, layout := range zonedLayouts {
		ts, err := time.Parse(layout, value)
		if err == nil {
			return ts, true
		}
	}

	for _, layout := range localLayouts {
		ts, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return ts, true
		}
	}

	return time.Time{}, false
}

func field(row Row, name string) string {
	return strings.TrimSpace(row[name])
}

// intField accepts integral floats ("12.0") because CSV exporters emit them.
func intField(row Row, name string) int {
	value := field(row, name)
	if value == "" {
		return 0
	}

	n, err := strconv.Atoi(value)
	if err == nil {
		return n
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return int(f)
}
