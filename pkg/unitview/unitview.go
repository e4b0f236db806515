// Package unitview derives the per-file unit visualization: one group per
// file, one unit per changed line.
package unitview

import (
	"sort"

	"github.com/Sumatoshi-tech/commitlens/pkg/commits"
	"github.com/Sumatoshi-tech/commitlens/pkg/language"
)

// Unit is one changed line. Units are positional and carry no key.
type Unit struct {
	Line     int    `json:"line"     yaml:"line"`
	Length   int    `json:"length"   yaml:"length"`
	Depth    int    `json:"depth"    yaml:"depth"`
	Language string `json:"language" yaml:"language"`
	CommitID string `json:"commit"   yaml:"commit"`
}

// FileGroup holds the units of one file. Path is the stable key adapters use
// to match groups across recomputations.
type FileGroup struct {
	Path     string `json:"path"               yaml:"path"`
	Linguist string `json:"linguist,omitempty" yaml:"linguist,omitempty"`
	Units    []Unit `json:"units"              yaml:"units"`
}

// Build groups the records of the filtered commits by file, largest group
// first. Groups with equal sizes keep first-seen order; units keep record order.
func Build(filtered []commits.Commit) []FileGroup {
	index := make(map[string]int)

	var groups []FileGroup

	for _, rec := range commits.Records(filtered) {
		i, ok := index[rec.FilePath]
		if !ok {
			i = len(groups)
			index[rec.FilePath] = i
			groups = append(groups, FileGroup{Path: rec.FilePath, Linguist: language.Linguist(rec.FilePath)})
		}

		groups[i].Units = append(groups[i].Units, Unit{
			Line:     rec.LineNumber,
			Length:   rec.LineLength,
			Depth:    rec.NestingDepth,
			Language: language.Classify(rec.LanguageTag, rec.FilePath),
			CommitID: rec.CommitID,
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i].Units) > len(groups[j].Units)
	})

	return groups
}

// Count returns the total number of units across groups.
func Count(groups []FileGroup) int {
	n := 0
	for _, g := range groups {
		n += len(g.Units)
	}

	return n
}
