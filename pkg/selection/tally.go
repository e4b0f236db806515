package selection

import (
	"sort"

	"github.com/Sumatoshi-tech/commitlens/pkg/changelog"
	"github.com/Sumatoshi-tech/commitlens/pkg/language"
)

// tenthsOfPercent is the rounding grid of tally percentages (one decimal).
const tenthsOfPercent = 1000

// Tally is the share of one language among selected records.
type Tally struct {
	Label      string  `json:"label"      yaml:"label"`
	Count      int     `json:"count"      yaml:"count"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// Tallies classifies records by language and returns the breakdown sorted by
// count, largest first; equal counts keep first-seen order. Percentages have
// one decimal and are apportioned by largest remainder so they add up to
// exactly 100.0 for a non-empty input.
func Tallies(records []changelog.ChangeRecord) []Tally {
	if len(records) == 0 {
		return nil
	}

	index := make(map[string]int)

	var tallies []Tally

	for _, r := range records {
		label := language.Classify(r.LanguageTag, r.FilePath)

		i, ok := index[label]
		if !ok {
			i = len(tallies)
			index[label] = i
			tallies = append(tallies, Tally{Label: label})
		}

		tallies[i].Count++
	}

	apportion(tallies, len(records))

	sort.SliceStable(tallies, func(i, j int) bool {
		return tallies[i].Count > tallies[j].Count
	})

	return tallies
}

func apportion(tallies []Tally, total int) {
	tenths := make([]int, len(tallies))
	remainders := make([]int, len(tallies))
	assigned := 0

	for i, t := range tallies {
		scaled := t.Count * tenthsOfPercent
		tenths[i] = scaled / total
		remainders[i] = scaled % total
		assigned += tenths[i]
	}

	order := make([]int, len(tallies))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})

	for k := 0; assigned < tenthsOfPercent && k < len(order); k++ {
		tenths[order[k]]++
		assigned++
	}

	for i := range tallies {
		tallies[i].Percentage = float64(tenths[i]) / (tenthsOfPercent / 100)
	}
}
