package plotpage_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/commitlens/pkg/changelog"
	"github.com/Sumatoshi-tech/commitlens/pkg/plotpage"
	"github.com/Sumatoshi-tech/commitlens/pkg/selection"
	"github.com/Sumatoshi-tech/commitlens/pkg/session"
)

func testSession(t *testing.T) *session.Session {
	t.Helper()

	sunday := time.Date(2024, time.March, 3, 2, 0, 0, 0, time.UTC)
	wednesday := time.Date(2024, time.March, 6, 10, 30, 0, 0, time.UTC)

	s := session.New(session.Options{
		Location: time.UTC,
		Layout:   selection.Layout{Width: 240, Height: 700},
	})
	s.LoadRecords(context.Background(), []changelog.ChangeRecord{
		{CommitID: "aaaaaaaaaa", FilePath: "a.js", LineNumber: 1, Author: "ann", Timestamp: sunday},
		{CommitID: "aaaaaaaaaa", FilePath: "b.css", LineNumber: 1, Author: "ann", Timestamp: sunday},
		{CommitID: "bbbbbbbbbb", FilePath: "a.js", LineNumber: 2, Author: "bob", Timestamp: wednesday},
	})

	return s
}

func render(t *testing.T, snap session.Snapshot, ro plotpage.ReportOptions) string {
	t.Helper()

	var buf bytes.Buffer

	require.NoError(t, plotpage.NewReport(snap, ro).Render(&buf))

	return buf.String()
}

func TestNewReport_WithoutSelection(t *testing.T) {
	t.Parallel()

	html := render(t, testSession(t).Snapshot(), plotpage.ReportOptions{Title: "Demo", Theme: plotpage.ThemeDark})

	for _, title := range []string{"Summary", "Commits by hour and weekday", "Lines by time of day", "Lines by weekday", "Files", "Narrative"} {
		assert.Contains(t, html, "<h2>"+title+"</h2>")
	}

	assert.NotContains(t, html, "Languages in selection")
	assert.Contains(t, html, "2 of 2 commits shown, up to 2024-03-06 10:30 (100%)")
	assert.Contains(t, html, "aaaaaaa")
	assert.Contains(t, html, "JavaScript")
	assert.Contains(t, html, "Most work by day")
	assert.Equal(t, 3, strings.Count(html, `class="echart-box"`))
}

func TestNewReport_WithSelection(t *testing.T) {
	t.Parallel()

	s := testSession(t)
	snap := s.BrushEnd(context.Background(), selection.NewRect(0, 0, 240, 100))

	require.Equal(t, session.StateSelected, snap.State)

	html := render(t, snap, plotpage.ReportOptions{Title: "Demo", Theme: plotpage.ThemeLight})

	assert.Contains(t, html, "Languages in selection")
	assert.Contains(t, html, "1 commits selected")
	assert.Equal(t, 4, strings.Count(html, `class="echart-box"`))
}

func TestNewReport_EmptySession(t *testing.T) {
	t.Parallel()

	snap := session.New(session.Options{}).Snapshot()

	html := render(t, snap, plotpage.ReportOptions{Title: "Empty", MaxFiles: 1})

	assert.Contains(t, html, "(n/a)")
	assert.Contains(t, html, "0 of 0 commits shown")
}

func TestNewReport_TruncatesFiles(t *testing.T) {
	t.Parallel()

	html := render(t, testSession(t).Snapshot(), plotpage.ReportOptions{Title: "Demo", MaxFiles: 1})

	assert.Contains(t, html, "1 more files not shown.")
	assert.NotContains(t, html, "<td>b.css</td>")
}
