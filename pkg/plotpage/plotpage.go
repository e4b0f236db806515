// Package plotpage renders self-contained HTML pages made of go-echarts
// charts and HTML fragments.
package plotpage

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"
)

const styleTagLen = len("</style>")

// Hint contains interpretive guidance for a chart section.
type Hint struct {
	Title string
	Items []string
}

// Section represents a chart section within a page.
type Section struct {
	Title    string
	Subtitle string
	Hint     Hint
	Chart    Renderable
}

// Page represents a complete visualization page.
type Page struct {
	Title       string
	Description string
	ProjectName string
	Theme       Theme
	Sections    []Section
}

// NewPage creates a new visualization page.
func NewPage(title, description string) *Page {
	return &Page{
		Title:       title,
		Description: description,
		ProjectName: "commitlens",
		Theme:       ThemeDark,
	}
}

// WithTheme sets the theme for the page.
func (p *Page) WithTheme(theme Theme) *Page {
	p.Theme = theme

	return p
}

// Add appends sections to the page.
func (p *Page) Add(sections ...Section) {
	p.Sections = append(p.Sections, sections...)
}

// Render writes the page as HTML.
func (p *Page) Render(w io.Writer) error {
	return HTMLRenderer{}.Render(w, p)
}

type pageData struct {
	Title    string
	Theme    ThemeConfig
	ExtraCSS template.CSS
	Header   template.HTML
	Content  template.HTML
}

type headerData struct {
	ProjectName string
	Title       string
	Description string
}

type sectionData struct {
	Title    string
	Subtitle string
	Chart    template.HTML
	Hint     *Hint
}

// Renderable is the interface for chart components.
type Renderable interface {
	Render(w io.Writer) error
}

// HTMLRenderer renders pages as HTML.
type HTMLRenderer struct {
	ExtraCSS string
}

// Render writes the page as HTML to the writer.
func (r HTMLRenderer) Render(w io.Writer, page *Page) error {
	header, err := fragment("header.html", headerData{
		ProjectName: page.ProjectName,
		Title:       page.Title,
		Description: page.Description,
	})
	if err != nil {
		return fmt.Errorf("render header: %w", err)
	}

	var sectionsHTML bytes.Buffer

	for _, section := range page.Sections {
		sectionHTML, sectionErr := r.renderSection(section)
		if sectionErr != nil {
			return fmt.Errorf("render section %q: %w", section.Title, sectionErr)
		}

		sectionsHTML.WriteString(string(sectionHTML))
	}

	err = executeTemplate(w, "page.html", pageData{
		Title:    page.Title,
		Theme:    GetThemeConfig(page.Theme),
		ExtraCSS: template.CSS(r.ExtraCSS),
		Header:   header,
		Content:  template.HTML(sectionsHTML.String()),
	})
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	return nil
}

func (r HTMLRenderer) renderSection(section Section) (template.HTML, error) {
	chartHTML, err := renderChart(section.Chart)
	if err != nil {
		return "", err
	}

	var hint *Hint
	if len(section.Hint.Items) > 0 {
		hint = &section.Hint
	}

	return fragment("section.html", sectionData{
		Title:    section.Title,
		Subtitle: section.Subtitle,
		Chart:    template.HTML(chartHTML),
		Hint:     hint,
	})
}

// ChartWrapper wraps an echarts chart and renders only the chart content.
type ChartWrapper struct {
	chart Renderable
}

// WrapChart wraps an echarts chart to render only the div and script (no full HTML page).
func WrapChart(chart Renderable) *ChartWrapper {
	return &ChartWrapper{chart: chart}
}

// Render writes the chart element and script without a full HTML page.
func (cw *ChartWrapper) Render(w io.Writer) error {
	content, err := renderChart(cw.chart)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, content)
	if err != nil {
		return fmt.Errorf("writing chart content: %w", err)
	}

	return nil
}

func renderChart(chart Renderable) (string, error) {
	if chart == nil {
		return "", nil
	}

	var buf bytes.Buffer

	err := chart.Render(&buf)
	if err != nil {
		return "", fmt.Errorf("rendering chart: %w", err)
	}

	return extractChartContent(buf.String()), nil
}

// extractChartContent cuts the chart container and script out of a full
// go-echarts page. Fragments are returned unchanged.
func extractChartContent(html string) string {
	trimmed := strings.TrimSpace(html)
	if !strings.HasPrefix(trimmed, "<!DOCTYPE") && !strings.HasPrefix(trimmed, "<html") {
		return html
	}

	start := strings.Index(html, `<div class="container">`)
	if start == -1 {
		return html
	}

	end := strings.Index(html, `</body>`)
	if end == -1 {
		return html
	}

	content := html[start:end]
	content = strings.ReplaceAll(content, `class="container"`, `class="echart-box"`)

	return removeStyleTags(content)
}

func removeStyleTags(content string) string {
	for {
		i := strings.Index(content, `<style>`)
		if i == -1 {
			return content
		}

		j := strings.Index(content[i:], `</style>`)
		if j == -1 {
			return content
		}

		content = content[:i] + content[i+j+styleTagLen:]
	}
}
