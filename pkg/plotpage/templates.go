package plotpage

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageTemplates parses every fragment once, on first use.
var pageTemplates = sync.OnceValues(func() (*template.Template, error) {
	tmpl, err := template.New("commitlens").
		Funcs(template.FuncMap{
			"comma": commaInt,
			"lines": lineCount,
		}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}

	return tmpl, nil
})

func commaInt(n int) string {
	return humanize.Comma(int64(n))
}

// lineCount reads "1 line" or "1,204 lines".
func lineCount(n int) string {
	return commaInt(n) + " " + english.PluralWord(n, "line", "")
}

// executeTemplate writes the named fragment to w.
func executeTemplate(w io.Writer, name string, data any) error {
	tmpl, err := pageTemplates()
	if err != nil {
		return err
	}

	err = tmpl.ExecuteTemplate(w, name, data)
	if err != nil {
		return fmt.Errorf("execute %s: %w", name, err)
	}

	return nil
}

// fragment renders a named template for embedding in another one.
func fragment(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer

	err := executeTemplate(&buf, name, data)
	if err != nil {
		return "", err
	}

	return template.HTML(buf.String()), nil
}
