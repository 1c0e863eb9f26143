package output

import (
	"bytes"
	"fmt"
	"sync"
	"text/template"

	"github.com/dustin/go-humanize"

	"github.com/jamesainslie/sift/pkg/sift/analysis"
)

// TemplateFormatter formats the summary using a custom Go text/template.
// The template receives the *analysis.Summary.
type TemplateFormatter struct {
	templateStr string
	template    *template.Template
	mu          sync.Mutex
}

// NewTemplateFormatter creates a new template formatter with the given template string.
func NewTemplateFormatter(templateStr string) *TemplateFormatter {
	return &TemplateFormatter{
		templateStr: templateStr,
	}
}

// SetTemplate sets or updates the template string.
func (f *TemplateFormatter) SetTemplate(templateStr string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.templateStr = templateStr
	f.template = nil
}

// templateFuncs returns the custom template functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		// bytes formats a size in bytes as a human-readable string.
		// Usage: {{bytes .TotalBytes}}
		"bytes": func(size int64) string {
			return humanize.IBytes(uint64(size))
		},

		// pct formats a percentage with one decimal.
		// Usage: {{pct .Percent}}
		"pct": func(p float64) string {
			return fmt.Sprintf("%.1f%%", p)
		},
	}
}

// Format writes the formatted output to the buffer.
func (f *TemplateFormatter) Format(w *bytes.Buffer, s *analysis.Summary) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.template == nil {
		tmpl, err := template.New("output").Funcs(templateFuncs()).Parse(f.templateStr)
		if err != nil {
			return fmt.Errorf("parsing template: %w", err)
		}
		f.template = tmpl
	}

	return f.template.Execute(w, s)
}

// defaultTemplate is the template used when no custom template is provided.
const defaultTemplate = `{{range .Categories}}{{.Category}}	{{.Count}}	{{pct .Percent}}
{{end}}`

func init() {
	Register("template", func() Formatter {
		return NewTemplateFormatter(defaultTemplate)
	})
}

// Ensure TemplateFormatter implements Formatter.
var _ Formatter = (*TemplateFormatter)(nil)
