package output

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/jamesainslie/sift/pkg/sift/analysis"
	"github.com/jamesainslie/sift/pkg/sift/types"
)

// document is the machine-readable report shared by the json and yaml
// formatters.
type document struct {
	Meta       documentMeta       `json:"meta" yaml:"meta"`
	Totals     documentTotals     `json:"totals" yaml:"totals"`
	Categories []documentCategory `json:"categories" yaml:"categories"`
	Unknown    []documentUnknown  `json:"unknown_extensions" yaml:"unknown_extensions"`
	Stats      documentStats      `json:"stats" yaml:"stats"`
}

type documentMeta struct {
	RunID   string `json:"run_id" yaml:"run_id"`
	Root    string `json:"root" yaml:"root"`
	Elapsed string `json:"elapsed" yaml:"elapsed"`
	Skipped int    `json:"skipped" yaml:"skipped"`
}

type documentTotals struct {
	Files     int     `json:"files" yaml:"files"`
	Bytes     int64   `json:"bytes" yaml:"bytes"`
	Human     string  `json:"human" yaml:"human"`
	Megabytes float64 `json:"megabytes" yaml:"megabytes"`
}

type documentCategory struct {
	Name    string  `json:"name" yaml:"name"`
	Count   int     `json:"count" yaml:"count"`
	Percent float64 `json:"percent" yaml:"percent"`
}

type documentUnknown struct {
	Extension string  `json:"extension" yaml:"extension"`
	Count     int     `json:"count" yaml:"count"`
	Percent   float64 `json:"percent" yaml:"percent"`
}

type documentStats struct {
	Min    int64   `json:"min" yaml:"min"`
	Max    int64   `json:"max" yaml:"max"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Median int64   `json:"median" yaml:"median"`
	P90    int64   `json:"p90" yaml:"p90"`
	P99    int64   `json:"p99" yaml:"p99"`
}

func buildDocument(s *analysis.Summary) document {
	doc := document{
		Meta: documentMeta{
			RunID:   s.RunID,
			Root:    s.Root,
			Elapsed: s.Elapsed.String(),
			Skipped: s.Skipped,
		},
		Totals: documentTotals{
			Files:     s.TotalFiles,
			Bytes:     s.TotalBytes,
			Human:     types.FormatSize(s.TotalBytes),
			Megabytes: s.TotalMegabytes(),
		},
		Categories: make([]documentCategory, 0, len(s.Categories)),
		Unknown:    make([]documentUnknown, 0, len(s.Unknown)),
		Stats: documentStats{
			Min:    s.Stats.Min,
			Max:    s.Stats.Max,
			Mean:   s.Stats.Mean,
			Median: s.Stats.Median,
			P90:    s.Stats.P90,
			P99:    s.Stats.P99,
		},
	}
	for _, share := range s.Categories {
		doc.Categories = append(doc.Categories, documentCategory{
			Name:    share.Category.String(),
			Count:   share.Count,
			Percent: share.Percent,
		})
	}
	for _, u := range s.Unknown {
		doc.Unknown = append(doc.Unknown, documentUnknown(u))
	}
	return doc
}

// JSONFormatter formats output as a single indented JSON object.
type JSONFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *JSONFormatter) Format(w *bytes.Buffer, s *analysis.Summary) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildDocument(s))
}

// YAMLFormatter formats output as YAML.
// It produces the same structure as JSONFormatter but in YAML format.
type YAMLFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *YAMLFormatter) Format(w *bytes.Buffer, s *analysis.Summary) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(buildDocument(s)); err != nil {
		return err
	}
	return encoder.Close()
}

func init() {
	Register("json", func() Formatter {
		return &JSONFormatter{}
	})
	Register("yaml", func() Formatter {
		return &YAMLFormatter{}
	})
}

var (
	_ Formatter = (*JSONFormatter)(nil)
	_ Formatter = (*YAMLFormatter)(nil)
)
