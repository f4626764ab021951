// Package export renders a computed report as Markdown, HTML, XLSX,
// terminal text or JSON.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/multikids/portage/internal/narrative"
	"github.com/multikids/portage/internal/report"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is an output format name.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatXLSX     Format = "xlsx"
	FormatJSON     Format = "json"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatText, FormatMarkdown, FormatHTML, FormatXLSX, FormatJSON}
}

// ParseFormat accepts a format name or a common alias ("md", "txt").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Extension is the file extension, with dot, used for the format.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatHTML:
		return ".html"
	case FormatXLSX:
		return ".xlsx"
	case FormatJSON:
		return ".json"
	}
	return ".txt"
}

// Input is everything an exporter renders. Exporters never recompute scores.
type Input struct {
	Full            report.Full                `json:"report"`
	Therapist       string                     `json:"therapist,omitempty"`
	Recommendations []narrative.Recommendation `json:"recommendations"`
}

// Options tweaks rendering.
type Options struct {
	// Color enables ANSI colors in the text format.
	Color bool
}

// Write renders in to w in the given format.
func Write(w io.Writer, f Format, in Input, opts Options) error {
	switch f {
	case FormatText:
		return Text(w, in, opts.Color)
	case FormatMarkdown:
		return Markdown(w, in)
	case FormatHTML:
		return HTML(w, in)
	case FormatXLSX:
		return XLSX(w, in)
	case FormatJSON:
		return JSON(w, in)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// FileName suggests a file name for a child's report in the given format,
// such as "relatorio-portage-ana-clara-20240301.html".
func FileName(full report.Full, f Format) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(full.Child.Name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		slug = "crianca"
	}
	return fmt.Sprintf("relatorio-portage-%s-%s%s", slug, full.GeneratedAt.Format("20060102"), f.Extension())
}

const dateLayout = "02/01/2006"

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
