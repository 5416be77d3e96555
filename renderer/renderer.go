// Package renderer formats portfolio reports as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/snowball"
	"github.com/etnz/snowball/analytics"
)

//go:embed templates/*.md
var templatesFS embed.FS

var templates, _ = fs.Sub(templatesFS, "templates")

// SummaryReport is the data of the summary report.
type SummaryReport struct {
	Date         snowball.Date
	Method       snowball.CostBasisMethod
	Positions    int // Positions is the number of open positions.
	Summary      snowball.Summary
	ForwardYield snowball.Money
	Performance  *analytics.Performance // Performance is optional.
}

// RenderSummary renders the portfolio totals to a markdown string.
func RenderSummary(r SummaryReport) string {
	partials := map[string]string{
		"summary_totals":      "summary_totals.md",
		"summary_performance": "summary_performance.md",
	}
	// An empty file name results in an empty template.
	if r.Performance == nil {
		partials["summary_performance"] = ""
	}
	return renderTemplate("summary", "summary.md", partials, r)
}

// TaxReport is the data of the dividend tax report.
type TaxReport struct {
	Year    int // Year is 0 for all years.
	Summary snowball.TaxSummary
	Rates   snowball.TaxRates
}

// Estimated returns the tax due at the report rates.
func (r TaxReport) Estimated() snowball.Money { return r.Summary.EstimateTax(r.Rates) }

// RenderTaxes renders the tax classification of dividends to a markdown string.
func RenderTaxes(r TaxReport) string {
	return renderTemplate("taxes", "taxes.md", nil, r)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
