// Package assets renders reports from embedded or user supplied text templates.
package assets

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/at-ishikawa/playtrack/internal/analytics"
)

const analyticsReportTemplateName = "analytics-report.md.go.tmpl"

//go:embed templates/analytics-report.md.go.tmpl
var fallbackAnalyticsReportTemplate string

// AnalyticsReport is the data an analytics report template is executed with.
type AnalyticsReport struct {
	GeneratedAt time.Time
	Stats       analytics.AggregateStats
	Users       []analytics.UserRanking
	Schools     []analytics.SchoolRanking
}

// WriteAnalyticsReport renders report with the template at templatePath,
// or with the embedded markdown template when templatePath is empty or unusable.
func WriteAnalyticsReport(output io.Writer, templatePath string, report AnalyticsReport) error {
	tmpl, err := parseTemplateWithFallback(templatePath, analyticsReportTemplateName, fallbackAnalyticsReportTemplate)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, report); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

func parseTemplateWithFallback(templatePath string, fallbackName string, fallbackTemplate string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join":    strings.Join,
		"percent": func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
		"rank":    func(i int) int { return i + 1 },
	}

	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			fileName := filepath.Base(templatePath)
			tmpl, err := template.New(fileName).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackName).
		Funcs(funcMap).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}
