// Package cli implements the terminal side of the playtrack command: colored reports,
// markdown report export and file ingestion.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/playtrack/internal/analytics"
	"github.com/at-ishikawa/playtrack/internal/assets"
	"github.com/at-ishikawa/playtrack/internal/pdf"
)

// ReportService provides the summaries a report shows.
type ReportService interface {
	GetAggregateStats(ctx context.Context) (analytics.AggregateStats, error)
	GetUserRankings(ctx context.Context, limit int) ([]analytics.UserRanking, error)
	GetSchoolRankings(ctx context.Context, limit int) ([]analytics.SchoolRanking, error)
}

var (
	bold   = color.New(color.Bold)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
)

// scoreColor highlights scores at or above 80 in green and below 50 in red.
func scoreColor(score float64) *color.Color {
	switch {
	case score >= 80:
		return green
	case score >= 50:
		return yellow
	default:
		return red
	}
}

func formatScore(score float64) string {
	return scoreColor(score).Sprintf("%6.1f%%", score)
}

// PrintStats displays the aggregate statistics.
func PrintStats(w io.Writer, stats analytics.AggregateStats) {
	_, _ = bold.Fprintln(w, "Game Analytics Summary")
	_, _ = fmt.Fprintln(w, "======================")
	if stats.TotalSessions == 0 {
		_, _ = fmt.Fprintln(w, "No sessions recorded yet.")
		return
	}
	_, _ = fmt.Fprintf(w, "%-20s  %d\n", "Total sessions", stats.TotalSessions)
	_, _ = fmt.Fprintf(w, "%-20s  %s\n", "Average score", formatScore(stats.AverageScore))
	_, _ = fmt.Fprintf(w, "%-20s  %s\n", "Average time spent", stats.AverageTimeSpent)
	_, _ = fmt.Fprintf(w, "%-20s  %6.1f%%\n", "Completion rate", stats.CompletionRate)
	_, _ = fmt.Fprintf(w, "%-20s  %6.1f%%\n", "Pass rate", stats.PassRate)
}

// PrintUserRankings displays the learner leaderboard.
func PrintUserRankings(w io.Writer, rankings []analytics.UserRanking) {
	_, _ = bold.Fprintln(w, "Top Learners")
	_, _ = fmt.Fprintln(w, "============")
	if len(rankings) == 0 {
		_, _ = fmt.Fprintln(w, "No scored sessions yet.")
		return
	}
	_, _ = fmt.Fprintf(w, "%-4s  %-24s  %-24s  %7s  %8s\n", "Rank", "User ID", "Name", "Score", "Sessions")
	for i, r := range rankings {
		_, _ = fmt.Fprintf(w, "%-4d  %-24s  %-24s  %s  %8d\n", i+1, r.UserID, r.UserName, formatScore(r.AverageScore), r.TotalSessions)
	}
}

// PrintSchoolRankings displays the school leaderboard.
func PrintSchoolRankings(w io.Writer, rankings []analytics.SchoolRanking) {
	_, _ = bold.Fprintln(w, "Top Schools")
	_, _ = fmt.Fprintln(w, "===========")
	if len(rankings) == 0 {
		_, _ = fmt.Fprintln(w, "No scored sessions with a school yet.")
		return
	}
	_, _ = fmt.Fprintf(w, "%-4s  %-32s  %7s  %8s  %8s\n", "Rank", "School", "Score", "Students", "Sessions")
	for i, r := range rankings {
		_, _ = fmt.Fprintf(w, "%-4d  %-32s  %s  %8d  %8d\n", i+1, r.SchoolName, formatScore(r.AverageScore), r.TotalStudents, r.TotalSessions)
	}
}

// ExportOptions controls ExportReport.
type ExportOptions struct {
	OutputPath   string
	TemplatePath string
	Limit        int
	GeneratePDF  bool
	Now          time.Time
}

// ExportReport writes a markdown report, and optionally a PDF next to it, and returns the written paths.
func ExportReport(ctx context.Context, service ReportService, opts ExportOptions) ([]string, error) {
	stats, err := service.GetAggregateStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.GetAggregateStats() > %w", err)
	}
	users, err := service.GetUserRankings(ctx, opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("service.GetUserRankings() > %w", err)
	}
	schools, err := service.GetSchoolRankings(ctx, opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("service.GetSchoolRankings() > %w", err)
	}

	if dir := filepath.Dir(opts.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
		}
	}
	output, err := os.Create(opts.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("os.Create(%s) > %w", opts.OutputPath, err)
	}
	defer func() {
		_ = output.Close()
	}()

	if err := assets.WriteAnalyticsReport(output, opts.TemplatePath, assets.AnalyticsReport{
		GeneratedAt: opts.Now,
		Stats:       stats,
		Users:       users,
		Schools:     schools,
	}); err != nil {
		return nil, fmt.Errorf("assets.WriteAnalyticsReport(%s) > %w", opts.OutputPath, err)
	}
	if err := output.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", opts.OutputPath, err)
	}
	paths := []string{opts.OutputPath}

	if opts.GeneratePDF {
		pdfPath, err := pdf.ConvertMarkdownToPDF(opts.OutputPath)
		if err != nil {
			return paths, fmt.Errorf("ConvertMarkdownToPDF(%s) > %w", opts.OutputPath, err)
		}
		paths = append(paths, pdfPath)
	}
	return paths, nil
}
