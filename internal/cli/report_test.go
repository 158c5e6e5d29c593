package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/playtrack/internal/analytics"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type fakeReportService struct {
	stats   analytics.AggregateStats
	users   []analytics.UserRanking
	schools []analytics.SchoolRanking
	err     error
	limits  []int
}

func (s *fakeReportService) GetAggregateStats(context.Context) (analytics.AggregateStats, error) {
	return s.stats, s.err
}

func (s *fakeReportService) GetUserRankings(_ context.Context, limit int) ([]analytics.UserRanking, error) {
	s.limits = append(s.limits, limit)
	return s.users, nil
}

func (s *fakeReportService) GetSchoolRankings(_ context.Context, limit int) ([]analytics.SchoolRanking, error) {
	s.limits = append(s.limits, limit)
	return s.schools, nil
}

func TestPrintStats(t *testing.T) {
	tests := []struct {
		name  string
		stats analytics.AggregateStats
		want  string
	}{
		{
			name: "summary",
			stats: analytics.AggregateStats{
				TotalSessions:    4,
				AverageScore:     81.25,
				AverageTimeSpent: "00:03:00",
				CompletionRate:   75,
				PassRate:         50,
			},
			want: "Game Analytics Summary\n" +
				"======================\n" +
				"Total sessions        4\n" +
				"Average score           81.2%\n" +
				"Average time spent    00:03:00\n" +
				"Completion rate         75.0%\n" +
				"Pass rate               50.0%\n",
		},
		{
			name:  "empty store",
			stats: analytics.AggregateStats{AverageTimeSpent: analytics.ZeroClockDuration},
			want:  "Game Analytics Summary\n======================\nNo sessions recorded yet.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			PrintStats(&buf, tt.stats)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrintRankings(t *testing.T) {
	var buf bytes.Buffer
	PrintUserRankings(&buf, []analytics.UserRanking{
		{UserID: "u1", UserName: "Ada", AverageScore: 92, TotalSessions: 3},
		{UserID: "u2", UserName: "Bo", AverageScore: 40.5, TotalSessions: 1},
	})
	assert.Contains(t, buf.String(), "Top Learners")
	assert.Contains(t, buf.String(), "1     u1                        Ada                         92.0%         3")
	assert.Contains(t, buf.String(), "2     u2                        Bo                          40.5%         1")

	buf.Reset()
	PrintSchoolRankings(&buf, []analytics.SchoolRanking{
		{SchoolID: "urn:school:north", SchoolName: "north", AverageScore: 70, TotalStudents: 2, TotalSessions: 5},
	})
	assert.Contains(t, buf.String(), "1     north                               70.0%         2         5")

	buf.Reset()
	PrintSchoolRankings(&buf, nil)
	assert.Contains(t, buf.String(), "No scored sessions with a school yet.")
}

func TestScoreColor(t *testing.T) {
	tests := []struct {
		score float64
		want  *color.Color
	}{
		{score: 100, want: green},
		{score: 80, want: green},
		{score: 79.9, want: yellow},
		{score: 50, want: yellow},
		{score: 0, want: red},
	}
	for _, tt := range tests {
		assert.Same(t, tt.want, scoreColor(tt.score), "score %v", tt.score)
	}
}

func TestExportReport(t *testing.T) {
	now := time.Date(2025, 4, 2, 8, 30, 0, 0, time.UTC)

	t.Run("writes the markdown report", func(t *testing.T) {
		service := &fakeReportService{
			stats: analytics.AggregateStats{TotalSessions: 1, AverageScore: 90, AverageTimeSpent: "00:01:00", CompletionRate: 100},
			users: []analytics.UserRanking{{UserID: "u1", UserName: "Ada", AverageScore: 90, TotalSessions: 1}},
		}
		outputPath := filepath.Join(t.TempDir(), "reports", "report.md")

		got, err := ExportReport(context.Background(), service, ExportOptions{OutputPath: outputPath, Limit: 5, Now: now})
		require.NoError(t, err)
		assert.Equal(t, []string{outputPath}, got)
		assert.Equal(t, []int{5, 5}, service.limits)

		content, err := os.ReadFile(outputPath)
		require.NoError(t, err)
		assert.Contains(t, string(content), "Generated at 2025-04-02 08:30:00 UTC")
		assert.Contains(t, string(content), "| 1 | Ada | 90.0% | 1 |")
	})

	t.Run("also writes a PDF", func(t *testing.T) {
		outputPath := filepath.Join(t.TempDir(), "report.md")
		got, err := ExportReport(context.Background(), &fakeReportService{}, ExportOptions{OutputPath: outputPath, GeneratePDF: true, Now: now})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.FileExists(t, got[1])
		assert.Equal(t, ".pdf", filepath.Ext(got[1]))
	})

	t.Run("service failure", func(t *testing.T) {
		outputPath := filepath.Join(t.TempDir(), "report.md")
		_, err := ExportReport(context.Background(), &fakeReportService{err: errors.New("store offline")}, ExportOptions{OutputPath: outputPath, Now: now})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "store offline")
		assert.NoFileExists(t, outputPath)
	})
}
