// Package statistics computes summary statistics and leaderboards over game analytics records.
package statistics

import (
	"cmp"
	"slices"

	"github.com/at-ishikawa/playtrack/internal/analytics"
)

// DefaultRankingLimit is used when a ranking is requested with a non-positive limit.
const DefaultRankingLimit = 10

// userData tracks scored sessions per user
type userData struct {
	userID   string
	userName string // taken from the first scored record seen
	total    float64
	sessions int
}

// schoolData tracks scored sessions per school
type schoolData struct {
	schoolID   string
	schoolName string
	total      float64
	sessions   int
	users      map[string]struct{}
}

// CalculateAggregateStats summarizes records.
// The average score covers records with a score; the average time and both rates are over every record,
// so a record with an empty or malformed time still counts in the denominator.
func CalculateAggregateStats(records []analytics.GameAnalytics) analytics.AggregateStats {
	totalSessions := len(records)
	if totalSessions == 0 {
		return analytics.AggregateStats{AverageTimeSpent: analytics.ZeroClockDuration}
	}

	var (
		scoreSum     float64
		scoreCount   int
		totalSeconds int
		completed    int
		passed       int
	)
	for _, record := range records {
		if record.HasScore() {
			scoreSum += *record.PercentageScore
			scoreCount++
		}
		if seconds, ok := analytics.ParseClockDuration(record.TotalTimeSpent); ok {
			totalSeconds += seconds
		}
		if record.IsCompleted() {
			completed++
		}
		if record.IsPassed() {
			passed++
		}
	}

	stats := analytics.AggregateStats{
		TotalSessions:    totalSessions,
		AverageTimeSpent: analytics.FormatClockDuration(float64(totalSeconds) / float64(totalSessions)),
		CompletionRate:   float64(completed) / float64(totalSessions) * 100,
		PassRate:         float64(passed) / float64(totalSessions) * 100,
	}
	if scoreCount > 0 {
		stats.AverageScore = scoreSum / float64(scoreCount)
	}
	return stats
}

// RankUsers groups scored records by user and orders them by average score, highest first.
// Ties are broken by user id so the order is deterministic.
func RankUsers(records []analytics.GameAnalytics, limit int) []analytics.UserRanking {
	users := make(map[string]*userData)
	for _, record := range records {
		if !record.HasScore() {
			continue
		}
		user, ok := users[record.UserID]
		if !ok {
			user = &userData{userID: record.UserID, userName: record.UserName}
			users[record.UserID] = user
		}
		user.total += *record.PercentageScore
		user.sessions++
	}

	rankings := make([]analytics.UserRanking, 0, len(users))
	for _, user := range users {
		rankings = append(rankings, analytics.UserRanking{
			UserID:        user.userID,
			UserName:      user.userName,
			AverageScore:  user.total / float64(user.sessions),
			TotalSessions: user.sessions,
		})
	}
	slices.SortFunc(rankings, func(a, b analytics.UserRanking) int {
		if c := cmp.Compare(b.AverageScore, a.AverageScore); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID, b.UserID)
	})
	return truncate(rankings, limit)
}

// RankSchools groups scored records that carry a school id and orders them by average score, highest first.
// TotalStudents counts distinct users, TotalSessions counts records.
func RankSchools(records []analytics.GameAnalytics, limit int) []analytics.SchoolRanking {
	schools := make(map[string]*schoolData)
	for _, record := range records {
		if record.SchoolID == "" || !record.HasScore() {
			continue
		}
		school, ok := schools[record.SchoolID]
		if !ok {
			name := record.SchoolName
			if name == "" {
				name = analytics.UnknownSchoolName
			}
			school = &schoolData{
				schoolID:   record.SchoolID,
				schoolName: name,
				users:      make(map[string]struct{}),
			}
			schools[record.SchoolID] = school
		}
		school.total += *record.PercentageScore
		school.sessions++
		school.users[record.UserID] = struct{}{}
	}

	rankings := make([]analytics.SchoolRanking, 0, len(schools))
	for _, school := range schools {
		rankings = append(rankings, analytics.SchoolRanking{
			SchoolID:      school.schoolID,
			SchoolName:    school.schoolName,
			AverageScore:  school.total / float64(school.sessions),
			TotalStudents: len(school.users),
			TotalSessions: school.sessions,
		})
	}
	slices.SortFunc(rankings, func(a, b analytics.SchoolRanking) int {
		if c := cmp.Compare(b.AverageScore, a.AverageScore); c != 0 {
			return c
		}
		return cmp.Compare(a.SchoolID, b.SchoolID)
	})
	return truncate(rankings, limit)
}

func truncate[T any](rankings []T, limit int) []T {
	if limit <= 0 {
		limit = DefaultRankingLimit
	}
	if len(rankings) > limit {
		return rankings[:limit]
	}
	return rankings
}
