// Package analytics provides the canonical game analytics record that xAPI and SCORM telemetry are normalized into.
package analytics

import "time"

const (
	// UnknownGameName is used when an xAPI activity carries no en-US name.
	UnknownGameName = "Unknown Game"
	// UnknownSchoolName is used in school rankings when a record has a school id but no name.
	UnknownSchoolName = "Unknown School"
	// ZeroClockDuration is the HH:MM:SS form of no time spent.
	ZeroClockDuration = "00:00:00"
)

// GameAnalytics is one learning session or attempt of a game.
type GameAnalytics struct {
	ID       string `json:"id" db:"id" yaml:"id"`
	UserID   string `json:"userId" db:"user_id" yaml:"user_id"`
	UserName string `json:"userName" db:"user_name" yaml:"user_name"`
	GameID   string `json:"gameId" db:"game_id" yaml:"game_id"`
	GameName string `json:"gameName" db:"game_name" yaml:"game_name"`

	// Classification dimensions, empty when the source format does not encode them.
	SchoolID   string `json:"schoolId,omitempty" yaml:"school_id,omitempty"`
	SchoolName string `json:"schoolName,omitempty" yaml:"school_name,omitempty"`
	GradeLevel string `json:"gradeLevel,omitempty" yaml:"grade_level,omitempty"`
	Subject    string `json:"subject,omitempty" yaml:"subject,omitempty"`

	StartTime time.Time  `json:"startTime" yaml:"start_time"`
	EndTime   *time.Time `json:"endTime,omitempty" yaml:"end_time,omitempty"`
	// TotalTimeSpent is a wall-clock HH:MM:SS string, not an ISO-8601 duration.
	TotalTimeSpent string `json:"totalTimeSpent,omitempty" yaml:"total_time_spent,omitempty"`

	Score           *float64 `json:"score,omitempty" yaml:"score,omitempty"`
	MaxScore        *float64 `json:"maxScore,omitempty" yaml:"max_score,omitempty"`
	PercentageScore *float64 `json:"percentageScore,omitempty" yaml:"percentage_score,omitempty"`

	Completed *bool `json:"completed,omitempty" yaml:"completed,omitempty"`
	Passed    *bool `json:"passed,omitempty" yaml:"passed,omitempty"`
	// Progress is reserved for producers that report partial completion (0-100).
	Progress *float64 `json:"progress,omitempty" yaml:"progress,omitempty"`

	Interactions []Interaction `json:"interactions,omitempty" yaml:"interactions,omitempty"`

	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updated_at"`
}

// Interaction is a single question or step answered during a session.
type Interaction struct {
	ID              string `json:"id" yaml:"id"`
	Type            string `json:"type" yaml:"type"`
	Description     string `json:"description,omitempty" yaml:"description,omitempty"`
	StudentResponse string `json:"studentResponse,omitempty" yaml:"student_response,omitempty"`
	CorrectResponse string `json:"correctResponse,omitempty" yaml:"correct_response,omitempty"`
	Result          string `json:"result,omitempty" yaml:"result,omitempty"`
	Timestamp       string `json:"timestamp" yaml:"timestamp"`
}

// IsCompleted reports whether the record is explicitly completed. Unset counts as not completed.
func (a GameAnalytics) IsCompleted() bool {
	return a.Completed != nil && *a.Completed
}

// IsPassed reports whether the record is explicitly passed. Unset counts as not passed.
func (a GameAnalytics) IsPassed() bool {
	return a.Passed != nil && *a.Passed
}

// HasScore reports whether a percentage score was derived for the record.
func (a GameAnalytics) HasScore() bool {
	return a.PercentageScore != nil
}

// AggregateStats summarizes every stored session.
type AggregateStats struct {
	TotalSessions    int     `json:"totalSessions" yaml:"total_sessions"`
	AverageScore     float64 `json:"averageScore" yaml:"average_score"`
	AverageTimeSpent string  `json:"averageTimeSpent" yaml:"average_time_spent"`
	CompletionRate   float64 `json:"completionRate" yaml:"completion_rate"`
	PassRate         float64 `json:"passRate" yaml:"pass_rate"`
}

// UserRanking is one row of the learner leaderboard.
type UserRanking struct {
	UserID        string  `json:"userId" yaml:"user_id"`
	UserName      string  `json:"userName" yaml:"user_name"`
	AverageScore  float64 `json:"averageScore" yaml:"average_score"`
	TotalSessions int     `json:"totalSessions" yaml:"total_sessions"`
}

// SchoolRanking is one row of the school leaderboard.
type SchoolRanking struct {
	SchoolID      string  `json:"schoolId" yaml:"school_id"`
	SchoolName    string  `json:"schoolName" yaml:"school_name"`
	AverageScore  float64 `json:"averageScore" yaml:"average_score"`
	TotalStudents int     `json:"totalStudents" yaml:"total_students"`
	TotalSessions int     `json:"totalSessions" yaml:"total_sessions"`
}

// Float64 returns a pointer to v.
func Float64(v float64) *float64 {
	return &v
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}
