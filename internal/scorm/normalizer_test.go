package scorm

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/playtrack/internal/analytics"
)

func TestNormalizer_Normalize(t *testing.T) {
	now := time.Date(2025, 5, 10, 9, 30, 0, 0, time.UTC)
	normalizer := NewNormalizer(analytics.FixedClock(now), func() string { return "scorm-id" })

	tests := []struct {
		name     string
		data     Data
		gameID   string
		gameName string
		want     analytics.GameAnalytics
	}{
		{
			name: "passed session with interactions",
			data: Data{CMI: CMI{
				Core: Core{
					StudentID:    "s-100",
					StudentName:  "Lin, Mei",
					LessonStatus: LessonStatusPassed,
					Score:        &Score{Raw: analytics.Float64(18), Min: analytics.Float64(0), Max: analytics.Float64(20)},
					TotalTime:    "00:12:30",
				},
				Interactions: []Interaction{
					{ID: "q1", Time: "09:01:00", Type: "choice", StudentResponse: "b", Result: "correct", Weighting: "1"},
					{ID: "q2", Time: "09:03:10", Type: "fill-in", StudentResponse: "42", Result: "wrong"},
				},
			}},
			gameID:   "game-1",
			gameName: "Number Quest",
			want: analytics.GameAnalytics{
				ID:              "scorm-id",
				UserID:          "s-100",
				UserName:        "Lin, Mei",
				GameID:          "game-1",
				GameName:        "Number Quest",
				StartTime:       now,
				TotalTimeSpent:  "00:12:30",
				Score:           analytics.Float64(18),
				MaxScore:        analytics.Float64(20),
				PercentageScore: analytics.Float64(90),
				Completed:       analytics.Bool(true),
				Passed:          analytics.Bool(true),
				Interactions: []analytics.Interaction{
					{ID: "q1", Type: "choice", StudentResponse: "b", Result: "correct", Timestamp: "09:01:00"},
					{ID: "q2", Type: "fill-in", StudentResponse: "42", Result: "wrong", Timestamp: "09:03:10"},
				},
			},
		},
		{
			name: "no score and no status",
			data: Data{CMI: CMI{
				Core: Core{StudentID: "s-101", StudentName: "Kim"},
			}},
			gameID:   "game-2",
			gameName: "Spelling Bee",
			want: analytics.GameAnalytics{
				ID:        "scorm-id",
				UserID:    "s-101",
				UserName:  "Kim",
				GameID:    "game-2",
				GameName:  "Spelling Bee",
				StartTime: now,
			},
		},
		{
			name: "raw zero is a zero percentage",
			data: Data{CMI: CMI{
				Core: Core{
					StudentID:    "s-102",
					StudentName:  "Ola",
					LessonStatus: LessonStatusFailed,
					Score:        &Score{Raw: analytics.Float64(0), Max: analytics.Float64(50)},
				},
			}},
			gameID:   "game-3",
			gameName: "Map Maze",
			want: analytics.GameAnalytics{
				ID:              "scorm-id",
				UserID:          "s-102",
				UserName:        "Ola",
				GameID:          "game-3",
				GameName:        "Map Maze",
				StartTime:       now,
				Score:           analytics.Float64(0),
				MaxScore:        analytics.Float64(50),
				PercentageScore: analytics.Float64(0),
				Completed:       analytics.Bool(true),
				Passed:          analytics.Bool(false),
			},
		},
		{
			name: "missing max yields no percentage",
			data: Data{CMI: CMI{
				Core: Core{
					StudentID: "s-103",
					Score:     &Score{Raw: analytics.Float64(7)},
				},
			}},
			gameID: "game-4",
			want: analytics.GameAnalytics{
				ID:        "scorm-id",
				UserID:    "s-103",
				GameID:    "game-4",
				StartTime: now,
				Score:     analytics.Float64(7),
			},
		},
		{
			name: "zero max yields no percentage",
			data: Data{CMI: CMI{
				Core: Core{
					StudentID: "s-104",
					Score:     &Score{Raw: analytics.Float64(7), Max: analytics.Float64(0)},
				},
			}},
			gameID: "game-5",
			want: analytics.GameAnalytics{
				ID:        "scorm-id",
				UserID:    "s-104",
				GameID:    "game-5",
				StartTime: now,
				Score:     analytics.Float64(7),
				MaxScore:  analytics.Float64(0),
			},
		},
		{
			name: "empty interactions stay empty",
			data: Data{CMI: CMI{
				Core:         Core{StudentID: "s-105"},
				Interactions: []Interaction{},
			}},
			gameID: "game-6",
			want: analytics.GameAnalytics{
				ID:           "scorm-id",
				UserID:       "s-105",
				GameID:       "game-6",
				StartTime:    now,
				Interactions: []analytics.Interaction{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizer.Normalize(tt.data, tt.gameID, tt.gameName)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizer_Normalize_RawOverMaxTimesHundred(t *testing.T) {
	normalizer := NewNormalizer(nil, nil)

	cases := [][2]float64{{1, 3}, {7, 9}, {50, 50}, {12.5, 40}, {3, 7}}
	for _, c := range cases {
		raw, max := c[0], c[1]
		got := normalizer.Normalize(Data{CMI: CMI{Core: Core{
			StudentID: "s",
			Score:     &Score{Raw: analytics.Float64(raw), Max: analytics.Float64(max)},
		}}}, "g", "G")
		require.NotNil(t, got.PercentageScore)
		assert.Equal(t, (raw/max)*100, *got.PercentageScore, "raw=%v max=%v", raw, max)
	}
}

func TestNormalizer_Normalize_GeneratesDistinctIDs(t *testing.T) {
	normalizer := NewNormalizer(nil, nil)
	data := Data{CMI: CMI{Core: Core{StudentID: "s"}}}

	first := normalizer.Normalize(data, "g", "G")
	second := normalizer.Normalize(data, "g", "G")
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestLessonState(t *testing.T) {
	tests := []struct {
		status        string
		wantCompleted *bool
		wantPassed    *bool
	}{
		{status: "completed", wantCompleted: analytics.Bool(true)},
		{status: "incomplete", wantCompleted: analytics.Bool(false)},
		{status: "passed", wantCompleted: analytics.Bool(true), wantPassed: analytics.Bool(true)},
		{status: "failed", wantCompleted: analytics.Bool(true), wantPassed: analytics.Bool(false)},
		{status: "browsed", wantCompleted: analytics.Bool(false)},
		{status: "not attempted", wantCompleted: analytics.Bool(false)},
		{status: "PASSED", wantCompleted: analytics.Bool(false)},
		{status: ""},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			completed, passed := LessonState(tt.status)
			assert.Equal(t, tt.wantCompleted, completed)
			assert.Equal(t, tt.wantPassed, passed)
		})
	}
}

func TestData_UnmarshalJSON(t *testing.T) {
	payload := `{"cmi": {
		"core": {
			"student_id": "s-9",
			"student_name": "Rivera, Ana",
			"lesson_status": "completed",
			"score": {"raw": 30, "min": 0, "max": 40},
			"total_time": "01:00:05"
		},
		"interactions": [{"id": "i1", "time": "10:00:00", "type": "true-false", "student_response": "t", "result": "correct", "latency": "00:00:04"}]
	}}`

	var data Data
	require.NoError(t, json.Unmarshal([]byte(payload), &data))

	got := NewNormalizer(nil, nil).Normalize(data, "game-json", "JSON Game")
	assert.Equal(t, "s-9", got.UserID)
	assert.Equal(t, "Rivera, Ana", got.UserName)
	assert.Equal(t, "01:00:05", got.TotalTimeSpent)
	assert.Equal(t, 75.0, *got.PercentageScore)
	assert.True(t, got.IsCompleted())
	assert.Nil(t, got.Passed)
	require.Len(t, got.Interactions, 1)
	assert.Equal(t, "10:00:00", got.Interactions[0].Timestamp)
}
