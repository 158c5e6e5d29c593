package scorm

import (
	"github.com/google/uuid"

	"github.com/at-ishikawa/playtrack/internal/analytics"
)

// Normalizer maps SCORM runtime data onto analytics records.
type Normalizer struct {
	clock analytics.Clock
	newID func() string
}

// NewNormalizer creates a Normalizer. A nil clock or id generator falls back to the
// system clock and random UUIDs.
func NewNormalizer(clock analytics.Clock, newID func() string) *Normalizer {
	if clock == nil {
		clock = analytics.SystemClock
	}
	if newID == nil {
		newID = uuid.NewString
	}
	return &Normalizer{clock: clock, newID: newID}
}

// Normalize converts runtime data into a record for the given game.
// SCORM data carries no game identity or record id, so the game comes from the caller
// and the id is always generated.
func (n *Normalizer) Normalize(data Data, gameID, gameName string) analytics.GameAnalytics {
	core := data.CMI.Core

	record := analytics.GameAnalytics{
		ID:             n.newID(),
		UserID:         core.StudentID,
		UserName:       core.StudentName,
		GameID:         gameID,
		GameName:       gameName,
		StartTime:      n.clock.Now(),
		TotalTimeSpent: core.TotalTime,
	}

	if score := core.Score; score != nil {
		record.Score = score.Raw
		record.MaxScore = score.Max
		record.PercentageScore = percentage(score)
	}

	record.Completed, record.Passed = LessonState(core.LessonStatus)

	if data.CMI.Interactions != nil {
		record.Interactions = make([]analytics.Interaction, len(data.CMI.Interactions))
		for i, interaction := range data.CMI.Interactions {
			record.Interactions[i] = analytics.Interaction{
				ID:              interaction.ID,
				Type:            interaction.Type,
				StudentResponse: interaction.StudentResponse,
				Result:          interaction.Result,
				Timestamp:       interaction.Time,
			}
		}
	}

	return record
}

// percentage is raw/max*100. A raw of 0 is a valid 0%; a missing or non-positive max yields no score.
func percentage(score *Score) *float64 {
	if score.Raw == nil || score.Max == nil || *score.Max <= 0 {
		return nil
	}
	return analytics.Float64(*score.Raw / *score.Max * 100)
}

// LessonState maps cmi.core.lesson_status to (completed, passed).
// An empty status leaves both unset; an unknown status is not completed.
func LessonState(status string) (completed *bool, passed *bool) {
	switch status {
	case "":
		return nil, nil
	case LessonStatusCompleted:
		return analytics.Bool(true), nil
	case LessonStatusIncomplete:
		return analytics.Bool(false), nil
	case LessonStatusPassed:
		return analytics.Bool(true), analytics.Bool(true)
	case LessonStatusFailed:
		return analytics.Bool(true), analytics.Bool(false)
	default:
		return analytics.Bool(false), nil
	}
}
