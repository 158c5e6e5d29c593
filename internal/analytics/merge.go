package analytics

// Overlay returns existing with every field that is set on incoming copied over it.
// A field counts as set when it is non-empty, non-nil or a non-zero time.
// Slices are replaced wholesale, never appended.
func Overlay(existing, incoming GameAnalytics) GameAnalytics {
	merged := existing

	overlayString(&merged.ID, incoming.ID)
	overlayString(&merged.UserID, incoming.UserID)
	overlayString(&merged.UserName, incoming.UserName)
	overlayString(&merged.GameID, incoming.GameID)
	overlayString(&merged.GameName, incoming.GameName)
	overlayString(&merged.SchoolID, incoming.SchoolID)
	overlayString(&merged.SchoolName, incoming.SchoolName)
	overlayString(&merged.GradeLevel, incoming.GradeLevel)
	overlayString(&merged.Subject, incoming.Subject)
	overlayString(&merged.TotalTimeSpent, incoming.TotalTimeSpent)

	if !incoming.StartTime.IsZero() {
		merged.StartTime = incoming.StartTime
	}
	if incoming.EndTime != nil {
		merged.EndTime = incoming.EndTime
	}
	if incoming.Score != nil {
		merged.Score = incoming.Score
	}
	if incoming.MaxScore != nil {
		merged.MaxScore = incoming.MaxScore
	}
	if incoming.PercentageScore != nil {
		merged.PercentageScore = incoming.PercentageScore
	}
	if incoming.Completed != nil {
		merged.Completed = incoming.Completed
	}
	if incoming.Passed != nil {
		merged.Passed = incoming.Passed
	}
	if incoming.Progress != nil {
		merged.Progress = incoming.Progress
	}
	if incoming.Interactions != nil {
		merged.Interactions = incoming.Interactions
	}
	if !incoming.CreatedAt.IsZero() {
		merged.CreatedAt = incoming.CreatedAt
	}
	if !incoming.UpdatedAt.IsZero() {
		merged.UpdatedAt = incoming.UpdatedAt
	}

	return merged
}

// Clone returns a deep copy so callers cannot mutate stored state through pointers or slices.
func (a GameAnalytics) Clone() GameAnalytics {
	c := a
	c.EndTime = clonePtr(a.EndTime)
	c.Score = clonePtr(a.Score)
	c.MaxScore = clonePtr(a.MaxScore)
	c.PercentageScore = clonePtr(a.PercentageScore)
	c.Completed = clonePtr(a.Completed)
	c.Passed = clonePtr(a.Passed)
	c.Progress = clonePtr(a.Progress)
	if a.Interactions != nil {
		c.Interactions = make([]Interaction, len(a.Interactions))
		copy(c.Interactions, a.Interactions)
	}
	return c
}

func overlayString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
