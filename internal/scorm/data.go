// Package scorm provides SCORM 1.2 runtime data types and their normalization into game analytics records.
package scorm

// Data is a SCORM 1.2 runtime data block rooted at cmi.
type Data struct {
	CMI CMI `json:"cmi" validate:"required"`
}

type CMI struct {
	Core              Core               `json:"core" validate:"required"`
	SuspendData       string             `json:"suspend_data,omitempty"`
	LaunchData        string             `json:"launch_data,omitempty"`
	Comments          string             `json:"comments,omitempty"`
	CommentsFromLMS   string             `json:"comments_from_lms,omitempty"`
	Objectives        []Objective        `json:"objectives,omitempty"`
	StudentData       *StudentData       `json:"student_data,omitempty"`
	StudentPreference *StudentPreference `json:"student_preference,omitempty"`
	Interactions      []Interaction      `json:"interactions,omitempty"`
}

// Core is cmi.core. StudentID and StudentName are mandatory in the SCORM 1.2 data model.
type Core struct {
	StudentID      string `json:"student_id" validate:"required"`
	StudentName    string `json:"student_name"`
	LessonLocation string `json:"lesson_location,omitempty"`
	Credit         string `json:"credit,omitempty"`
	LessonStatus   string `json:"lesson_status,omitempty"`
	Entry          string `json:"entry,omitempty"`
	Score          *Score `json:"score,omitempty"`
	TotalTime      string `json:"total_time,omitempty"`
	LessonMode     string `json:"lesson_mode,omitempty"`
	Exit           string `json:"exit,omitempty"`
	SessionTime    string `json:"session_time,omitempty"`
}

type Score struct {
	Raw *float64 `json:"raw,omitempty"`
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

type Objective struct {
	ID     string `json:"id"`
	Score  *Score `json:"score,omitempty"`
	Status string `json:"status,omitempty"`
}

type StudentData struct {
	MasteryScore    *float64 `json:"mastery_score,omitempty"`
	MaxTimeAllowed  string   `json:"max_time_allowed,omitempty"`
	TimeLimitAction string   `json:"time_limit_action,omitempty"`
}

type StudentPreference struct {
	Audio    string  `json:"audio,omitempty"`
	Language string  `json:"language,omitempty"`
	Speed    float64 `json:"speed,omitempty"`
	Text     string  `json:"text,omitempty"`
}

// Interaction is one entry of cmi.interactions.
type Interaction struct {
	ID              string `json:"id"`
	Time            string `json:"time"`
	Type            string `json:"type"`
	Weighting       string `json:"weighting,omitempty"`
	StudentResponse string `json:"student_response"`
	Result          string `json:"result"`
	Latency         string `json:"latency,omitempty"`
}

// LessonStatus values of cmi.core.lesson_status that carry completion or success.
const (
	LessonStatusCompleted  = "completed"
	LessonStatusIncomplete = "incomplete"
	LessonStatusPassed     = "passed"
	LessonStatusFailed     = "failed"
)
