// Package xapi provides Experience API (xAPI 1.0.3) statement types and their normalization into game analytics records.
package xapi

import (
	"time"
)

// Version is the xAPI version sent to learning record stores.
const Version = "1.0.3"

// Statement is an actor-verb-object xAPI statement.
type Statement struct {
	ID          string       `json:"id,omitempty"`
	Actor       Actor        `json:"actor"`
	Verb        Verb         `json:"verb"`
	Object      Object       `json:"object"`
	Result      *Result      `json:"result,omitempty"`
	Context     *Context     `json:"context,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
	Stored      string       `json:"stored,omitempty"`
	Authority   *Agent       `json:"authority,omitempty"`
	Version     string       `json:"version,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

type Actor struct {
	ObjectType string   `json:"objectType,omitempty"`
	Name       string   `json:"name"`
	Mbox       string   `json:"mbox,omitempty"`
	Account    *Account `json:"account,omitempty"`
}

type Account struct {
	HomePage string `json:"homePage"`
	Name     string `json:"name"`
}

type Agent struct {
	ObjectType string `json:"objectType,omitempty"`
	Name       string `json:"name,omitempty"`
	Mbox       string `json:"mbox,omitempty"`
}

type Verb struct {
	ID      string            `json:"id"`
	Display map[string]string `json:"display,omitempty"`
}

type Object struct {
	ID         string      `json:"id"`
	ObjectType string      `json:"objectType,omitempty"`
	Definition *Definition `json:"definition,omitempty"`
}

type Definition struct {
	Name                    map[string]string `json:"name,omitempty"`
	Description             map[string]string `json:"description,omitempty"`
	Type                    string            `json:"type,omitempty"`
	InteractionType         string            `json:"interactionType,omitempty"`
	CorrectResponsesPattern []string          `json:"correctResponsesPattern,omitempty"`
	Choices                 []Choice          `json:"choices,omitempty"`
}

type Choice struct {
	ID          string            `json:"id"`
	Description map[string]string `json:"description,omitempty"`
}

type Result struct {
	Score      *Score         `json:"score,omitempty"`
	Success    *bool          `json:"success,omitempty"`
	Completion *bool          `json:"completion,omitempty"`
	Response   string         `json:"response,omitempty"`
	Duration   string         `json:"duration,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Score holds the optional score components; scaled is in [-1, 1] per the xAPI spec.
type Score struct {
	Scaled *float64 `json:"scaled,omitempty"`
	Raw    *float64 `json:"raw,omitempty"`
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
}

type Context struct {
	Registration      string             `json:"registration,omitempty"`
	Instructor        *Agent             `json:"instructor,omitempty"`
	Team              *Agent             `json:"team,omitempty"`
	ContextActivities *ContextActivities `json:"contextActivities,omitempty"`
	Platform          string             `json:"platform,omitempty"`
	Language          string             `json:"language,omitempty"`
	Statement         *StatementRef      `json:"statement,omitempty"`
	Extensions        map[string]any     `json:"extensions,omitempty"`
}

type ContextActivities struct {
	Parent   []Activity `json:"parent,omitempty"`
	Grouping []Activity `json:"grouping,omitempty"`
	Category []Activity `json:"category,omitempty"`
	Other    []Activity `json:"other,omitempty"`
}

type Activity struct {
	ID         string `json:"id"`
	ObjectType string `json:"objectType,omitempty"`
}

type StatementRef struct {
	ObjectType string `json:"objectType"`
	ID         string `json:"id"`
}

type Attachment struct {
	UsageType   string            `json:"usageType"`
	Display     map[string]string `json:"display"`
	Description map[string]string `json:"description,omitempty"`
	ContentType string            `json:"contentType"`
	Length      int64             `json:"length"`
	SHA2        string            `json:"sha2,omitempty"`
	FileURL     string            `json:"fileUrl,omitempty"`
}

// WithDefaults returns a copy of the statement with a generated id and a timestamp of now
// filled in when they are missing.
func (s Statement) WithDefaults(newID func() string, now time.Time) Statement {
	if s.ID == "" {
		s.ID = newID()
	}
	if s.Timestamp == "" {
		s.Timestamp = now.Format(time.RFC3339Nano)
	}
	return s
}
