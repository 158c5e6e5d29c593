package xapi

import (
	"strings"

	"github.com/at-ishikawa/playtrack/internal/analytics"
)

// ContextMapper copies classification dimensions (school, grade, subject) from the
// statement's context activities onto a record. LRS deployments that encode them
// differently plug in their own implementation.
type ContextMapper interface {
	MapContext(activities ContextActivities, record *analytics.GameAnalytics)
}

// ContextMapperFunc adapts a function to ContextMapper.
type ContextMapperFunc func(activities ContextActivities, record *analytics.GameAnalytics)

// MapContext implements ContextMapper.
func (f ContextMapperFunc) MapContext(activities ContextActivities, record *analytics.GameAnalytics) {
	f(activities, record)
}

const (
	DefaultSchoolKeyword  = "school"
	DefaultGradeKeyword   = "grade"
	DefaultSubjectKeyword = "subject"
)

// GroupingMapper scans context grouping activities for ids containing a keyword.
// The first matching keyword wins per activity, checked in school, grade, subject order.
// A school match keeps the full id as SchoolID and uses the last ":" segment as SchoolName;
// grade and subject matches use the last ":" segment.
type GroupingMapper struct {
	SchoolKeyword  string
	GradeKeyword   string
	SubjectKeyword string
}

// NewGroupingMapper returns a GroupingMapper, falling back to the default keyword for any empty argument.
func NewGroupingMapper(school, grade, subject string) GroupingMapper {
	m := GroupingMapper{SchoolKeyword: school, GradeKeyword: grade, SubjectKeyword: subject}
	if m.SchoolKeyword == "" {
		m.SchoolKeyword = DefaultSchoolKeyword
	}
	if m.GradeKeyword == "" {
		m.GradeKeyword = DefaultGradeKeyword
	}
	if m.SubjectKeyword == "" {
		m.SubjectKeyword = DefaultSubjectKeyword
	}
	return m
}

// MapContext implements ContextMapper.
func (m GroupingMapper) MapContext(activities ContextActivities, record *analytics.GameAnalytics) {
	for _, group := range activities.Grouping {
		switch {
		case m.SchoolKeyword != "" && strings.Contains(group.ID, m.SchoolKeyword):
			record.SchoolID = group.ID
			record.SchoolName = lastSegment(group.ID)
		case m.GradeKeyword != "" && strings.Contains(group.ID, m.GradeKeyword):
			record.GradeLevel = lastSegment(group.ID)
		case m.SubjectKeyword != "" && strings.Contains(group.ID, m.SubjectKeyword):
			record.Subject = lastSegment(group.ID)
		}
	}
}

func lastSegment(id string) string {
	return id[strings.LastIndex(id, ":")+1:]
}
