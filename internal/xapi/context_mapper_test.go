package xapi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/at-ishikawa/playtrack/internal/analytics"
)

func TestGroupingMapper_MapContext(t *testing.T) {
	tests := []struct {
		name     string
		mapper   GroupingMapper
		grouping []Activity
		want     analytics.GameAnalytics
	}{
		{
			name:   "default keywords",
			mapper: NewGroupingMapper("", "", ""),
			grouping: []Activity{
				{ID: "https://lrs.example.com/school:riverside"},
				{ID: "grade:7"},
				{ID: "subject:science"},
			},
			want: analytics.GameAnalytics{
				SchoolID:   "https://lrs.example.com/school:riverside",
				SchoolName: "riverside",
				GradeLevel: "7",
				Subject:    "science",
			},
		},
		{
			name:     "id without colon keeps the whole id",
			mapper:   NewGroupingMapper("", "", ""),
			grouping: []Activity{{ID: "school-riverside"}},
			want: analytics.GameAnalytics{
				SchoolID:   "school-riverside",
				SchoolName: "school-riverside",
			},
		},
		{
			name:     "school match takes precedence over grade within one id",
			mapper:   NewGroupingMapper("", "", ""),
			grouping: []Activity{{ID: "school:grade-school"}},
			want: analytics.GameAnalytics{
				SchoolID:   "school:grade-school",
				SchoolName: "grade-school",
			},
		},
		{
			name:     "later groupings overwrite earlier ones",
			mapper:   NewGroupingMapper("", "", ""),
			grouping: []Activity{{ID: "grade:4"}, {ID: "grade:5"}},
			want:     analytics.GameAnalytics{GradeLevel: "5"},
		},
		{
			name:     "unmatched ids are ignored",
			mapper:   NewGroupingMapper("", "", ""),
			grouping: []Activity{{ID: "https://example.com/course/101"}},
			want:     analytics.GameAnalytics{},
		},
		{
			name:   "custom keywords",
			mapper: NewGroupingMapper("org", "level", "topic"),
			grouping: []Activity{
				{ID: "org:academy"},
				{ID: "level:B1"},
				{ID: "topic:grammar"},
				{ID: "school:not-used"},
			},
			want: analytics.GameAnalytics{
				SchoolID:   "org:academy",
				SchoolName: "academy",
				GradeLevel: "B1",
				Subject:    "grammar",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got analytics.GameAnalytics
			tt.mapper.MapContext(ContextActivities{Grouping: tt.grouping}, &got)
			assert.Equal(t, tt.want, got)
		})
	}
}
