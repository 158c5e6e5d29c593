package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClockDuration(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		want   int
		wantOK bool
	}{
		{name: "hours minutes seconds", value: "01:02:03", want: 3723, wantOK: true},
		{name: "zero", value: "00:00:00", want: 0, wantOK: true},
		{name: "non numeric field counts as zero", value: "aa:10:05", want: 605, wantOK: true},
		{name: "integer prefix is used", value: "00:01:30.5", want: 90, wantOK: true},
		{name: "two fields", value: "10:05", wantOK: false},
		{name: "four fields", value: "00:00:10:05", wantOK: false},
		{name: "iso duration", value: "PT1H", wantOK: false},
		{name: "empty", value: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseClockDuration(tt.value)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatClockDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{name: "zero", seconds: 0, want: "00:00:00"},
		{name: "negative", seconds: -5, want: "00:00:00"},
		{name: "fraction is floored", seconds: 59.9, want: "00:00:59"},
		{name: "minutes and seconds", seconds: 754, want: "00:12:34"},
		{name: "hours", seconds: 3723, want: "01:02:03"},
		{name: "three digit hours", seconds: 360000, want: "100:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatClockDuration(tt.seconds))
		})
	}
}
