package analytics

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseClockDuration converts an HH:MM:SS string into seconds.
// It returns false unless the string has exactly three colon-separated fields.
// A field that does not start with an integer counts as 0.
func ParseClockDuration(value string) (int, bool) {
	if value == "" {
		return 0, false
	}
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, false
	}

	hours := leadingInt(parts[0])
	minutes := leadingInt(parts[1])
	seconds := leadingInt(parts[2])
	return hours*3600 + minutes*60 + seconds, true
}

// FormatClockDuration renders seconds as HH:MM:SS, flooring each component.
// Hours are zero padded to two digits but may grow past 99.
func FormatClockDuration(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return ZeroClockDuration
	}
	hours := math.Floor(seconds / 3600)
	minutes := math.Floor(math.Mod(seconds, 3600) / 60)
	remainder := math.Floor(math.Mod(seconds, 60))
	return fmt.Sprintf("%02d:%02d:%02d", int64(hours), int64(minutes), int64(remainder))
}

// leadingInt parses the integer prefix of s, e.g. "07" -> 7, "12s" -> 12, "x" -> 0.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
