package timeparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Jira's default working-time settings.
const (
	HoursPerDay = 8
	DaysPerWeek = 5
)

var (
	rawSeconds    = regexp.MustCompile(`^\d+$`)
	durationToken = regexp.MustCompile(`(\d+)\s*([wdhm])`)
)

// ParseJiraDuration converts "2w 3d 4h 30m" style strings to seconds. A bare
// integer is taken as seconds, which is what changelog records usually carry.
// An empty string is zero.
func ParseJiraDuration(s string) (int64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, nil
	}
	if rawSeconds.MatchString(s) {
		return strconv.ParseInt(s, 10, 64)
	}

	matches := durationToken.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return 0, fmt.Errorf("unrecognized duration %q", s)
	}

	var total int64
	for _, m := range matches {
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parsing duration %q: %w", s, err)
		}
		switch m[2] {
		case "w":
			total += n * DaysPerWeek * HoursPerDay * 3600
		case "d":
			total += n * HoursPerDay * 3600
		case "h":
			total += n * 3600
		case "m":
			total += n * 60
		}
	}
	return total, nil
}

// FormatHours renders seconds as "2h 30m"; negative values keep their sign.
func FormatHours(seconds int64) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	switch {
	case h == 0:
		return fmt.Sprintf("%s%dm", sign, m)
	case m == 0:
		return fmt.Sprintf("%s%dh", sign, h)
	default:
		return fmt.Sprintf("%s%dh %dm", sign, h, m)
	}
}
