package validators

import (
	"regexp"
	"strings"
	"time"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// IsSlug accepts lowercase letters, digits and hyphens, at least two characters.
func IsSlug(s string) bool {
	return len(s) >= 2 && slugPattern.MatchString(s)
}

// ParseClock parses "HH:MM" and returns minutes since midnight.
func ParseClock(hm string) (int, bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(hm))
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
