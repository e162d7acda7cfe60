package export

import (
	"fmt"
	"strings"
	"time"
)

// FormatDuration renders seconds as "N days, N hours, N minutes, N seconds", zero parts are skipped.
func FormatDuration(seconds int64) string {
	parts := make([]string, 0, 4)
	units := []struct {
		name string
		size int64
	}{
		{"days", 24 * 3600},
		{"hours", 3600},
		{"minutes", 60},
		{"seconds", 1},
	}

	for _, u := range units {
		if n := seconds / u.size; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, u.name))
			seconds %= u.size
		}
	}

	return strings.Join(parts, ", ")
}

// DateLayout is the FormatDate output layout.
const DateLayout = "2006-01-02 15:04:05 MST"

// FormatDate renders a unix timestamp in loc, a nil loc is the local time zone.
func FormatDate(unix int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}

	return time.Unix(unix, 0).In(loc).Format(DateLayout)
}
