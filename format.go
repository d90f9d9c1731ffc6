package dictschema

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/itchyny/timefmt-go"
)

var (
	dateFormatsMu sync.RWMutex
	dateFormats   = map[string]string{
		"date-time": time.RFC3339Nano,
		"rfc3339":   time.RFC3339Nano,
		"date":      time.DateOnly,
		"time":      time.TimeOnly,
		"datetime":  time.DateTime,
		"rfc1123":   time.RFC1123,
		"rfc1123z":  time.RFC1123Z,
		"rfc822":    time.RFC822,
		"rfc822z":   time.RFC822Z,
		"rfc850":    time.RFC850,
		"ansic":     time.ANSIC,
		"unix-date": time.UnixDate,
	}
)

// RegisterDateFormat registers a named Go reference layout usable as
// DatetimeParams.Format.
func RegisterDateFormat(name, layout string) {
	dateFormatsMu.Lock()
	defer dateFormatsMu.Unlock()
	dateFormats[name] = layout
}

// checkTime is formatted and parsed back to check strftime formats.
var checkTime = time.Date(2006, time.January, 2, 15, 4, 5, 123456000, time.UTC)

// dateParser resolves format to a parse function. Formats containing '%'
// are strftime formats; other unregistered formats are Go reference layouts.
func dateParser(format string) (func(string) (time.Time, error), error) {
	if format == "" {
		format = "date-time"
	}
	dateFormatsMu.RLock()
	layout, ok := dateFormats[format]
	dateFormatsMu.RUnlock()
	if !ok {
		if !strings.Contains(format, "%") {
			layout = format
		} else {
			if _, err := timefmt.Parse(timefmt.Format(checkTime, format), format); err != nil {
				return nil, fmt.Errorf("invalid date format %q: %w", format, err)
			}
			return func(s string) (time.Time, error) {
				return timefmt.Parse(s, format)
			}, nil
		}
	}
	return func(s string) (time.Time, error) {
		return time.Parse(layout, s)
	}, nil
}
