package internal

import (
	"strings"
	"time"
)

// Date/time filter name constants
const (
	FilterNameDate     = "date"
	FilterNameTime     = "time"
	FilterNameDatetime = "datetime"
)

// Default strftime-style formats for the date/time filters.
const (
	DefaultDateFormat     = "%Y-%m-%d"
	DefaultTimeFormat     = "%H:%M:%S"
	DefaultDatetimeFormat = "%Y-%m-%d %H:%M:%S"
)

// strftimeVerbs maps the strftime directives the template language
// accepts to Go reference-time layouts.
var strftimeVerbs = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'B': "January",
	'b': "Jan",
	'A': "Monday",
	'a': "Mon",
	'p': "PM",
	'Z': "MST",
	'z': "-0700",
}

// strftimeToLayout converts a strftime-style format to a Go layout.
// Unknown verbs are emitted literally.
func strftimeToLayout(format string) string {
	var b strings.Builder
	for i := 0; i < len(format); i++ {
		if format[i] != '%' || i+1 >= len(format) {
			b.WriteByte(format[i])
			continue
		}
		i++
		if format[i] == '%' {
			b.WriteByte('%')
			continue
		}
		if layout, ok := strftimeVerbs[format[i]]; ok {
			b.WriteString(layout)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(format[i])
	}
	return b.String()
}

// Formats tried when a string value must be parsed as a timestamp.
var commonTimeFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123,
	time.RFC1123Z,
	"2006/01/02",
	"01/02/2006",
}

// asTime extracts a time.Time from the value, parsing strings with the
// common formats.
func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case string:
		for _, format := range commonTimeFormats {
			if parsed, err := time.Parse(format, t); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// registerDateTimeFilters registers date/time formatting filters. Values
// that are not timestamps render via their string representation.
func registerDateTimeFilters(r *FilterRegistry) {
	formatter := func(defaultFormat string) FilterFunc {
		return func(value any, args []string) (any, error) {
			t, ok := asTime(value)
			if !ok {
				return anyToString(value), nil
			}
			format := defaultFormat
			if len(args) > 0 && args[0] != "" {
				format = args[0]
			}
			return t.Format(strftimeToLayout(format)), nil
		}
	}

	r.Register(FilterNameDate, formatter(DefaultDateFormat))
	r.Register(FilterNameTime, formatter(DefaultTimeFormat))
	r.Register(FilterNameDatetime, formatter(DefaultDatetimeFormat))
}
