package naming

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Shared grammar description. Every width, separator, and character class
// below is used by both the generators and the parsers.
const (
	// ShootCodeLength is the fixed width of the uppercase-alphanumeric shoot code.
	ShootCodeLength = 5
	// indexWidth and stackWidth are the zero-padded digit counts for the
	// subject index and bracket-group number. maxEncodable is the largest
	// value those fields can hold.
	indexWidth   = 3
	stackWidth   = 3
	maxEncodable = 999
	// FinalExtension is the only extension the final grammar produces.
	FinalExtension = "jpg"
	// dateLayout is the calendar-day format shared by both grammars.
	dateLayout = "2006-01-02"
)

const (
	fragDate      = `(?P<date>\d{4}-\d{2}-\d{2})`
	fragShootCode = `(?P<code>[A-Z0-9]{5})`
	fragRoomToken = `(?P<room>[a-z0-9]+(?:-[a-z0-9]+)*)`
	fragIndex     = `(?P<index>\d{3})`
	fragVersion   = `(?P<version>[1-9]\d*)`
	fragStack     = `(?P<stack>\d{3})`
	fragEV        = `(?P<ev>0|[+-][1-9]\d*)`
	fragExtension = `(?P<ext>[a-z0-9]+)`

	fragBase = fragDate + `-` + fragShootCode + `_` + fragRoomToken + `_` + fragIndex
)

var (
	finalPattern = regexp.MustCompile(`^` + fragBase + `_v` + fragVersion + `\.` + FinalExtension + `$`)
	rawPattern   = regexp.MustCompile(`^` + fragBase + `_g` + fragStack + `_e` + fragEV + `\.` + fragExtension + `$`)

	shootCodePattern = regexp.MustCompile(`^[A-Z0-9]{5}$`)
	extensionPattern = regexp.MustCompile(`^[a-z0-9]+$`)
)

func renderBase(date, code, roomToken string, index int) string {
	return fmt.Sprintf("%s-%s_%s_%0*d", date, code, roomToken, indexWidth, index)
}

func renderEV(ev int) string {
	if ev > 0 {
		return "+" + strconv.Itoa(ev)
	}
	return strconv.Itoa(ev)
}

func validDate(date string) bool {
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return false
	}
	// Reject values time.Parse silently normalizes, e.g. out-of-range days.
	return parsed.Format(dateLayout) == date
}

func validShootCode(code string) bool {
	return shootCodePattern.MatchString(code)
}

// ValidDate reports whether the value is a well-formed YYYY-MM-DD calendar day.
func ValidDate(date string) bool {
	return validDate(date)
}

// ValidShootCode reports whether the value matches the fixed shoot-code format.
func ValidShootCode(code string) bool {
	return validShootCode(code)
}

// namedCaptures maps the pattern's capture-group names to submatch values.
func namedCaptures(pattern *regexp.Regexp, value string) (map[string]string, bool) {
	match := pattern.FindStringSubmatch(value)
	if match == nil {
		return nil, false
	}
	captures := make(map[string]string, len(match))
	for i, name := range pattern.SubexpNames() {
		if name != "" {
			captures[name] = match[i]
		}
	}
	return captures, true
}
