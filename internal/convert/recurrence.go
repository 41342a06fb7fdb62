package convert

import (
	"fmt"
	"regexp"
	"strings"
)

// Things describes repeats in prose ("every 2 weeks on monday"); Todoist
// parses its own recurring-date grammar. The patterns below cover the
// phrases Things actually produces, with coarse keyword fallbacks for
// anything else.
var (
	everyNDaysRe   = regexp.MustCompile(`every\s+(\d+)\s+days`)
	everyNWeeksRe  = regexp.MustCompile(`every\s+(\d+)\s+weeks`)
	everyNMonthsRe = regexp.MustCompile(`every\s+(\d+)\s+months`)
	everyNYearsRe  = regexp.MustCompile(`every\s+(\d+)\s+years`)
	monthDayRe     = regexp.MustCompile(`on the (\d+)(st|nd|rd|th)`)
)

var weekdays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// RecurrenceToTodoist converts a Things recurrence phrase into Todoist's
// recurring-date syntax. An empty phrase maps to an empty string; an
// unrecognizable phrase degrades to the nearest interval rather than being
// dropped, so the schedule survives import even if the detail does not.
func RecurrenceToTodoist(phrase string) string {
	if phrase == "" {
		return ""
	}

	r := strings.ToLower(phrase)

	// Daily
	if strings.Contains(r, "every day") {
		return "every day"
	}
	if strings.Contains(r, "every weekday") {
		return "every weekday"
	}
	if m := everyNDaysRe.FindStringSubmatch(r); m != nil {
		return fmt.Sprintf("every %s days", m[1])
	}

	// Weekly
	if strings.Contains(r, "every week") {
		if day := weekdayIn(r); day != "" {
			return fmt.Sprintf("every week on %s", capitalize(day))
		}
		return "every week"
	}
	if m := everyNWeeksRe.FindStringSubmatch(r); m != nil {
		if day := weekdayIn(r); day != "" {
			return fmt.Sprintf("every %s weeks on %s", m[1], capitalize(day))
		}
		return fmt.Sprintf("every %s weeks", m[1])
	}

	// Monthly
	if strings.Contains(r, "every month") {
		if m := monthDayRe.FindStringSubmatch(r); m != nil {
			return fmt.Sprintf("every month on the %s%s", m[1], m[2])
		}
		return "every month"
	}
	if m := everyNMonthsRe.FindStringSubmatch(r); m != nil {
		if d := monthDayRe.FindStringSubmatch(r); d != nil {
			return fmt.Sprintf("every %s months on the %s%s", m[1], d[1], d[2])
		}
		return fmt.Sprintf("every %s months", m[1])
	}

	// Yearly
	if strings.Contains(r, "every year") {
		return "every year"
	}
	if m := everyNYearsRe.FindStringSubmatch(r); m != nil {
		return fmt.Sprintf("every %s years", m[1])
	}

	// Keyword fallbacks
	switch {
	case strings.Contains(r, "day"):
		return "every day"
	case strings.Contains(r, "week"):
		return "every week"
	case strings.Contains(r, "month"):
		return "every month"
	case strings.Contains(r, "year"):
		return "every year"
	}

	return "every day"
}

func weekdayIn(s string) string {
	for _, day := range weekdays {
		if strings.Contains(s, day) {
			return day
		}
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
