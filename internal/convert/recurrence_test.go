package convert

import "testing"

func TestRecurrenceToTodoist(t *testing.T) {
	tests := []struct {
		name   string
		phrase string
		want   string
	}{
		{"empty", "", ""},
		{"daily", "every day", "every day"},
		{"weekday", "every weekday", "every weekday"},
		{"every n days", "every 3 days", "every 3 days"},
		{"weekly", "every week", "every week"},
		{"weekly on day", "every week on monday", "every week on Monday"},
		{"every n weeks", "every 2 weeks", "every 2 weeks"},
		{"every n weeks on day", "every 2 weeks on friday", "every 2 weeks on Friday"},
		{"monthly", "every month", "every month"},
		{"monthly on nth", "every month on the 15th", "every month on the 15th"},
		{"every n months", "every 3 months", "every 3 months"},
		{"every n months on nth", "every 6 months on the 1st", "every 6 months on the 1st"},
		{"yearly", "every year", "every year"},
		{"every n years", "every 2 years", "every 2 years"},
		{"case insensitive", "Every Week on Monday", "every week on Monday"},
		{"day fallback", "each day after completion", "every day"},
		{"week fallback", "repeats weekly somehow", "every week"},
		{"month fallback", "monthly-ish", "every month"},
		{"year fallback", "once a year", "every year"},
		{"unknown falls back to daily", "whenever", "every day"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RecurrenceToTodoist(tt.phrase); got != tt.want {
				t.Errorf("RecurrenceToTodoist(%q) = %q, want %q", tt.phrase, got, tt.want)
			}
		})
	}
}
