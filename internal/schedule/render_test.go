package schedule

import (
	"errors"
	"strings"
	"testing"
)

func TestMarkdown(t *testing.T) {
	plan := Generate(at(9, 0), EndAtCount(5), DefaultSettings())

	want := strings.Join([]string{
		"- [ ] 09:00 - 09:25 Pomodoro #1",
		"- [ ] 09:25 - 09:50 Pomodoro #2",
		"- [ ] 09:50 - 10:15 Pomodoro #3",
		"- [ ] 10:15 - 10:40 Pomodoro #4",
		"- [ ] 10:40 - 10:55 Long Break",
		"- [ ] 10:55 - 11:20 Pomodoro #5",
		"",
		"  Total pomodoros: 5",
		"  Total work time: 2 hours, 5 minutes",
		"  Total rest time: 15 minutes",
	}, "\n")

	if got := plan.Markdown(); got != want {
		t.Errorf("Markdown() =\n%s\nwant:\n%s", got, want)
	}
}

func TestMarkdownWithoutStats(t *testing.T) {
	settings := DefaultSettings()
	settings.IncludeStats = false
	plan := Generate(at(9, 0), EndAtCount(1), settings)

	want := "- [ ] 09:00 - 09:25 Pomodoro #1"
	if got := plan.Markdown(); got != want {
		t.Errorf("Markdown() = %q, want %q", got, want)
	}
}

func TestFormatMinutes(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "0 minutes"},
		{15, "15 minutes"},
		{59, "59 minutes"},
		{60, "1 hours"},
		{65, "1 hours, 5 minutes"},
		{125, "2 hours, 5 minutes"},
		{180, "3 hours"},
	}

	for _, tc := range cases {
		if got := formatMinutes(tc.minutes); got != tc.want {
			t.Errorf("formatMinutes(%d) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}

func TestInvalidEndSpecError(t *testing.T) {
	_, err := ParseEndSpec("soon")
	if !errors.Is(err, ErrInvalidEndSpec) {
		t.Fatalf("err = %v, want ErrInvalidEndSpec", err)
	}
}
