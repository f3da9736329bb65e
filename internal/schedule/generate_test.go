package schedule

import (
	"strings"
	"testing"
)

func at(h, m int) TimeOfDay {
	return TimeOfDay{Hour: h, Minute: m}
}

func TestGenerateCountEnd(t *testing.T) {
	settings := DefaultSettings()
	plan := Generate(at(9, 0), EndAtCount(5), settings)

	if plan.Pomodoros != 5 {
		t.Fatalf("Pomodoros = %d, want 5", plan.Pomodoros)
	}

	want := []Line{
		{at(9, 0), at(9, 25), "Pomodoro #1"},
		{at(9, 25), at(9, 50), "Pomodoro #2"},
		{at(9, 50), at(10, 15), "Pomodoro #3"},
		{at(10, 15), at(10, 40), "Pomodoro #4"},
		{at(10, 40), at(10, 55), LabelLongBreak},
		{at(10, 55), at(11, 20), "Pomodoro #5"},
	}
	if len(plan.Lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %+v", len(plan.Lines), len(want), plan.Lines)
	}
	for i, w := range want {
		if plan.Lines[i] != w {
			t.Errorf("line %d = %+v, want %+v", i, plan.Lines[i], w)
		}
	}

	if plan.TotalWorkMinutes != 125 {
		t.Errorf("TotalWorkMinutes = %d, want 125", plan.TotalWorkMinutes)
	}
	if plan.TotalRestMinutes != 15 {
		t.Errorf("TotalRestMinutes = %d, want 15", plan.TotalRestMinutes)
	}
}

func TestGenerateTimeEnd(t *testing.T) {
	settings := DefaultSettings()
	plan := Generate(at(9, 0), EndAtTime(at(9, 30)), settings)

	if plan.Pomodoros != 1 {
		t.Fatalf("Pomodoros = %d, want 1", plan.Pomodoros)
	}
	if len(plan.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(plan.Lines))
	}
	if got := plan.Lines[0]; got.Start != at(9, 0) || got.End != at(9, 25) {
		t.Errorf("line = %+v, want 09:00 - 09:25", got)
	}
}

func TestGenerateTimeEndInclusiveBoundary(t *testing.T) {
	// A pomodoro ending exactly at the end time still fits.
	settings := DefaultSettings()
	plan := Generate(at(9, 0), EndAtTime(at(9, 25)), settings)

	if plan.Pomodoros != 1 {
		t.Fatalf("Pomodoros = %d, want 1", plan.Pomodoros)
	}
}

func TestGenerateZeroCount(t *testing.T) {
	plan := Generate(at(9, 0), EndAtCount(0), DefaultSettings())

	if !plan.Empty() {
		t.Fatalf("plan not empty: %+v", plan)
	}
	if plan.Lines != nil {
		t.Errorf("Lines = %+v, want none", plan.Lines)
	}
	if plan.Markdown() != "" {
		t.Errorf("Markdown() = %q, want empty", plan.Markdown())
	}
}

func TestGenerateStartAfterEnd(t *testing.T) {
	plan := Generate(at(18, 0), EndAtTime(at(9, 0)), DefaultSettings())
	if !plan.Empty() {
		t.Fatalf("plan not empty: %+v", plan)
	}
}

func TestGenerateNeverEndsWithBreak(t *testing.T) {
	cases := []struct {
		name     string
		end      EndCondition
		settings func(*Settings)
	}{
		{"count with short breaks", EndAtCount(2), func(s *Settings) { s.IncludeShortBreaks = true }},
		{"count default", EndAtCount(7), func(s *Settings) {}},
		{"time with short breaks", EndAtTime(at(10, 0)), func(s *Settings) { s.IncludeShortBreaks = true }},
		{"time tight", EndAtTime(at(10, 40)), func(s *Settings) {}},
		{"time at group boundary", EndAtTime(at(10, 41)), func(s *Settings) {}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			settings := DefaultSettings()
			tc.settings(&settings)
			plan := Generate(at(9, 0), tc.end, settings)
			if plan.Empty() {
				t.Fatal("expected a non-empty plan")
			}
			last := plan.Lines[len(plan.Lines)-1]
			if last.Label == LabelShortBreak || last.Label == LabelLongBreak {
				t.Errorf("plan ends with %q: %+v", last.Label, plan.Lines)
			}
		})
	}
}

func TestGenerateShortBreaksIncluded(t *testing.T) {
	settings := DefaultSettings()
	settings.IncludeShortBreaks = true
	plan := Generate(at(9, 0), EndAtCount(2), settings)

	want := []Line{
		{at(9, 0), at(9, 25), "Pomodoro #1"},
		{at(9, 25), at(9, 30), LabelShortBreak},
		{at(9, 30), at(9, 55), "Pomodoro #2"},
	}
	if len(plan.Lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %+v", len(plan.Lines), len(want), plan.Lines)
	}
	for i, w := range want {
		if plan.Lines[i] != w {
			t.Errorf("line %d = %+v, want %+v", i, plan.Lines[i], w)
		}
	}
	if plan.TotalRestMinutes != 5 {
		t.Errorf("TotalRestMinutes = %d, want 5", plan.TotalRestMinutes)
	}
}

func TestGenerateExcludedBreaksTakeNoTime(t *testing.T) {
	// With short break lines off, pomodoros run back to back and the
	// skipped breaks contribute no rest time.
	settings := DefaultSettings()
	settings.IncludeLongBreaks = false
	plan := Generate(at(9, 0), EndAtCount(3), settings)

	want := []Line{
		{at(9, 0), at(9, 25), "Pomodoro #1"},
		{at(9, 25), at(9, 50), "Pomodoro #2"},
		{at(9, 50), at(10, 15), "Pomodoro #3"},
	}
	for i, w := range want {
		if plan.Lines[i] != w {
			t.Errorf("line %d = %+v, want %+v", i, plan.Lines[i], w)
		}
	}
	if plan.TotalRestMinutes != 0 {
		t.Errorf("TotalRestMinutes = %d, want 0", plan.TotalRestMinutes)
	}
}

func TestGenerateGroupResetsWithoutLongBreak(t *testing.T) {
	// The group counter resets at every group boundary even when long
	// break lines are excluded, so short breaks keep their cadence.
	settings := DefaultSettings()
	settings.IncludeShortBreaks = true
	settings.IncludeLongBreaks = false
	settings.GroupSize = 2
	plan := Generate(at(9, 0), EndAtCount(5), settings)

	var shortBreaks int
	for _, line := range plan.Lines {
		if line.Label == LabelShortBreak {
			shortBreaks++
		}
	}
	// Short breaks follow pomodoros 1 and 3; 5 ends a group and 2, 4
	// sit on group boundaries with long breaks off.
	if shortBreaks != 2 {
		t.Errorf("short breaks = %d, want 2: %+v", shortBreaks, plan.Lines)
	}
	if plan.Pomodoros != 5 {
		t.Errorf("Pomodoros = %d, want 5", plan.Pomodoros)
	}
}

func TestGeneratePomodoroCountMatchesLines(t *testing.T) {
	settings := DefaultSettings()
	settings.IncludeShortBreaks = true
	for _, end := range []EndCondition{
		EndAtCount(0), EndAtCount(1), EndAtCount(9),
		EndAtTime(at(9, 10)), EndAtTime(at(12, 0)), EndAtTime(at(23, 59)),
	} {
		plan := Generate(at(9, 0), end, settings)
		var work int
		for _, line := range plan.Lines {
			if strings.HasPrefix(line.Label, "Pomodoro #") {
				work++
			}
		}
		if work != plan.Pomodoros {
			t.Errorf("end %v: %d pomodoro lines, Pomodoros = %d", end, work, plan.Pomodoros)
		}
	}
}

func TestGenerateLineDurations(t *testing.T) {
	settings := DefaultSettings()
	settings.IncludeShortBreaks = true
	plan := Generate(at(8, 30), EndAtCount(6), settings)

	for i, line := range plan.Lines {
		var minutes int
		switch line.Label {
		case LabelShortBreak:
			minutes = settings.ShortBreakMinutes
		case LabelLongBreak:
			minutes = settings.LongBreakMinutes
		default:
			minutes = settings.PomodoroMinutes
		}
		if got := line.Start.AddMinutes(minutes); got != line.End {
			t.Errorf("line %d (%s): end = %v, want %v", i, line.Label, line.End, got)
		}
	}
}

func TestGenerateNonPositivePomodoro(t *testing.T) {
	settings := DefaultSettings()
	settings.PomodoroMinutes = 0
	plan := Generate(at(9, 0), EndAtCount(5), settings)
	if !plan.Empty() {
		t.Fatalf("plan not empty: %+v", plan)
	}
}
