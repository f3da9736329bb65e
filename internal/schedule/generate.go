package schedule

import "strconv"

// Settings control interval lengths, grouping, and which parts of the
// plan are rendered. Callers own the value; Generate never mutates it.
type Settings struct {
	PomodoroMinutes   int
	ShortBreakMinutes int
	LongBreakMinutes  int
	GroupSize         int

	IncludeStats       bool
	IncludeShortBreaks bool
	IncludeLongBreaks  bool
}

// DefaultSettings returns the standard pomodoro configuration.
func DefaultSettings() Settings {
	return Settings{
		PomodoroMinutes:   25,
		ShortBreakMinutes: 5,
		LongBreakMinutes:  15,
		GroupSize:         4,
		IncludeStats:      true,
		IncludeLongBreaks: true,
	}
}

// Labels used on plan lines.
const (
	LabelShortBreak = "Short Break"
	LabelLongBreak  = "Long Break"
)

// Line is one scheduled interval.
type Line struct {
	Start TimeOfDay
	End   TimeOfDay
	Label string
}

// Plan is the generated schedule plus its summary totals.
type Plan struct {
	Lines            []Line
	Pomodoros        int
	TotalWorkMinutes int
	TotalRestMinutes int

	settings Settings
}

// Empty reports whether no work interval fit the end condition.
func (p Plan) Empty() bool {
	return p.Pomodoros == 0
}

// Generate builds a plan from start until end is reached. It is a pure
// function: same inputs, same plan.
//
// Each loop turn schedules one pomodoro, then the break that follows
// it. Before taking a break it re-checks that another pomodoro would
// still fit afterwards, so a plan never trails off into a break. The
// include toggles gate a break entirely: an excluded break neither
// appears in the output nor advances the clock nor counts as rest.
func Generate(start TimeOfDay, end EndCondition, settings Settings) Plan {
	plan := Plan{settings: settings}
	if settings.PomodoroMinutes <= 0 {
		return plan
	}

	current := start
	group := 0
	number := 1 // 1-based number of the next pomodoro
	rest := 0

	for end.willContinue(current.AddMinutes(settings.PomodoroMinutes), number) {
		next := current.AddMinutes(settings.PomodoroMinutes)
		plan.Lines = append(plan.Lines, Line{
			Start: current,
			End:   next,
			Label: pomodoroLabel(number),
		})
		current = next
		number++
		group++

		if group == settings.GroupSize {
			// Group boundary passed whether or not the break is taken.
			group = 0
			if settings.IncludeLongBreaks {
				after := current.AddMinutes(settings.LongBreakMinutes)
				if !end.willContinue(after.AddMinutes(settings.PomodoroMinutes), number) {
					break
				}
				plan.Lines = append(plan.Lines, Line{Start: current, End: after, Label: LabelLongBreak})
				current = after
				rest += settings.LongBreakMinutes
			}
		} else if settings.IncludeShortBreaks {
			after := current.AddMinutes(settings.ShortBreakMinutes)
			if !end.willContinue(after.AddMinutes(settings.PomodoroMinutes), number) {
				break
			}
			plan.Lines = append(plan.Lines, Line{Start: current, End: after, Label: LabelShortBreak})
			current = after
			rest += settings.ShortBreakMinutes
		}
	}

	plan.Pomodoros = number - 1
	if plan.Pomodoros == 0 {
		plan.Lines = nil
		return plan
	}
	plan.TotalWorkMinutes = settings.PomodoroMinutes * plan.Pomodoros
	plan.TotalRestMinutes = rest
	return plan
}

func pomodoroLabel(n int) string {
	return "Pomodoro #" + strconv.Itoa(n)
}
