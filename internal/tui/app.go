package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/christopherklint97/pomoplan/internal/config"
	"github.com/christopherklint97/pomoplan/internal/schedule"
	"github.com/christopherklint97/pomoplan/internal/store"
)

// Result reports what happened when the form closed.
type Result struct {
	Delivered bool // plan was copied or saved at least once
	Markdown  string
}

// App is the interactive plan form. Every committed field change
// regenerates the plan and refreshes the preview; the generator itself
// holds no state between calls.
type App struct {
	startText string // committed, always a valid HH:MM
	endText   string // committed raw text; may be an invalid spec
	settings  schedule.Settings

	plan      schedule.Plan
	planErr   string // end-spec notice, shown in the preview pane
	status    string
	cursor    fieldID
	editing   bool
	input     textinput.Model
	delivered bool

	db *store.DB

	// Injected for testing.
	copyText     func(string) error
	saveSettings func(config.IntervalConfig, config.OutputConfig) error
}

func NewApp(start schedule.TimeOfDay, endSpec string, settings schedule.Settings, db *store.DB) *App {
	ti := textinput.New()
	ti.CharLimit = 10
	ti.Width = 12

	a := &App{
		startText:    start.String(),
		endText:      endSpec,
		settings:     settings,
		input:        ti,
		db:           db,
		copyText:     clipboard.WriteAll,
		saveSettings: config.SaveIntervals,
	}
	a.regenerate()
	return a
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// regenerate recomputes the plan from the committed field values. An
// invalid end spec degrades to an empty plan with a notice instead of
// aborting.
func (a *App) regenerate() {
	start, err := schedule.ParseTimeOfDay(a.startText)
	if err != nil {
		// startText is only ever committed after validation.
		a.planErr = err.Error()
		a.plan = schedule.Plan{}
		return
	}

	end, err := schedule.ParseEndSpec(a.endText)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidEndSpec) {
			a.planErr = fmt.Sprintf("%q is neither a time nor a count — plan is empty", a.endText)
		} else {
			a.planErr = err.Error()
		}
		end = schedule.EndAtCount(0)
	} else {
		a.planErr = ""
	}

	a.plan = schedule.Generate(start, end, a.settings)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if a.editing {
			var cmd tea.Cmd
			a.input, cmd = a.input.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	if keyMsg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.editing {
		return a.updateEditing(keyMsg)
	}
	return a.updateNavigating(keyMsg)
}

func (a *App) updateNavigating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j", "tab":
		if a.cursor < fieldCount-1 {
			a.cursor++
		}
	case " ":
		if a.cursor.isToggle() {
			a.toggle(a.cursor)
			a.regenerate()
		}
	case "enter":
		if a.cursor.isToggle() {
			a.toggle(a.cursor)
			a.regenerate()
			return a, nil
		}
		a.editing = true
		a.status = ""
		a.input.SetValue(a.currentValue(a.cursor))
		a.input.CursorEnd()
		return a, a.input.Focus()
	case "c":
		a.deliver("copy")
	case "s":
		a.deliver("save")
	}
	return a, nil
}

func (a *App) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.commitEdit(a.cursor, a.input.Value())
		a.editing = false
		a.input.Blur()
		return a, nil
	case "esc":
		a.editing = false
		a.input.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) toggle(f fieldID) {
	switch f {
	case fieldShortLines:
		a.settings.IncludeShortBreaks = !a.settings.IncludeShortBreaks
	case fieldLongLines:
		a.settings.IncludeLongBreaks = !a.settings.IncludeLongBreaks
	case fieldStats:
		a.settings.IncludeStats = !a.settings.IncludeStats
	}
}

func (a *App) currentValue(f fieldID) string {
	switch f {
	case fieldStart:
		return a.startText
	case fieldEnd:
		return a.endText
	case fieldPomodoro:
		return strconv.Itoa(a.settings.PomodoroMinutes)
	case fieldShortBreak:
		return strconv.Itoa(a.settings.ShortBreakMinutes)
	case fieldLongBreak:
		return strconv.Itoa(a.settings.LongBreakMinutes)
	case fieldGroupSize:
		return strconv.Itoa(a.settings.GroupSize)
	}
	return ""
}

// commitEdit promotes edited text into the committed form state. A
// value that does not parse is discarded: the previous value stays and
// no regeneration happens. The end spec is the exception — it commits
// as raw text and regeneration reports the notice (generation still
// proceeds, yielding an empty plan).
func (a *App) commitEdit(f fieldID, text string) {
	text = strings.TrimSpace(text)

	switch f {
	case fieldStart:
		if _, err := schedule.ParseTimeOfDay(text); err != nil {
			a.status = fmt.Sprintf("invalid start time %q — kept %s", text, a.startText)
			return
		}
		a.startText = text
	case fieldEnd:
		a.endText = text
	case fieldPomodoro:
		n, err := strconv.Atoi(text)
		if err != nil || n <= 0 {
			a.status = fmt.Sprintf("invalid value %q — kept %d", text, a.settings.PomodoroMinutes)
			return
		}
		a.settings.PomodoroMinutes = n
	case fieldShortBreak:
		n, err := strconv.Atoi(text)
		if err != nil || n < 0 {
			a.status = fmt.Sprintf("invalid value %q — kept %d", text, a.settings.ShortBreakMinutes)
			return
		}
		a.settings.ShortBreakMinutes = n
	case fieldLongBreak:
		n, err := strconv.Atoi(text)
		if err != nil || n < 0 {
			a.status = fmt.Sprintf("invalid value %q — kept %d", text, a.settings.LongBreakMinutes)
			return
		}
		a.settings.LongBreakMinutes = n
	case fieldGroupSize:
		n, err := strconv.Atoi(text)
		if err != nil || n <= 0 {
			a.status = fmt.Sprintf("invalid value %q — kept %d", text, a.settings.GroupSize)
			return
		}
		a.settings.GroupSize = n
	}

	a.regenerate()
}

// deliver copies or saves the current plan. An empty plan is refused
// with a notice and nothing destructive happens.
func (a *App) deliver(action string) {
	if a.plan.Empty() {
		a.status = "no plan to " + action
		return
	}

	md := a.plan.Markdown()

	switch action {
	case "copy":
		if err := a.copyText(md); err != nil {
			a.status = fmt.Sprintf("copy failed: %v", err)
			return
		}
		a.status = "plan copied to clipboard"
	case "save":
		if a.db == nil {
			a.status = "history unavailable"
			return
		}
		if _, err := a.db.InsertPlan(&store.PlanRecord{
			StartTime:         a.startText,
			EndSpec:           a.endText,
			PomodoroMinutes:   a.settings.PomodoroMinutes,
			ShortBreakMinutes: a.settings.ShortBreakMinutes,
			LongBreakMinutes:  a.settings.LongBreakMinutes,
			GroupSize:         a.settings.GroupSize,
			Pomodoros:         a.plan.Pomodoros,
			WorkMinutes:       a.plan.TotalWorkMinutes,
			RestMinutes:       a.plan.TotalRestMinutes,
			Markdown:          md,
		}); err != nil {
			a.status = fmt.Sprintf("save failed: %v", err)
			return
		}
		a.status = "plan saved to history"
	}

	a.delivered = true

	// Settings persist at the moment a plan is delivered.
	if err := a.saveSettings(
		config.IntervalConfig{
			PomodoroMinutes:   a.settings.PomodoroMinutes,
			ShortBreakMinutes: a.settings.ShortBreakMinutes,
			LongBreakMinutes:  a.settings.LongBreakMinutes,
			GroupSize:         a.settings.GroupSize,
		},
		config.OutputConfig{
			IncludeStats:       a.settings.IncludeStats,
			IncludeShortBreaks: a.settings.IncludeShortBreaks,
			IncludeLongBreaks:  a.settings.IncludeLongBreaks,
		},
	); err != nil {
		a.status += fmt.Sprintf(" (settings not saved: %v)", err)
	}
}

func (a *App) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("pomoplan — Plan Builder"))
	sb.WriteString("\n")

	for f := fieldID(0); f < fieldCount; f++ {
		prefix := "  "
		if f == a.cursor {
			prefix = "> "
		}

		var value string
		if f.isToggle() {
			value = checkbox(a.toggleValue(f))
		} else if a.editing && f == a.cursor {
			value = a.input.View()
		} else {
			value = a.currentValue(f)
		}

		line := fmt.Sprintf("%s%-22s %s", prefix, f.label(), value)
		if f == a.cursor && !a.editing {
			line = highlightStyle.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(a.previewView())

	if a.status != "" {
		sb.WriteString("\n")
		if strings.HasPrefix(a.status, "invalid") || strings.HasPrefix(a.status, "no plan") {
			sb.WriteString(errorStyle.Render(a.status))
		} else {
			sb.WriteString(successStyle.Render(a.status))
		}
	}

	sb.WriteString("\n")
	if a.editing {
		sb.WriteString(helpStyle.Render("Enter: apply • Esc: cancel"))
	} else {
		sb.WriteString(helpStyle.Render("Enter: edit • Space: toggle • j/k: move • c: copy • s: save • q: quit"))
	}

	return sb.String()
}

func (a *App) previewView() string {
	if a.planErr != "" {
		return boxStyle.Render(errorStyle.Render(a.planErr))
	}
	if a.plan.Empty() {
		return boxStyle.Render(dimStyle.Render("No pomodoros fit — nothing to plan."))
	}
	return boxStyle.Render(a.plan.Markdown())
}

func (a *App) toggleValue(f fieldID) bool {
	switch f {
	case fieldShortLines:
		return a.settings.IncludeShortBreaks
	case fieldLongLines:
		return a.settings.IncludeLongBreaks
	case fieldStats:
		return a.settings.IncludeStats
	}
	return false
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

// GetResult returns what the session produced once the program exits.
func (a *App) GetResult() *Result {
	return &Result{
		Delivered: a.delivered,
		Markdown:  a.plan.Markdown(),
	}
}

// Plan returns the currently previewed plan.
func (a *App) Plan() schedule.Plan {
	return a.plan
}

// Settings returns the committed settings.
func (a *App) Settings() schedule.Settings {
	return a.settings
}
