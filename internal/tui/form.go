package tui

// fieldID enumerates the form fields in display order.
type fieldID int

const (
	fieldStart fieldID = iota
	fieldEnd
	fieldPomodoro
	fieldShortBreak
	fieldLongBreak
	fieldGroupSize
	fieldShortLines
	fieldLongLines
	fieldStats

	fieldCount
)

func (f fieldID) isToggle() bool {
	switch f {
	case fieldShortLines, fieldLongLines, fieldStats:
		return true
	}
	return false
}

func (f fieldID) label() string {
	switch f {
	case fieldStart:
		return "Start time"
	case fieldEnd:
		return "End (HH:MM or count)"
	case fieldPomodoro:
		return "Pomodoro minutes"
	case fieldShortBreak:
		return "Short break minutes"
	case fieldLongBreak:
		return "Long break minutes"
	case fieldGroupSize:
		return "Pomodoros per group"
	case fieldShortLines:
		return "Show short breaks"
	case fieldLongLines:
		return "Show long breaks"
	case fieldStats:
		return "Show statistics"
	}
	return ""
}
