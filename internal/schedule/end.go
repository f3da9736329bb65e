package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidEndSpec is returned when an end specification matches
// neither the HH:MM time grammar nor a non-negative integer count.
var ErrInvalidEndSpec = errors.New("end specification is neither a time nor a pomodoro count")

type endKind int

const (
	endAtTime endKind = iota
	endAtCount
)

// EndCondition says when plan generation stops: either at a clock time
// (inclusive) or after a target number of pomodoros.
type EndCondition struct {
	kind  endKind
	time  TimeOfDay
	count int
}

// EndAtTime returns a condition that stops once the next pomodoro
// would finish after t.
func EndAtTime(t TimeOfDay) EndCondition {
	return EndCondition{kind: endAtTime, time: t}
}

// EndAtCount returns a condition that stops after n pomodoros.
// n may be zero, which yields an empty plan.
func EndAtCount(n int) EndCondition {
	return EndCondition{kind: endAtCount, count: n}
}

// ParseEndSpec interprets s first as an HH:MM time, then as a
// non-negative pomodoro count. Anything else is ErrInvalidEndSpec.
func ParseEndSpec(s string) (EndCondition, error) {
	s = strings.TrimSpace(s)
	if t, err := ParseTimeOfDay(s); err == nil {
		return EndAtTime(t), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return EndCondition{}, fmt.Errorf("%w: %q", ErrInvalidEndSpec, s)
	}
	return EndAtCount(n), nil
}

// willContinue reports whether a pomodoro that would end at candidate
// (numbered candidateCount) still fits within the end condition. Both
// boundaries are inclusive.
func (e EndCondition) willContinue(candidate TimeOfDay, candidateCount int) bool {
	switch e.kind {
	case endAtCount:
		return candidateCount <= e.count
	default:
		return candidate.Minutes() <= e.time.Minutes()
	}
}

func (e EndCondition) String() string {
	if e.kind == endAtCount {
		return fmt.Sprintf("%d pomodoros", e.count)
	}
	return "until " + e.time.String()
}
