package export

import (
	"fmt"
	"io"
	"time"

	ical "github.com/emersion/go-ical"

	"github.com/christopherklint97/pomoplan/internal/schedule"
)

// WriteICal encodes the plan as an iCalendar document, one VEVENT per
// plan line. Lines are anchored to the given date in local time; a
// line whose start is earlier in the day than the plan start is taken
// to have wrapped past midnight and lands on the following day.
func WriteICal(w io.Writer, plan schedule.Plan, date time.Time) error {
	if plan.Empty() {
		return fmt.Errorf("nothing to export: plan is empty")
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//pomoplan//pomoplan//EN")

	now := time.Now()
	planStart := plan.Lines[0].Start

	for i, line := range plan.Lines {
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, fmt.Sprintf("pomoplan-%s-%d", date.Format("20060102"), i))
		event.Props.SetDateTime(ical.PropDateTimeStamp, now)
		event.Props.SetText(ical.PropSummary, line.Label)
		event.Props.SetDateTime(ical.PropDateTimeStart, onDate(date, line.Start, planStart))
		event.Props.SetDateTime(ical.PropDateTimeEnd, onDate(date, line.End, planStart))
		cal.Children = append(cal.Children, event.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encoding calendar: %w", err)
	}
	return nil
}

func onDate(date time.Time, t, planStart schedule.TimeOfDay) time.Time {
	day := date
	if t.Before(planStart) {
		day = day.AddDate(0, 0, 1)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, day.Location())
}
