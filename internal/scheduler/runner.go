package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/christopherklint97/pomoplan/internal/config"
	"github.com/christopherklint97/pomoplan/internal/notify"
	"github.com/christopherklint97/pomoplan/internal/schedule"
	"github.com/christopherklint97/pomoplan/internal/store"
)

// Runner follows a generated plan in real time, announcing each
// interval as its start time arrives.
type Runner struct {
	plan     schedule.Plan
	db       *store.DB
	notifyOn bool
	anchor   time.Time
}

func New(plan schedule.Plan, db *store.DB, notifyOn bool) *Runner {
	return &Runner{
		plan:     plan,
		db:       db,
		notifyOn: notifyOn,
		anchor:   time.Now(),
	}
}

// Run blocks until the plan completes or ctx is cancelled. Intervals
// whose start time has already passed are skipped.
func (r *Runner) Run(ctx context.Context) error {
	if r.plan.Empty() {
		return fmt.Errorf("nothing to run: plan is empty")
	}

	if err := r.writePID(); err != nil {
		return fmt.Errorf("writing PID file: %w", err)
	}
	defer r.removePID()

	if r.db != nil {
		r.db.SetState("last_run_started", r.anchor.Format(time.RFC3339))
	}

	var lineEnd time.Time
	for _, line := range r.plan.Lines {
		lineStart := r.onAnchorDate(line.Start)
		lineEnd = r.onAnchorDate(line.End)

		if !time.Now().Before(lineEnd) {
			continue
		}

		if wait := time.Until(lineStart); wait > 0 {
			fmt.Printf("Next: %s at %s\n", line.Label, line.Start)
			select {
			case <-ctx.Done():
				fmt.Println("\nPlan stopped.")
				return nil
			case <-time.After(wait):
			}
		}

		r.announce(line)
	}

	// Wait out the final interval before declaring the plan done.
	if wait := time.Until(lineEnd); wait > 0 {
		select {
		case <-ctx.Done():
			fmt.Println("\nPlan stopped.")
			return nil
		case <-time.After(wait):
		}
	}

	fmt.Println("Plan complete.")
	if r.notifyOn {
		notify.Send("pomoplan", "Plan complete — well done!")
	}
	return nil
}

func (r *Runner) announce(line schedule.Line) {
	fmt.Printf("%s  %s - %s  %s\n", time.Now().Format("15:04"), line.Start, line.End, line.Label)
	if !r.notifyOn {
		return
	}
	switch line.Label {
	case schedule.LabelShortBreak, schedule.LabelLongBreak:
		notify.Send("pomoplan", fmt.Sprintf("%s until %s", line.Label, line.End))
	default:
		notify.Send("pomoplan", fmt.Sprintf("%s — focus until %s", line.Label, line.End))
	}
}

// onAnchorDate maps a wall-clock time onto the runner's start date,
// rolling onto the next day once the plan wraps past midnight.
func (r *Runner) onAnchorDate(t schedule.TimeOfDay) time.Time {
	day := r.anchor
	if t.Before(r.plan.Lines[0].Start) {
		day = day.AddDate(0, 0, 1)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, day.Location())
}

func pidPath() (string, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "pomoplan.pid"), nil
}

func (r *Runner) writePID() error {
	if err := config.EnsureConfigDir(); err != nil {
		return err
	}
	path, err := pidPath()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0644)
}

func (r *Runner) removePID() {
	if path, err := pidPath(); err == nil {
		os.Remove(path)
	}
}

func ReadPID() (int, error) {
	path, err := pidPath()
	if err != nil {
		return 0, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("no running plan found")
	}

	pid, err := strconv.Atoi(string(data))
	if err != nil {
		return 0, fmt.Errorf("invalid PID file")
	}

	return pid, nil
}
