package store

import (
	"fmt"
	"time"
)

// PlanRecord is one generated plan kept in history.
type PlanRecord struct {
	ID                int
	StartTime         string
	EndSpec           string
	PomodoroMinutes   int
	ShortBreakMinutes int
	LongBreakMinutes  int
	GroupSize         int
	Pomodoros         int
	WorkMinutes       int
	RestMinutes       int
	Markdown          string
	CreatedAt         time.Time
}

func (db *DB) InsertPlan(p *PlanRecord) (int64, error) {
	result, err := db.Exec(
		`INSERT INTO plans (start_time, end_spec, pomodoro_minutes, short_break_minutes, long_break_minutes, group_size, pomodoros, work_minutes, rest_minutes, markdown)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.StartTime, p.EndSpec,
		p.PomodoroMinutes, p.ShortBreakMinutes, p.LongBreakMinutes, p.GroupSize,
		p.Pomodoros, p.WorkMinutes, p.RestMinutes, p.Markdown,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting plan: %w", err)
	}
	return result.LastInsertId()
}

func (db *DB) GetRecentPlans(limit int) ([]PlanRecord, error) {
	return db.queryPlans(
		`SELECT id, start_time, end_spec, pomodoro_minutes, short_break_minutes, long_break_minutes, group_size, pomodoros, work_minutes, rest_minutes, markdown, created_at
		 FROM plans
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

func (db *DB) GetLastPlan() (*PlanRecord, error) {
	plans, err := db.GetRecentPlans(1)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, nil
	}
	return &plans[0], nil
}

func (db *DB) queryPlans(query string, args ...interface{}) ([]PlanRecord, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying plans: %w", err)
	}
	defer rows.Close()

	var plans []PlanRecord
	for rows.Next() {
		var p PlanRecord
		var createdStr string

		if err := rows.Scan(
			&p.ID, &p.StartTime, &p.EndSpec,
			&p.PomodoroMinutes, &p.ShortBreakMinutes, &p.LongBreakMinutes, &p.GroupSize,
			&p.Pomodoros, &p.WorkMinutes, &p.RestMinutes, &p.Markdown, &createdStr,
		); err != nil {
			return nil, fmt.Errorf("scanning plan: %w", err)
		}

		if t, err := time.Parse("2006-01-02 15:04:05", createdStr); err == nil {
			p.CreatedAt = t
		} else if t, err := time.Parse(time.RFC3339, createdStr); err == nil {
			p.CreatedAt = t
		}

		plans = append(plans, p)
	}

	return plans, rows.Err()
}
