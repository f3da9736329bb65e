package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"os/signal"
	"syscall"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	naturaldate "github.com/tj/go-naturaldate"

	"github.com/christopherklint97/pomoplan/internal/config"
	"github.com/christopherklint97/pomoplan/internal/export"
	"github.com/christopherklint97/pomoplan/internal/notify"
	"github.com/christopherklint97/pomoplan/internal/schedule"
	"github.com/christopherklint97/pomoplan/internal/scheduler"
	"github.com/christopherklint97/pomoplan/internal/store"
	"github.com/christopherklint97/pomoplan/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "pomoplan",
	Short: "Pomodoro schedule planner",
	Long:  "pomoplan turns a start time and an end time (or pomodoro count) into a time-blocked markdown checklist, with breaks placed the pomodoro way.",
}

var generateCmd = &cobra.Command{
	Use:   "generate <end>",
	Short: "Generate a plan and print it",
	Long:  "Generate a plan ending at a clock time (HH:MM) or after a pomodoro count, and print it as a markdown checklist.",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

var planCmd = &cobra.Command{
	Use:   "plan [end]",
	Short: "Build a plan interactively",
	RunE:  runPlan,
}

var runCmd = &cobra.Command{
	Use:   "run <end>",
	Short: "Generate a plan and follow it with notifications",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop a running plan",
	RunE:  runStop,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently saved plans",
	RunE:  runHistory,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Open config file in your editor",
	RunE:  runConfig,
}

func init() {
	for _, cmd := range []*cobra.Command{generateCmd, planCmd, runCmd} {
		cmd.Flags().String("start", "", "Start time (HH:MM or natural language, default now)")
		cmd.Flags().Int("pomodoro", 0, "Pomodoro length in minutes")
		cmd.Flags().Int("short-break", -1, "Short break length in minutes")
		cmd.Flags().Int("long-break", -1, "Long break length in minutes")
		cmd.Flags().Int("group", 0, "Pomodoros per group before a long break")
		cmd.Flags().Bool("with-short-breaks", false, "Schedule short breaks between pomodoros")
		cmd.Flags().Bool("no-long-breaks", false, "Skip long breaks between groups")
		cmd.Flags().Bool("no-stats", false, "Omit the statistics block")
	}
	generateCmd.Flags().Bool("copy", false, "Copy the plan to the clipboard")
	generateCmd.Flags().Bool("save", false, "Save the plan to history")
	generateCmd.Flags().String("ical", "", "Write the plan to an iCalendar file")
	historyCmd.Flags().Int("limit", 10, "Number of plans to show")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// settingsFromFlags layers flag overrides over the configured settings.
func settingsFromFlags(cmd *cobra.Command, cfg *config.Config) schedule.Settings {
	settings := cfg.Settings()

	if n, _ := cmd.Flags().GetInt("pomodoro"); n > 0 {
		settings.PomodoroMinutes = n
	}
	if n, _ := cmd.Flags().GetInt("short-break"); n >= 0 {
		settings.ShortBreakMinutes = n
	}
	if n, _ := cmd.Flags().GetInt("long-break"); n >= 0 {
		settings.LongBreakMinutes = n
	}
	if n, _ := cmd.Flags().GetInt("group"); n > 0 {
		settings.GroupSize = n
	}
	if on, _ := cmd.Flags().GetBool("with-short-breaks"); on {
		settings.IncludeShortBreaks = true
	}
	if off, _ := cmd.Flags().GetBool("no-long-breaks"); off {
		settings.IncludeLongBreaks = false
	}
	if off, _ := cmd.Flags().GetBool("no-stats"); off {
		settings.IncludeStats = false
	}

	return settings
}

// parseStart resolves the --start flag: empty means now, then HH:MM,
// then natural language ("in 20 minutes", "9am").
func parseStart(s string) (schedule.TimeOfDay, error) {
	now := time.Now()
	if s == "" {
		return schedule.TimeOfDay{Hour: now.Hour(), Minute: now.Minute()}, nil
	}
	if t, err := schedule.ParseTimeOfDay(s); err == nil {
		return t, nil
	}
	t, err := naturaldate.Parse(s, now, naturaldate.WithDirection(naturaldate.Future))
	if err != nil {
		return schedule.TimeOfDay{}, fmt.Errorf("invalid start time %q", s)
	}
	return schedule.TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// buildPlan parses the start and end inputs and generates the plan.
// An invalid end spec is recovered as an empty plan with a notice on
// stderr, not an error.
func buildPlan(cmd *cobra.Command, endSpec string) (schedule.Plan, schedule.Settings, schedule.TimeOfDay, error) {
	cfg, err := config.Load()
	if err != nil {
		return schedule.Plan{}, schedule.Settings{}, schedule.TimeOfDay{}, fmt.Errorf("loading config: %w", err)
	}
	settings := settingsFromFlags(cmd, cfg)

	startFlag, _ := cmd.Flags().GetString("start")
	start, err := parseStart(startFlag)
	if err != nil {
		return schedule.Plan{}, schedule.Settings{}, schedule.TimeOfDay{}, err
	}

	end, err := schedule.ParseEndSpec(endSpec)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidEndSpec) {
			fmt.Fprintf(os.Stderr, "Warning: %q is neither a time nor a count; the plan is empty.\n", endSpec)
			end = schedule.EndAtCount(0)
		} else {
			return schedule.Plan{}, schedule.Settings{}, schedule.TimeOfDay{}, err
		}
	}

	return schedule.Generate(start, end, settings), settings, start, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	plan, settings, start, err := buildPlan(cmd, args[0])
	if err != nil {
		return err
	}

	if plan.Empty() {
		fmt.Fprintln(os.Stderr, "No pomodoros fit the given window.")
		return nil
	}

	md := plan.Markdown()
	fmt.Println(md)

	if copyFlag, _ := cmd.Flags().GetBool("copy"); copyFlag {
		if err := clipboard.WriteAll(md); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Copied to clipboard.")
	}

	if icalPath, _ := cmd.Flags().GetString("ical"); icalPath != "" {
		f, err := os.Create(icalPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", icalPath, err)
		}
		defer f.Close()
		if err := export.WriteICal(f, plan, time.Now()); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s.\n", icalPath)
	}

	if saveFlag, _ := cmd.Flags().GetBool("save"); saveFlag {
		db, err := store.Open()
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		if _, err := db.InsertPlan(&store.PlanRecord{
			StartTime:         start.String(),
			EndSpec:           args[0],
			PomodoroMinutes:   settings.PomodoroMinutes,
			ShortBreakMinutes: settings.ShortBreakMinutes,
			LongBreakMinutes:  settings.LongBreakMinutes,
			GroupSize:         settings.GroupSize,
			Pomodoros:         plan.Pomodoros,
			WorkMinutes:       plan.TotalWorkMinutes,
			RestMinutes:       plan.TotalRestMinutes,
			Markdown:          md,
		}); err != nil {
			return fmt.Errorf("saving plan: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Saved to history.")
	}

	// The delivered settings become the new defaults.
	if copyFlag, _ := cmd.Flags().GetBool("copy"); copyFlag {
		saveSettings(settings)
	} else if saveFlag, _ := cmd.Flags().GetBool("save"); saveFlag {
		saveSettings(settings)
	}

	return nil
}

func saveSettings(settings schedule.Settings) {
	err := config.SaveIntervals(
		config.IntervalConfig{
			PomodoroMinutes:   settings.PomodoroMinutes,
			ShortBreakMinutes: settings.ShortBreakMinutes,
			LongBreakMinutes:  settings.LongBreakMinutes,
			GroupSize:         settings.GroupSize,
		},
		config.OutputConfig{
			IncludeStats:       settings.IncludeStats,
			IncludeShortBreaks: settings.IncludeShortBreaks,
			IncludeLongBreaks:  settings.IncludeLongBreaks,
		},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: settings not saved: %v\n", err)
	}
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	settings := settingsFromFlags(cmd, cfg)

	startFlag, _ := cmd.Flags().GetString("start")
	start, err := parseStart(startFlag)
	if err != nil {
		return err
	}

	endSpec := "4"
	if len(args) > 0 {
		endSpec = args[0]
	}

	db, err := store.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: history unavailable: %v\n", err)
		db = nil
	} else {
		defer db.Close()
	}

	app := tui.NewApp(start, endSpec, settings, db)
	p := tea.NewProgram(app)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	result := app.GetResult()
	if result != nil && !result.Delivered {
		fmt.Println("No plan delivered.")
	}

	return nil
}

func runRun(cmd *cobra.Command, args []string) error {
	plan, _, _, err := buildPlan(cmd, args[0])
	if err != nil {
		return err
	}
	if plan.Empty() {
		return fmt.Errorf("no pomodoros fit the given window")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := store.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: history unavailable: %v\n", err)
		db = nil
	} else {
		defer db.Close()
	}

	fmt.Println(plan.Markdown())
	fmt.Println()

	if cfg.Notifications.Enabled {
		notify.Send("pomoplan", fmt.Sprintf("Plan started — %d pomodoros ahead", plan.Pomodoros))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	runner := scheduler.New(plan, db, cfg.Notifications.Enabled)
	return runner.Run(ctx)
}

func runStop(cmd *cobra.Command, args []string) error {
	pid, err := scheduler.ReadPID()
	if err != nil {
		return err
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("finding process %d: %w", pid, err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("sending stop signal: %w", err)
	}

	fmt.Printf("Sent stop signal to pomoplan (PID %d)\n", pid)
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	plans, err := db.GetRecentPlans(limit)
	if err != nil {
		return fmt.Errorf("fetching plans: %w", err)
	}

	if len(plans) == 0 {
		fmt.Println("No plans saved yet.")
		return nil
	}

	fmt.Printf("Last %d plans:\n\n", len(plans))
	for _, p := range plans {
		fmt.Printf("  %s  start %s  end %-6s  %2d pomodoros  %3dmin work  %3dmin rest\n",
			p.CreatedAt.Local().Format("2006-01-02 15:04"),
			p.StartTime,
			p.EndSpec,
			p.Pomodoros,
			p.WorkMinutes,
			p.RestMinutes,
		)
	}

	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	if err := config.EnsureConfigDir(); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath, err := config.ConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Create default config file
		cfg := config.DefaultConfig()
		data := fmt.Sprintf(`[intervals]
pomodoro_minutes = %d
short_break_minutes = %d
long_break_minutes = %d
group_size = %d

[output]
include_stats = %t
include_short_breaks = %t
include_long_breaks = %t

[notifications]
enabled = %t
`,
			cfg.Intervals.PomodoroMinutes,
			cfg.Intervals.ShortBreakMinutes,
			cfg.Intervals.LongBreakMinutes,
			cfg.Intervals.GroupSize,
			cfg.Output.IncludeStats,
			cfg.Output.IncludeShortBreaks,
			cfg.Output.IncludeLongBreaks,
			cfg.Notifications.Enabled,
		)
		if err := os.WriteFile(configPath, []byte(data), 0644); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	fmt.Printf("Opening %s with %s...\n", configPath, editor)

	proc := os.ProcAttr{
		Files: []*os.File{os.Stdin, os.Stdout, os.Stderr},
	}
	process, err := os.StartProcess(editor, []string{editor, configPath}, &proc)
	if err != nil {
		// If editor fails, just print the path
		fmt.Printf("Could not open editor. Config file is at: %s\n", configPath)
		return nil
	}
	_, err = process.Wait()
	return err
}
