package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"moodlog/internal/bootstrap"
	"moodlog/internal/modules/journal/dto"
	"moodlog/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	journalPath string
	verbose     bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "moodlog",
		Short:         "Grade every day from A+ to F and see how the year went",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.journalPath, "journal", ".", "journal directory")
	root.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "debug logging on stderr")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newLogCmd(flags))
	root.AddCommand(newClearCmd(flags))
	root.AddCommand(newShowCmd(flags))
	root.AddCommand(newMonthCmd(flags))
	root.AddCommand(newYearCmd(flags))
	root.AddCommand(newStatsCmd(flags))
	root.AddCommand(newExportCmd(flags))
	root.AddCommand(newImportCmd(flags))
	root.AddCommand(newShareCmd(flags))
	root.AddCommand(newReindexCmd(flags))
	root.AddCommand(newReminderCmd(flags))
	return root
}

func loadApp(flags *globalFlags) (*bootstrap.App, error) {
	cfg, err := config.New(flags.journalPath)
	if err != nil {
		return nil, err
	}
	cfg.Verbose = flags.verbose
	return bootstrap.New(cfg)
}

// withApp opens the journal for the duration of one command.
func withApp(flags *globalFlags, run func(ctx context.Context, app *bootstrap.App) error) error {
	app, err := loadApp(flags)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return run(context.Background(), app)
}

func today() string {
	return time.Now().Format(time.DateOnly)
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the moodlog terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(flags, func(_ context.Context, app *bootstrap.App) error {
				return bootstrap.RunTUI(flags.journalPath, app)
			})
		},
	}
}

func newLogCmd(flags *globalFlags) *cobra.Command {
	var date, note string
	cmd := &cobra.Command{
		Use:   "log <grade>",
		Short: "Log a grade (A+, A, B, C, D, F or 0-5) for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			grade, err := dto.ParseGrade(args[0])
			if err != nil {
				return err
			}
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				// Regrading a day keeps its note unless --note is given.
				if !cmd.Flags().Changed("note") {
					existing, err := app.JournalCLI.GetRecord(ctx, date)
					if err != nil {
						return err
					}
					note = existing.Note
				}
				out, err := app.JournalCLI.SetRecord(ctx, date, grade, note)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", out.Key, describeRecord(out))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", today(), "day to log (YYYY-MM-DD)")
	cmd.Flags().StringVar(&note, "note", "", "free-text note (default keeps the day's note, \"\" clears it)")
	return cmd
}

func newClearCmd(flags *globalFlags) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the record for a day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.JournalCLI.DeleteRecord(ctx, date); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", date)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", today(), "day to clear (YYYY-MM-DD)")
	return cmd
}

func newShowCmd(flags *globalFlags) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the record for a day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.JournalCLI.GetRecord(ctx, date)
				if err != nil {
					return err
				}
				if !out.Found {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s not logged\n", date)
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", out.Key, describeRecord(out))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", today(), "day to show (YYYY-MM-DD)")
	return cmd
}

func newMonthCmd(flags *globalFlags) *cobra.Command {
	now := time.Now()
	var year, month int
	cmd := &cobra.Command{
		Use:   "month",
		Short: "Print a month as a calendar with its statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.JournalCLI.MonthGeometry(ctx, year, month)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				writeCalendar(w, out)
				_, _ = fmt.Fprintln(w)
				writeSummary(w, out.Summary)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&year, "year", now.Year(), "year")
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "month (1-12)")
	return cmd
}

func newYearCmd(flags *globalFlags) *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "year",
		Short: "Print per-month averages and the year's statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.JournalCLI.YearOverview(ctx, year)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				for _, m := range out.Months {
					_, _ = fmt.Fprintf(w, "%-15s %-2s %5s  %3d entries\n", m.Label, m.Summary.Letter, formatAverage(m.Summary.Average), m.Summary.Total)
				}
				_, _ = fmt.Fprintln(w)
				writeSummary(w, out.Summary)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "year")
	return cmd
}

func newStatsCmd(flags *globalFlags) *cobra.Command {
	var year, month int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Grade distribution for a year, or for one month with --month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				var (
					out dto.SummaryOutput
					err error
				)
				if month == 0 {
					out, err = app.JournalCLI.SummarizeYear(ctx, year)
				} else {
					out, err = app.JournalCLI.SummarizeMonth(ctx, year, month)
				}
				if err != nil {
					return err
				}
				writeSummary(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "year")
	cmd.Flags().IntVar(&month, "month", 0, "month (1-12); omit for the whole year")
	return cmd
}

func newExportCmd(flags *globalFlags) *cobra.Command {
	var format, outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the journal as json, csv, markdown or html",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.JournalCLI.Export(ctx, format)
				if err != nil {
					return err
				}
				if outPath == "-" {
					_, err := io.WriteString(cmd.OutOrStdout(), out.Content)
					return err
				}
				path := outPath
				if path == "" {
					path = filepath.Join(flags.journalPath, out.FileName)
				}
				if err := os.WriteFile(path, []byte(out.Content), 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d entries to %s\n", out.Total, path)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "json|csv|markdown|html")
	cmd.Flags().StringVar(&outPath, "out", "", "output file (default mood-tracker-<date>.<ext> in the journal, - for stdout)")
	return cmd
}

func newImportCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge a JSON export into the journal; imported days win",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.JournalCLI.Import(ctx, string(content))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d entries, journal now has %d\n", out.Incoming, out.Total)
				return nil
			})
		},
	}
}

func newShareCmd(flags *globalFlags) *cobra.Command {
	var year int
	var save bool
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Print a shareable summary of a year",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.JournalCLI.ShareYear(ctx, year, save)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Text)
				if out.Path != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nsaved %s\n", out.Path)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "year")
	cmd.Flags().BoolVar(&save, "save", false, "also write reports/<year>.md")
	return cmd
}

func newReindexCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the sqlite index from the journal file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.JournalCLI.Reindex(ctx)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "reindexed %d entries\n", out.Total)
				months := make([]int, 0, len(out.MonthlyAverages))
				for m := range out.MonthlyAverages {
					months = append(months, m)
				}
				sort.Ints(months)
				for _, m := range months {
					avg := out.MonthlyAverages[m]
					_, _ = fmt.Fprintf(w, "%04d-%02d average %.1f (%s)\n", out.Year, m, avg, app.JournalCLI.GradeFromAverage(&avg).Letter)
				}
				return nil
			})
		},
	}
}

func newReminderCmd(flags *globalFlags) *cobra.Command {
	reminder := &cobra.Command{Use: "reminder", Short: "Daily reminder settings"}

	reminder.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show reminder settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ReminderCLI.Show(ctx)
				if err != nil {
					return err
				}
				writeReminder(cmd.OutOrStdout(), out.Enabled, out.Time, out.NextAt)
				return nil
			})
		},
	})

	var enabled bool
	var at string
	set := &cobra.Command{
		Use:   "set",
		Short: "Change reminder settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var enabledArg *bool
			var timeArg *string
			if cmd.Flags().Changed("enabled") {
				enabledArg = &enabled
			}
			if cmd.Flags().Changed("time") {
				timeArg = &at
			}
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ReminderCLI.Set(ctx, enabledArg, timeArg)
				if err != nil {
					return err
				}
				writeReminder(cmd.OutOrStdout(), out.Enabled, out.Time, out.NextAt)
				return nil
			})
		},
	}
	set.Flags().BoolVar(&enabled, "enabled", false, "turn the reminder on or off")
	set.Flags().StringVar(&at, "time", "", "reminder time as HH:MM (24h)")
	reminder.AddCommand(set)

	reminder.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Print the reminder if it is due now; suitable for cron",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ReminderCLI.Check(ctx)
				if err != nil {
					return err
				}
				if out.Due {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Message)
				}
				return nil
			})
		},
	})
	return reminder
}

// ─── rendering ────────────────────────────────────────────────────────────────

func describeRecord(out dto.RecordOutput) string {
	if out.Note == "" {
		return out.Letter
	}
	return out.Letter + "  " + out.Note
}

func formatAverage(avg *float64) string {
	if avg == nil {
		return "—"
	}
	return fmt.Sprintf("%.1f", *avg)
}

func writeCalendar(w io.Writer, out dto.MonthOutput) {
	_, _ = fmt.Fprintln(w, out.Label)
	_, _ = fmt.Fprintln(w, "Mo  Tu  We  Th  Fr  Sa  Su")
	var line strings.Builder
	col := 0
	for ; col < out.Offset; col++ {
		line.WriteString("    ")
	}
	for _, cell := range out.Cells {
		mark := fmt.Sprintf("%2d", cell.Day)
		if cell.HasRecord {
			mark = fmt.Sprintf("%2s", cell.Letter)
		}
		if cell.Today {
			mark += "*"
		} else {
			mark += " "
		}
		line.WriteString(mark + " ")
		col++
		if col == 7 {
			_, _ = fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
			line.Reset()
			col = 0
		}
	}
	if line.Len() > 0 {
		_, _ = fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
}

func writeSummary(w io.Writer, out dto.SummaryOutput) {
	_, _ = fmt.Fprintf(w, "Average: %s (%s)\nTotal entries: %d\n", out.Letter, formatAverage(out.Average), out.Total)
	for grade := range out.Counts {
		_, _ = fmt.Fprintf(w, "%-2s %4d  %5s%%\n", dto.GradeLetter(grade), out.Counts[grade], out.Percentages[grade])
	}
}

func writeReminder(w io.Writer, enabled bool, at string, next time.Time) {
	state := "off"
	if enabled {
		state = "on"
	}
	_, _ = fmt.Fprintf(w, "reminder %s at %s\n", state, at)
	if !next.IsZero() {
		_, _ = fmt.Fprintf(w, "next %s\n", next.Format("Mon Jan 2 15:04"))
	}
}
