package cli

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cue-cli/internal/model"
	"cue-cli/internal/schedule"
)

// readText reads file, or stdin when file is "-".
func readText(cmd *cobra.Command, file string) (string, error) {
	if file == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		return string(b), err
	}
	b, err := os.ReadFile(file)
	return string(b), err
}

// scheduleText reads --file when given, otherwise the stored schedule.
func scheduleText(cmd *cobra.Command, app *App, file string) (string, error) {
	if strings.TrimSpace(file) != "" {
		return readText(cmd, file)
	}
	st, err := app.openStore()
	if err != nil {
		return "", err
	}
	return st.LoadSchedule(cmd.Context())
}

func newNormalizeCmd(app *App) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Normalize schedule text (stdin to stdout)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, file)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), schedule.Normalize(text))
			return err
		},
	}
	cmd.Flags().StringVar(&file, "file", "-", "Read from file instead of stdin")
	return cmd
}

func newTasksCmd(app *App) *cobra.Command {
	var file string
	var all bool
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List the tasks of a schedule in document order",
		Long:  "List the tasks of a schedule. Lines marked [x] and lines that do not parse are skipped.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := scheduleText(cmd, app, file)
			if err != nil {
				return writeErr(cmd, err)
			}
			if all {
				return writeOut(cmd, app, allLines(text))
			}
			tasks := schedule.Tasks(text)
			if tasks == nil {
				tasks = []model.Task{}
			}
			return writeOut(cmd, app, tasks)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Schedule file (- for stdin; default: stored schedule)")
	cmd.Flags().BoolVar(&all, "all", false, "Include completed lines")
	return cmd
}

type lineOut struct {
	Name     string  `json:"name"`
	Duration float64 `json:"duration"`
	Done     bool    `json:"done"`
}

func allLines(text string) []lineOut {
	out := []lineOut{}
	for line := range strings.SplitSeq(text, "\n") {
		l, ok := schedule.SplitLine(line)
		if !ok {
			continue
		}
		out = append(out, lineOut{Name: l.Name, Duration: l.Duration, Done: l.Done})
	}
	return out
}

func newNextCmd(app *App) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next task (empty name when the schedule is done)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := scheduleText(cmd, app, file)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, schedule.NextTask(text))
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Schedule file (- for stdin; default: stored schedule)")
	return cmd
}

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Read or replace the stored schedule",
	}
	cmd.AddCommand(newScheduleShowCmd(app))
	cmd.AddCommand(newScheduleSetCmd(app))
	return cmd
}

func newScheduleShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored schedule text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := scheduleText(cmd, app, "")
			if err != nil {
				return writeErr(cmd, err)
			}
			if text == "" {
				return writeErr(cmd, errEmptySchedule(app.Dir))
			}
			out := cmd.OutOrStdout()
			if _, err := io.WriteString(out, text); err != nil {
				return err
			}
			if !strings.HasSuffix(text, "\n") {
				_, err = io.WriteString(out, "\n")
			}
			return err
		},
	}
}

func newScheduleSetCmd(app *App) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Normalize and store schedule text (stdin by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, file)
			if err != nil {
				return writeErr(cmd, err)
			}
			text = schedule.Normalize(text)
			st, err := app.openStore()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := st.SaveSchedule(cmd.Context(), text); err != nil {
				return writeErr(cmd, err)
			}
			app.log.Info().Int("tasks", schedule.Pending(text)).Msg("schedule saved")
			return writeOut(cmd, app, map[string]any{
				"pending": schedule.Pending(text),
				"next":    schedule.NextTask(text),
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "-", "Read from file instead of stdin")
	return cmd
}
