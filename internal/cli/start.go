package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cue-cli/internal/ipc"
	"cue-cli/internal/model"
	"cue-cli/internal/schedule"
	"cue-cli/internal/timer"
)

func newStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start NAME MINUTES",
		Short: "Emit a start-task notification as a JSON line",
		Long: strings.TrimSpace(`
Emit a start-task notification for a one-off task. The envelope is written to
stdout (and to --emit when set); pipe it into "cue dispatch" to apply it.
`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := schedule.Entry{Name: strings.TrimSpace(args[0]), Minutes: strings.TrimSpace(args[1])}
			task, err := entry.Task()
			if err != nil {
				return writeErr(cmd, errInvalidArg("task", strings.Join(args, " "), err.Error()))
			}

			env, err := ipc.Wrap(ipc.StartTask{Task: task}, time.Now())
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := ipc.NewStreamSender(cmd.OutOrStdout(), app.log).Write(env); err != nil {
				return err
			}
			if app.Emit != "" {
				f, err := openEmit(app.Emit)
				if err != nil {
					return writeErr(cmd, err)
				}
				defer func() { _ = f.Close() }()
				if err := ipc.NewStreamSender(f, app.log).Write(env); err != nil {
					return writeErr(cmd, err)
				}
			}
			return nil
		},
	}
}

type dispatchResult struct {
	Applied int               `json:"applied"`
	Phase   string            `json:"phase"`
	Task    *model.ActiveTask `json:"task,omitempty"`
	Staged  *model.ActiveTask `json:"staged,omitempty"`
	Next    model.Task        `json:"next"`
}

func newDispatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch",
		Short: "Apply JSON-line notifications from stdin to the stored state",
		Long: strings.TrimSpace(`
Read notification envelopes (one JSON object per line) from stdin and apply
them in order, as the interactive timer would. set-schedule only updates the
working text; save-schedule persists it together with the staged task.
Envelopes of unknown type are skipped.
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := app.openStore()
			if err != nil {
				return writeErr(cmd, err)
			}
			text, err := st.LoadSchedule(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			staged, err := st.LoadActive(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}

			r := timer.New(st, app.timerOptions(app.cfg), app.log)
			r.Restore(text, staged)

			applied := 0
			err = ipc.ReadStream(ctx, cmd.InOrStdin(), app.log, func(env ipc.Envelope, msg ipc.Message) error {
				if err := r.Handle(ctx, msg); err != nil {
					return fmt.Errorf("%s %s: %w", env.Type, env.ID, err)
				}
				applied++
				return nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}

			snap := r.Snapshot()
			res := dispatchResult{
				Applied: applied,
				Phase:   snap.Phase.String(),
				Next:    schedule.NextTask(snap.Schedule),
			}
			if !snap.Task.IsZero() {
				res.Task = &snap.Task
			}
			if !snap.Staged.IsZero() {
				res.Staged = &snap.Staged
			}
			return writeOut(cmd, app, res)
		},
	}
}
