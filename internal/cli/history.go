package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"cue-cli/internal/model"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List completed tasks, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return writeErr(cmd, errInvalidArg("limit", strconv.Itoa(limit), "must be >= 0"))
			}
			st, err := app.openStore()
			if err != nil {
				return writeErr(cmd, err)
			}
			items, err := st.History(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			if items == nil {
				items = []model.Completion{}
			}
			return writeOut(cmd, app, items)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Max entries (0 for all)")
	return cmd
}
