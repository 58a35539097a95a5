package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/teamcal/internal/dates"
	"github.com/sandeepkv93/teamcal/internal/model"
	"github.com/sandeepkv93/teamcal/internal/query"
	"github.com/sandeepkv93/teamcal/internal/views"
)

// now is swapped in tests.
var now = time.Now

type agendaOptions struct {
	View string
	Date string
}

// NewAgendaCommand creates the agenda command.
func NewAgendaCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &agendaOptions{}

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Print the tasks of a month, week or day",
		Long: `Print the tasks of the selected view as plain text, one block per day.

The view defaults to the configured default_view and the date to today.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAgenda(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVar(&opts.View, "view", "", "view mode (month|week|day)")
	cmd.Flags().StringVar(&opts.Date, "date", "", "focus date as YYYY-MM-DD")

	return cmd
}

func runAgenda(cmd *cobra.Command, rootOpts *RootOptions, opts *agendaOptions) error {
	focus := query.Today(now())
	if opts.Date != "" {
		d, err := time.ParseInLocation("2006-01-02", opts.Date, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date %q: want YYYY-MM-DD", opts.Date)
		}
		focus = d
	}

	sess, err := openSession(cmd.Context(), rootOpts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer sess.Close()

	mode := sess.Config.View()
	if opts.View != "" {
		if mode, err = model.ParseViewMode(opts.View); err != nil {
			return err
		}
	}

	weekStart := sess.Config.WeekStartDay()
	tasks := sess.Store.Tasks()
	from, to := query.Range(mode, focus, weekStart)
	data := views.AgendaData{
		Title:   views.ModeLabel(mode) + ": " + query.Title(mode, focus, weekStart),
		Members: query.MembersByID(sess.Store.TeamMembers()),
	}
	for day := dates.StartOfDay(from); !day.After(to); day = dates.AddDays(day, 1) {
		data.Days = append(data.Days, views.AgendaDay{
			Date:  day,
			Tasks: query.SortedByStart(query.TasksOn(tasks, day)),
		})
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), views.RenderAgenda(data))
	return err
}
