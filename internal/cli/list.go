package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/teamcal/internal/query"
	"github.com/sandeepkv93/teamcal/internal/views"
)

// NewTasksCommand creates the tasks command.
func NewTasksCommand(rootOpts *RootOptions) *cobra.Command {
	var member string

	cmd := &cobra.Command{
		Use:           "tasks",
		Short:         "List all tasks in start order",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.Close()

			tasks := sess.Store.Tasks()
			if member != "" {
				tasks = query.ForMember(tasks, member)
			}
			out := views.RenderTaskList(query.SortedByStart(tasks), query.MembersByID(sess.Store.TeamMembers()))
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVar(&member, "member", "", "only tasks assigned to this member id")

	return cmd
}

// NewMembersCommand creates the members command.
func NewMembersCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "members",
		Short:         "List team members with their open task counts",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.Close()

			tasks := sess.Store.Tasks()
			var rows []views.MemberListRow
			for _, m := range sess.Store.TeamMembers() {
				rows = append(rows, views.MemberListRow{Member: m, OpenTasks: query.OpenTaskCount(tasks, m.ID)})
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), views.RenderMemberList(rows))
			return err
		},
	}
}
