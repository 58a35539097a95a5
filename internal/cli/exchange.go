package cli

import (
	"errors"
	"fmt"
	"os"
	"slices"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/teamcal/internal/ics"
	"github.com/sandeepkv93/teamcal/internal/store"
)

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:           "export",
		Short:         "Write all tasks as an iCalendar file",
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
			body := ics.Export(tasks, sess.Store.TeamMembers(), now().UTC())
			if output == "" || output == "-" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			if err := os.WriteFile(output, []byte(body), 0o644); err != nil {
				return err
			}
			sess.Logger.WithFields(log.Fields{"file": output, "tasks": len(tasks)}).Info("calendar exported")
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "exported %d task(s) to %s\n", len(tasks), output)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")

	return cmd
}

// NewImportCommand creates the import command. Imported tasks get fresh ids;
// assignees that are not known members are dropped.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "import <file.ics>",
		Short:         "Add the events of an iCalendar file as tasks",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			sess, err := openSession(cmd.Context(), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.Close()

			tasks, err := ics.Import(f, sess.Logger)
			if err != nil {
				return err
			}
			added := 0
			var persistErr error
			for _, t := range tasks {
				t.AssignedMemberIDs = slices.DeleteFunc(t.AssignedMemberIDs, func(id string) bool {
					_, ok := sess.Store.TeamMember(id)
					return !ok
				})
				if err := t.Validate(); err != nil {
					sess.Logger.WithError(err).WithField("uid", t.ID).Warn("skipping invalid event")
					continue
				}
				_, err := sess.Store.AddTask(cmd.Context(), t)
				if err != nil && !errors.Is(err, store.ErrNotPersisted) {
					return err
				}
				persistErr = errors.Join(persistErr, err)
				added++
			}
			if persistErr != nil {
				return persistErr
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d event(s)\n", added, len(tasks))
			return err
		},
	}
}
