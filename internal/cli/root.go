package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/teamcal/internal/config"
	"github.com/sandeepkv93/teamcal/internal/update"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Backend    string
	LogLevel   string
}

// NewRootCommand creates the teamcal command tree. Without a subcommand it
// starts the interactive calendar.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "teamcal",
		Short: "teamcal - a team calendar in the terminal",
		Long:  "Plan tasks on a month, week or day calendar and assign them to team members.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.Backend != "" {
				if _, err := config.ParseBackend(opts.Backend); err != nil {
					return fmt.Errorf("invalid backend: %w", err)
				}
			}
			if opts.LogLevel != "" {
				if _, err := log.ParseLevel(opts.LogLevel); err != nil {
					return fmt.Errorf("invalid log level %q: %w", opts.LogLevel, err)
				}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default is the user config dir)")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "storage backend (sqlite|redis|file|memory)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")

	cmd.AddCommand(NewAgendaCommand(opts))
	cmd.AddCommand(NewTasksCommand(opts))
	cmd.AddCommand(NewMembersCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewClearCommand(opts))

	return cmd
}

func runInteractive(cmd *cobra.Command, opts *RootOptions) error {
	sess, err := openSession(cmd.Context(), opts, nil)
	if err != nil {
		return err
	}
	defer sess.Close()

	model := update.NewModel(sess.Store, update.Options{
		Context:      cmd.Context(),
		Logger:       sess.Logger,
		WeekStart:    sess.Config.WeekStartDay(),
		PreviewLimit: sess.Config.MonthPreviewLimit,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("teamcal failed: %w", err)
	}
	return nil
}
