package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"pgr/internal/activitylog"
	"pgr/internal/config"
	"pgr/internal/terminal"
	"pgr/internal/ui"
)

// rootOptions holds the flags shared by the root command and its children.
type rootOptions struct {
	configPath  string
	activityLog string
}

// NewRootCmd creates the root cobra command with all subcommands.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "pgr",
		Short:         "Minimal full-screen terminal pager",
		Long:          "pgr takes over the terminal, shows a scrollable listing, and accepts vi-style keys and colon commands. Type :q to quit.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPager(opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default $PGR_CONFIG or $XDG_CONFIG_HOME/pgr/config.yaml)")
	rootCmd.Flags().StringVar(&opts.activityLog, "activity-log", "", "Append JSONL activity events to this file")

	rootCmd.AddCommand(
		newVersionCmd(),
		newBindingsCmd(opts),
	)

	return rootCmd
}

// loadKeymap reads the config and builds the binding table: built-in
// bindings first, then the config's in file order.
func loadKeymap(configPath string) (*config.Config, *ui.Keymap, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	bindings := ui.DefaultBindings()
	for _, b := range cfg.Bindings {
		bindings = append(bindings, ui.Binding{Key: b.Key, Action: b.Action})
	}
	km, err := ui.NewKeymap(bindings)
	if err != nil {
		return nil, nil, err
	}
	return cfg, km, nil
}

// runPager runs one interactive session on the process's terminal. Every
// configuration problem surfaces before the terminal is touched.
func runPager(opts *rootOptions) (err error) {
	cfg, km, err := loadKeymap(opts.configPath)
	if err != nil {
		return err
	}

	log := newActivityLog(cfg.ActivityLogPath(opts.activityLog))
	defer log.Close()
	log.ConfigLoaded(cfg.Path, len(cfg.Bindings))

	sess := terminal.New(os.Stdin, os.Stdout)
	scr, err := sess.Enter()
	if err != nil {
		log.SessionEnd("error", err)
		return err
	}
	defer func() {
		err = closeSession(sess, err)
	}()

	return runSession(scr, km, log)
}

// closeSession restores the terminal. A failed restore is reported along
// with whatever ended the session, since the shell may be left raw.
func closeSession(sess interface{ Exit() error }, err error) error {
	return errors.Join(err, sess.Exit())
}

// runSession drives the engine on an acquired screen until :q or a read
// error. The bottom row is the status line; the rest is the viewport.
func runSession(scr *terminal.Screen, km *ui.Keymap, log *activitylog.Logger) error {
	e := ui.New(ui.Config{
		Keymap:   km,
		Commands: ui.DefaultCommands(),
		Content:  km.Listing(),
		View:     scr.Region(0, scr.Rows-1),
		Status:   scr.Region(scr.Rows-1, 1),
		Keys:     scr.Keys(),
	})
	e.OnModeChange = func(from, to ui.Mode) {
		log.ModeChange(from.String(), to.String())
	}
	e.OnCommand = log.Command
	e.OnAbort = log.ColonAbort

	log.SessionStart(scr.Rows, scr.Cols)
	if err := e.Run(); err != nil {
		log.SessionEnd("error", err)
		return err
	}
	log.SessionEnd("quit", nil)
	return nil
}
