package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/engine"
	"github.com/tartampluch/go-addressbook/internal/store"
	"github.com/tartampluch/go-addressbook/internal/ui"
)

// cli carries flag values and the resolved settings between cobra hooks.
type cli struct {
	configPath string
	dataPath   string
	driver     string
	lang       string
	debug      bool
	version    bool
	days       int

	settings *config.Settings
	clock    engine.Clock

	setupLog   func(debug bool) io.Closer
	logStartup bool
	logCloser  io.Closer
}

func (c *cli) close() {
	if c.logCloser != nil {
		_ = c.logCloser.Close() // Best effort close
		c.logCloser = nil
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:               config.AppCommand,
		Short:             config.CmdShortRoot,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		PersistentPreRunE: c.prepare,
		RunE:              c.runREPL,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, config.FlagConfig, config.SettingsFile, config.FlagDescConfig)
	pf.StringVar(&c.dataPath, config.FlagData, "", config.FlagDescData)
	pf.StringVar(&c.driver, config.FlagDriver, "", config.FlagDescDriver)
	pf.StringVar(&c.lang, config.FlagLang, "", config.FlagDescLang)
	pf.BoolVar(&c.debug, config.FlagDebug, false, config.FlagDescDebug)
	root.Flags().BoolVar(&c.version, config.FlagVersion, false, config.FlagDescVersion)

	root.AddCommand(
		newExportCmd(c),
		newImportCmd(c),
		newCalendarCmd(c),
		newUpcomingCmd(c),
	)
	return root
}

// prepare sets up logging and resolves settings: defaults, then YAML file,
// then environment, then explicit flags.
func (c *cli) prepare(cmd *cobra.Command, _ []string) error {
	if c.version {
		return nil
	}

	if c.setupLog != nil {
		c.logCloser = c.setupLog(c.debug)
	}
	if c.logStartup {
		logStartupInfo()
	}

	s, err := config.LoadSettings(c.configPath)
	if err != nil {
		return err
	}
	if err := s.ApplyEnv(); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed(config.FlagData) {
		s.Storage.Path = c.dataPath
	}
	if flags.Changed(config.FlagDriver) {
		s.Storage.Driver = c.driver
	}
	if flags.Changed(config.FlagLang) {
		s.Language = c.lang
	}
	if flags.Changed(config.FlagDays) {
		s.Birthdays.WindowDays = c.days
	}

	if err := s.Validate(); err != nil {
		return err
	}

	slog.Debug(config.MsgSettings,
		config.LogKeyComponent, config.CompSettings,
		config.LogKeyFile, c.configPath,
		config.LogKeyDriver, s.Storage.Driver,
		config.LogKeyLang, s.Language,
	)
	c.settings = s
	return nil
}

func (c *cli) openStore() (store.Store, error) {
	return store.Open(c.settings.Storage.Driver, c.settings.Storage.Path)
}

// runREPL loads the book, runs the interactive session and saves on exit.
func (c *cli) runREPL(cmd *cobra.Command, _ []string) error {
	if c.version {
		printVersion(cmd.OutOrStdout())
		return nil
	}

	ctx := cmd.Context()
	st, err := c.openStore()
	if err != nil {
		return err
	}
	book, err := st.Load(ctx)
	if err != nil {
		return err
	}

	tr := ui.NewTranslator(c.settings.Language)
	in := cmd.InOrStdin()
	prompt := ""
	if f, ok := in.(*os.File); ok && ui.IsTerminal(f) {
		prompt = tr.Msg(config.TKeyPrompt)
	}

	app := ui.NewAddressBookApp(book, ui.NewStdConsole(in, cmd.OutOrStdout(), prompt), tr, st)
	app.Clock = c.clock
	app.WindowDays = c.settings.Birthdays.WindowDays
	return app.Run(ctx)
}

func newExportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdUseExport,
		Short: config.CmdShortExport,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			st, err := c.openStore()
			if err != nil {
				return err
			}
			book, err := st.Load(cmd.Context())
			if err != nil {
				return err
			}

			f, err := os.OpenFile(args[0], os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := f.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()

			n, err := engine.ExportVCards(f, book)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), config.MsgExported, n, args[0])
			return nil
		},
	}
}

func newImportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdUseImport,
		Short: config.CmdShortImport,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore()
			if err != nil {
				return err
			}
			book, err := st.Load(ctx)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			start := time.Now()
			stats, err := engine.ImportVCards(ctx, f, book)
			if err != nil {
				return err
			}
			if err := st.Save(ctx, book); err != nil {
				return err
			}
			slog.Info(config.MsgImportDone,
				config.LogKeyComponent, config.CompMain,
				config.LogKeyFile, args[0],
				config.LogKeyCount, stats.Imported,
				config.LogKeyDuration, time.Since(start).Milliseconds(),
			)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), config.MsgImported, stats.Imported, args[0])
			return nil
		},
	}
}

func newCalendarCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdUseCalendar,
		Short: config.CmdShortCalendar,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			st, err := c.openStore()
			if err != nil {
				return err
			}
			book, err := st.Load(cmd.Context())
			if err != nil {
				return err
			}

			tr := ui.NewTranslator(c.settings.Language)
			w := &engine.CalendarWriter{
				Clock:           c.clock,
				ReminderTrigger: c.settings.Calendar.ReminderTrigger,
				FormatSummary:   tr.EventSummary,
			}

			f, err := os.OpenFile(args[0], os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := f.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()

			n, err := w.Write(f, book)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), config.MsgCalendarDone, n, args[0])
			return nil
		},
	}
}

func newUpcomingCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.CmdUseUpcoming,
		Short: config.CmdShortUpcoming,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := c.openStore()
			if err != nil {
				return err
			}
			book, err := st.Load(cmd.Context())
			if err != nil {
				return err
			}

			tr := ui.NewTranslator(c.settings.Language)
			out := cmd.OutOrStdout()
			greetings := book.UpcomingBirthdaysWithin(c.clock.Now(), c.settings.Birthdays.WindowDays)
			if len(greetings) == 0 {
				_, _ = fmt.Fprintln(out, tr.Msg(config.TKeyUpcomingNone))
				return nil
			}

			_, _ = fmt.Fprintln(out, tr.Msg(config.TKeyUpcomingHeader))
			for _, g := range greetings {
				_, _ = fmt.Fprintln(out, tr.Msgf(config.TKeyBirthdayIs, map[string]any{
					"Name": g.Name,
					"Date": g.DateString(),
				}))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&c.days, config.FlagDays, config.DefaultWindowDays, config.FlagDescDays)
	return cmd
}
