// ABOUTME: CLI entry point for postdash with terminal crash recovery
// ABOUTME: Loads config, opens storage, starts the fetch pool, and runs the dashboard

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/mauromedda/postdash/internal/config"
	"github.com/mauromedda/postdash/internal/dashboard"
	"github.com/mauromedda/postdash/internal/feed"
	"github.com/mauromedda/postdash/internal/fetch"
	"github.com/mauromedda/postdash/internal/keybindings"
	pdlog "github.com/mauromedda/postdash/internal/log"
	"github.com/mauromedda/postdash/internal/store"
	"github.com/mauromedda/postdash/pkg/tui/terminal"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var (
	errStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	byeStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
)

func init() {
	// Resolving an adaptive color would otherwise send an OSC 11 query whose
	// reply lands in the shell's input after the dashboard exits.
	lipgloss.SetHasDarkBackground(true)
}

func main() {
	args, err := parseFlags(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("error: "+err.Error()))
		os.Exit(2)
	}

	if args.version {
		fmt.Printf("postdash %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

// run performs the initialization sequence and blocks until the dashboard
// exits. A non-nil error is the fatal error that stopped it.
func run(args cliArgs, stdout io.Writer) error {
	cfgMgr, err := config.NewManager(config.Options{
		ConfigFile: args.configFile,
		Flags:      args.flags,
		Version:    version,
	})
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cfgMgr.Get()

	keys := keybindings.New(cfg.Keys.Path)
	if args.keys {
		fmt.Fprint(stdout, keys.FormatAll())
		return nil
	}

	logFile, err := pdlog.Setup(pdlog.Options{Path: cfg.Log.Path, Level: cfg.Log.Level, Debug: cfg.Log.Debug})
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer logFile.Close()
	log.Info().Str("version", version).Str("config", cfgMgr.File()).Msg("starting postdash")
	for _, c := range keys.Conflicts() {
		log.Warn().Str("key", c.Key).Str("actions", fmt.Sprint(c.Actions)).Msg("key bound to several actions")
	}

	st, err := store.Open(cfg.Storage.SQLitePath)
	if err != nil {
		return err
	}
	defer st.Close()

	term := terminal.NewProcessTerminal()
	if !term.IsTerminal() {
		return errors.New("postdash needs an interactive terminal")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := feed.NewStatusClient(cfg.Fetch.BaseURL, cfg.Fetch.UserAgent, cfg.Fetch.HTTPTimeout())
	fetchCtx, cancelFetch := context.WithCancel(ctx)
	coord := fetch.New(fetchCtx, client, fetch.Options{Limit: cfg.Fetch.Limit, Workers: cfg.Fetch.Workers})
	defer func() {
		cancelFetch()
		coord.Close()
		if err := coord.Wait(); err != nil {
			log.Warn().Err(err).Msg("fetch pool stopped with error")
		}
	}()

	dash, err := dashboard.New(ctx, st, coord, keys, dashboard.OptionsFrom(cfg))
	if err != nil {
		return err
	}

	unsubscribe := cfgMgr.OnChange(func(c config.Config) {
		dash.Reconfigure(dashboard.OptionsFrom(c))
	})
	defer unsubscribe()
	cfgMgr.Watch()

	keysWatcher := config.NewWatcher([]string{cfg.Keys.Path}, func() {
		keys.Reload(cfg.Keys.Path)
		dash.KeysChanged()
	})
	if err := keysWatcher.Start(); err != nil {
		log.Warn().Err(err).Str("file", cfg.Keys.Path).Msg("key bindings will not hot-reload")
	}
	defer keysWatcher.Stop()

	if err := term.EnterRawMode(); err != nil {
		return err
	}
	defer terminal.RestoreOnPanic(term)

	runErr := dash.Run(ctx, term)
	if err := term.ExitRawMode(); err != nil {
		log.Warn().Err(err).Msg("restoring terminal")
	}
	if runErr != nil {
		log.Error().Err(runErr).Msg("dashboard stopped")
		return runErr
	}
	log.Info().Msg("bye")
	fmt.Fprintln(stdout, byeStyle.Render("bye"))
	return nil
}
