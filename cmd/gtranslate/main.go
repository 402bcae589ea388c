package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"codeberg.org/snonux/gtranslate/internal/archive"
	"codeberg.org/snonux/gtranslate/internal/cli"
	"codeberg.org/snonux/gtranslate/internal/history"
	"codeberg.org/snonux/gtranslate/internal/logging"
	"codeberg.org/snonux/gtranslate/internal/processor"
	"codeberg.org/snonux/gtranslate/internal/server"
	"codeberg.org/snonux/gtranslate/internal/translation"
)

// app holds what every command needs once configuration is loaded.
type app struct {
	logger     zerolog.Logger
	translator *translation.Translator
	store      *history.Store
	proc       *processor.Processor
}

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create commands
	rootCmd := cli.CreateRootCommand(flags)
	serveCmd := cli.CreateServeCommand(flags)
	historyCmd := cli.CreateHistoryCommand(flags)
	detectCmd := cli.CreateDetectCommand(flags)
	rootCmd.AddCommand(serveCmd, historyCmd, detectCmd)

	// Set up command initialization
	var initErr error
	cobra.OnInitialize(func() {
		if _, err := cli.LoadEnvFile(flags.EnvFile); err != nil {
			initErr = err
			return
		}
		cli.InitConfig(flags.CfgFile)
		cli.ApplyConfig(flags)
	})

	// Set the run functions
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if initErr != nil {
			return initErr
		}
		return runTranslate(cmd, args, flags)
	}
	serveCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if initErr != nil {
			return initErr
		}
		return runServe(cmd, flags)
	}
	historyCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if initErr != nil {
			return initErr
		}
		return runHistory(cmd, flags)
	}
	detectCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if initErr != nil {
			return initErr
		}
		a, err := newApp(flags, false)
		if err != nil {
			return err
		}
		defer a.close()
		return a.proc.DetectLanguage(strings.Join(args, " "))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newApp(flags *cli.Flags, withHistory bool) (*app, error) {
	logger, err := logging.New(flags.LogLevel, !flags.LogJSON)
	if err != nil {
		return nil, err
	}

	a := &app{
		logger:     logger,
		translator: translation.NewTranslator(translation.WithLogger(logger)),
	}

	if withHistory && !flags.NoHistory {
		store, err := history.Open(flags.HistoryPath)
		if err != nil {
			// Translating still works without the log.
			logger.Warn().Err(err).Str("path", flags.HistoryPath).Msg("history disabled")
		} else {
			a.store = store
		}
	}

	a.proc = processor.NewProcessor(flags, a.translator, a.store, logger)
	return a, nil
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("failed to close history")
		}
	}
}

func runTranslate(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	if flags.BatchFile == "" && len(args) == 0 {
		return cmd.Help()
	}

	a, err := newApp(flags, true)
	if err != nil {
		return err
	}
	defer a.close()

	// Handle batch processing
	if flags.BatchFile != "" {
		return a.proc.ProcessBatch(cmd.Context())
	}

	text, err := processor.ReadInput(args, os.Stdin)
	if err != nil {
		return err
	}
	return a.proc.ProcessSingle(cmd.Context(), text)
}

func runServe(cmd *cobra.Command, flags *cli.Flags) error {
	a, err := newApp(flags, false)
	if err != nil {
		return err
	}
	defer a.close()

	defaults, err := a.proc.BaseRequest()
	if err != nil {
		return err
	}

	srv := server.New(a.translator, defaults, a.logger, server.Options{
		Addr:    flags.Addr,
		Timeout: flags.Timeout,
	})
	return srv.Start(cmd.Context())
}

func runHistory(cmd *cobra.Command, flags *cli.Flags) error {
	// Handle --archive flag
	if flags.ArchiveHistory {
		archived, err := archive.ArchiveHistory(flags.HistoryPath)
		if err != nil {
			return fmt.Errorf("failed to archive history: %w", err)
		}
		fmt.Printf("History archived to: %s\n", archived)
		return nil
	}

	a, err := newApp(flags, true)
	if err != nil {
		return err
	}
	defer a.close()

	return a.proc.ShowHistory(cmd.Context(), flags.HistoryLimit)
}
