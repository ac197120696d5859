package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/guidegen/internal/api"
	"github.com/dgallion1/guidegen/internal/compile"
	"github.com/dgallion1/guidegen/internal/config"
	"github.com/dgallion1/guidegen/internal/render"
)

type cliFlags struct {
	input    string
	output   string
	title    string
	mode     string
	fallback string
	strict   bool
	addr     string
}

func newRootCmd(cfg config.Config, log *slog.Logger) *cobra.Command {
	var flags cliFlags

	rootCmd := &cobra.Command{
		Use:   "guidegen",
		Short: "Compile a flowchart into an interactive decision-guide document",
		Long: `guidegen converts a Mermaid-subset flowchart (.mmd, .mermaid) or a
declarative JSON tree description into a single self-contained interactive
HTML guide for click-through classification.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.input, "input", "i", "", "path to the source file (or directory for compile)")
	pf.StringVar(&flags.title, "title", cfg.Title, "display title of the guide")
	pf.StringVar(&flags.mode, "mode", cfg.Mode, "front-end mode: 'clickthrough' or 'filtering'")
	pf.StringVar(&flags.fallback, "fallback-label", cfg.FallbackLabel, "label for unlabeled options: 'destination' or 'blank'")
	pf.BoolVar(&flags.strict, "strict", false, "treat unreachable nodes as fatal")

	compileCmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a source file (or every file in a directory) to HTML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd.Context(), cfg, log, &flags)
		},
	}
	compileCmd.Flags().StringVarP(&flags.output, "output", "o", "", "output HTML path (or directory for batch input)")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a source file without writing output",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cfg, log, &flags)
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Compile and serve the guide locally, recompiling on refresh",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg, log, &flags)
		},
	}
	serveCmd.Flags().StringVar(&flags.addr, "addr", cfg.Addr, "listen address for the preview server")

	rootCmd.AddCommand(compileCmd, checkCmd, serveCmd)
	return rootCmd
}

// applyFlags folds CLI overrides into the effective configuration.
func applyFlags(cfg config.Config, flags *cliFlags) (config.Config, render.Mode, error) {
	cfg.FallbackLabel = flags.fallback
	if err := cfg.Validate(); err != nil {
		return cfg, "", err
	}
	mode, err := render.ParseMode(flags.mode)
	if err != nil {
		return cfg, "", err
	}
	return cfg, mode, nil
}

func runCompile(ctx context.Context, cfg config.Config, log *slog.Logger, flags *cliFlags) error {
	if flags.input == "" {
		return fmt.Errorf("--input is required")
	}
	if flags.output == "" {
		return fmt.Errorf("--output is required")
	}
	cfg, mode, err := applyFlags(cfg, flags)
	if err != nil {
		return err
	}

	info, err := os.Stat(flags.input)
	if err != nil {
		return fmt.Errorf("input file not found: %s", flags.input)
	}

	if info.IsDir() {
		res, err := compile.RunDir(ctx, cfg, log, flags.input, flags.output, flags.title, mode, flags.strict)
		if err != nil {
			return err
		}
		log.Info("batch complete", "compiled", res.Compiled)
		return nil
	}

	_, err = compile.Run(cfg, log, compile.Request{
		InputPath:  flags.input,
		OutputPath: flags.output,
		Title:      flags.title,
		Mode:       mode,
		Strict:     flags.strict,
	})
	return err
}

func runCheck(cfg config.Config, log *slog.Logger, flags *cliFlags) error {
	if flags.input == "" {
		return fmt.Errorf("--input is required")
	}
	cfg, _, err := applyFlags(cfg, flags)
	if err != nil {
		return err
	}

	res, err := compile.Build(cfg, log, compile.Request{
		InputPath: flags.input,
		Strict:    flags.strict,
	})
	if err != nil {
		return err
	}

	log.Info("source is valid",
		"root", res.RootID,
		"synthetic_root", res.SyntheticRoot,
		"questions", res.Questions,
		"results", res.Results,
		"warnings", len(res.Warnings),
	)
	return nil
}

func runServe(ctx context.Context, cfg config.Config, log *slog.Logger, flags *cliFlags) error {
	if flags.input == "" {
		return fmt.Errorf("--input is required")
	}
	cfg, mode, err := applyFlags(cfg, flags)
	if err != nil {
		return err
	}

	req := compile.Request{
		InputPath: flags.input,
		Title:     flags.title,
		Mode:      mode,
		Strict:    flags.strict,
	}

	// Compile once up front so broken input fails at startup, not on the
	// first page load.
	if _, _, err := compile.Document(cfg, log, req); err != nil {
		return err
	}

	srv := api.NewServer(func(r *http.Request) ([]byte, error) {
		doc, _, err := compile.Document(cfg, log, req)
		return doc, err
	}, log)

	httpServer := &http.Server{
		Addr:         flags.addr,
		Handler:      srv,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigCh:
		case <-ctx.Done():
		}
		log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("serving guide preview", "addr", flags.addr, "input", flags.input)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
