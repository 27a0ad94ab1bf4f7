package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/akmtwell/telehealth/internal/config"
	"github.com/akmtwell/telehealth/internal/platform/i18n"
	"github.com/akmtwell/telehealth/internal/triage"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "telehealth-server",
		Short:        "Telemedicine demo API with AI symptom triage",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(triageCmd())
	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg, newLogger(cfg))
		},
	}
}

func triageCmd() *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "triage [symptoms...]",
		Short: "Classify symptoms once with the configured provider and print the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			target, err := i18n.ParseLanguage(lang)
			if err != nil {
				return err
			}
			svc, err := newTriageService(cfg, newLogger(cfg))
			if err != nil {
				return err
			}
			res, err := svc.ClassifyOnce(cmd.Context(), strings.Join(args, " "), target)
			if err != nil {
				kind, _ := triage.KindOf(err)
				return fmt.Errorf("%s: %w", kind, err)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
	cmd.Flags().StringVar(&lang, "lang", string(i18n.English), "summary language (id, en, jp, kr)")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.IsDev() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// newTriageService builds the classification boundary from config.
func newTriageService(cfg *config.Config, logger zerolog.Logger) (*triage.Service, error) {
	classifier, err := triage.NewClassifier(triage.ProviderConfig{
		Provider:       cfg.ClassifierProvider,
		GeminiAPIKey:   cfg.GeminiAPIKey,
		GeminiModel:    cfg.GeminiModel,
		GeminiEndpoint: cfg.GeminiEndpoint,
		OpenAIAPIKey:   cfg.OpenAIAPIKey,
		OpenAIModel:    cfg.OpenAIModel,
		OpenAIBaseURL:  cfg.OpenAIBaseURL,
		HTTPTimeout:    cfg.ClassifyTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("build classifier: %w", err)
	}
	svc := triage.NewService(triage.NewMemoryRepo(), classifier, logger)
	svc.SetTimeout(cfg.ClassifyTimeout)
	svc.SetStrictUrgency(cfg.TriageStrictUrgency)
	return svc, nil
}
