package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fournest/mpsub/config"
	"github.com/fournest/mpsub/moviepilot"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *moviepilot.Client

	appVersion   = "dev"
	appBuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mpsub",
	Short: "Search and subscribe media on a MoviePilot server",
	Long: `mpsub is a CLI tool for MoviePilot: search the media catalog, pick a
result (and a season for TV series) in a short interactive dialogue to
create a subscription, and check active download progress.`,
	PersistentPreRunE: initializeApp,
}

// SetVersion sets the version information from build flags
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuildTime = buildTime
	rootCmd.Version = fmt.Sprintf("%s (built %s)", appVersion, appBuildTime)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

// initializeApp initializes the configuration and the MoviePilot client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Create MoviePilot client
	client, err = moviepilot.NewClient(moviepilot.Config{
		URL:           cfg.MoviePilot.URL,
		Username:      cfg.MoviePilot.Username,
		Password:      cfg.MoviePilot.Password,
		Timeout:       cfg.MoviePilot.Timeout,
		MaxRetries:    cfg.MoviePilot.MaxRetries,
		RetryDelay:    cfg.MoviePilot.RetryDelay,
		TokenBuffer:   cfg.MoviePilot.TokenBuffer,
		TokenLifetime: cfg.MoviePilot.TokenLifetime,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create MoviePilot client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, color only when enabled and writing to a terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
