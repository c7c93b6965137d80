package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/cloudagents/cloudagents"
	"github.com/s0up4200/cloudagents/config"
	"github.com/s0up4200/cloudagents/filter"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *cloudagents.Client
	presets *filter.Manager

	// Command flags
	filterExpr string
	preset     string
	jsonOutput bool
	debug      bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cloudagents",
	Short: "A command line client for the Cloud Agents aggregation API",
	Long: `cloudagents is a CLI for the Cloud Agents API. It lists agents and their
categories, manages customer accounts, triggers and follows synchronizations,
and retrieves the documents they collect.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print raw JSON instead of a table")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "dump HTTP requests and responses")

	// Add subcommands
	rootCmd.AddCommand(testCmd)
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override debug from command line if specified
	if cmd.Flags().Changed("debug") {
		cfg.API.Debug = debug
	}

	// Request dumps are logged at debug level
	if cfg.API.Debug && cfg.Logging.Level != "trace" {
		cfg.Logging.Level = "debug"
	}

	// Setup logger
	logger = setupLogger(cfg.Logging, cmd.ErrOrStderr())

	strategy, err := cfg.Strategy()
	if err != nil {
		return fmt.Errorf("failed to configure authentication: %w", err)
	}

	opts := []cloudagents.Option{
		cloudagents.WithTimeout(cfg.API.Timeout),
		cloudagents.WithUserAgent(cfg.API.UserAgent),
		cloudagents.WithConcurrency(cfg.Concurrency),
		cloudagents.WithStrategy(strategy),
	}
	if cfg.API.Debug {
		opts = append(opts, cloudagents.WithDebugLogging(true))
	}

	client, err = cloudagents.New(cfg.API.URL, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create Cloud Agents client: %w", err)
	}

	presets = filter.NewManager()
	if err := presets.RegisterFilters(cfg.Presets); err != nil {
		return fmt.Errorf("invalid preset in config: %w", err)
	}

	logger.Debug().
		Str("url", client.BaseURL()).
		Str("strategy", strategy.Name()).
		Strs("presets", presets.Names()).
		Msg("Client initialized")

	return nil
}

// setupLogger configures the zerolog logger writing to out
func setupLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
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
		return zerolog.New(out).With().Timestamp().Logger()
	}

	// Console format; no colour codes unless writing to a terminal
	tty := false
	if f, ok := out.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !tty,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection and credentials",
	Long:  `Test the connection to the Cloud Agents API with the configured credentials and display basic information.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Testing connection to Cloud Agents at %s...\n", client.BaseURL())

	categories, err := client.GetCategories(cmd.Context(), cloudagents.CategoriesOptions{})
	if err != nil {
		if apiErr, ok := cloudagents.AsAPIError(err); ok && apiErr.IsUnauthorized() {
			return fmt.Errorf("credentials rejected by the API: %w", err)
		}
		return fmt.Errorf("failed to reach the API: %w", err)
	}

	fmt.Fprintln(out, "✓ Connection successful!")
	fmt.Fprintf(out, "\nCloud Agents Statistics:\n")
	fmt.Fprintf(out, "- Authentication: %s\n", client.Strategy().Name())
	fmt.Fprintf(out, "- Categories: %d\n", len(categories))

	if names := presets.Names(); len(names) > 0 {
		fmt.Fprintf(out, "\nAvailable presets:\n")
		for _, name := range names {
			fmt.Fprintf(out, "  • %s\n", name)
		}
	}

	return nil
}

// addFilterFlags registers --filter and --preset on a list command
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}

// getFilter determines the filter to use. Priority: command line filter >
// preset. A nil filter keeps every object.
func getFilter() (filter.Filter, error) {
	if filterExpr != "" {
		f, err := filter.CompileFilter(filterExpr)
		if err != nil {
			return nil, fmt.Errorf("invalid filter expression: %w", err)
		}
		return f, nil
	}

	if preset != "" {
		f, err := presets.Get(preset)
		if err != nil {
			return nil, fmt.Errorf("preset '%s' not found in config: %w", preset, err)
		}
		return f, nil
	}

	return nil, nil
}

// printList filters objects and prints them as a table of the given columns
func printList(cmd *cobra.Command, objects []cloudagents.Object, columns ...string) error {
	f, err := getFilter()
	if err != nil {
		return err
	}
	matches := filter.Apply(f, objects)

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, matches)
	}

	if len(matches) == 0 {
		fmt.Fprintln(out, "No results.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	header := make([]string, len(columns))
	for i, column := range columns {
		header[i] = strings.ToUpper(column)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	row := make([]string, len(columns))
	for _, obj := range matches {
		for i, column := range columns {
			row[i] = truncate(obj.String(column), 48)
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%d of %d shown\n", len(matches), len(objects))
	return nil
}

// printJSON writes v as indented JSON
func printJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// truncate shortens s to at most n runes
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// optionalInt returns the flag value when the user set it, nil otherwise
func optionalInt(cmd *cobra.Command, name string, value int) *int {
	if cmd.Flags().Changed(name) {
		return cloudagents.Int(value)
	}
	return nil
}

// optionalBool returns the flag value when the user set it, nil otherwise
func optionalBool(cmd *cobra.Command, name string, value bool) *bool {
	if cmd.Flags().Changed(name) {
		return cloudagents.Bool(value)
	}
	return nil
}
