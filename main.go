package main

import (
	"call-distributions/config"
	"call-distributions/formatter"
	"call-distributions/logging"
	"call-distributions/metrics"
	"call-distributions/output"
	"call-distributions/pipeline"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/spf13/cobra"
)

const jobName = "call_distributions"

var (
	configPath  string
	inputPath   string
	outputDir   string
	year        int
	format      string
	charts      bool
	workbook    bool
	logLevel    string
	logFormat   string
	metricsAddr string
	pushURL     string
	wait        bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "calldist [input.tsv]",
		Short: "Clean a police call log and derive simulation input distributions",
		Long: "calldist reads a tab-separated police call log, rejects rows with empty fields,\n" +
			"malformed timestamps or anomalous durations, and writes the cleaned log, the\n" +
			"hourly call volume ranking and the arrival hour, wait, travel and duration\n" +
			"distributions.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runCmd,
	}

	flags := rootCmd.Flags()
	flags.StringVar(&configPath, "config", "calldist.yaml", "YAML config file (optional)")
	flags.StringVarP(&inputPath, "input", "i", "", "input TSV call log (default raw_police_data.csv)")
	flags.StringVarP(&outputDir, "out", "o", "", "output directory (default .)")
	flags.IntVar(&year, "year", 0, "only process calls received in this year (0 = all years)")
	flags.StringVar(&format, "format", "", "report format: text|json|csv (default text)")
	flags.BoolVar(&charts, "charts", false, "render PNG charts of the distributions")
	flags.BoolVar(&workbook, "xlsx", false, "write an Excel workbook with the ranking and tally")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error (default info)")
	flags.StringVar(&logFormat, "log-format", "", "log format: text|json (default text)")
	flags.StringVar(&metricsAddr, "metrics-addr", "", "address to expose Prometheus metrics (e.g., :9090)")
	flags.StringVar(&pushURL, "push-url", "", "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	flags.BoolVar(&wait, "wait", false, "keep process running after completion to allow for metric scraping")

	return rootCmd
}

func runCmd(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cmd, cfg, args)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(cfg.Logging, cmd.ErrOrStderr())
	slog.SetDefault(logger)

	if cfg.Metrics.Addr != "" {
		go serveMetrics(cfg.Metrics.Addr, logger)
	}

	file, err := os.Open(cfg.Input)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer file.Close()

	logger.Info("Starting run",
		slog.String("input", cfg.Input),
		slog.String("output_dir", cfg.OutputDir),
		slog.Int("year", cfg.Year))

	writer := &output.Writer{
		Dir:      cfg.OutputDir,
		Charts:   cfg.Charts,
		Workbook: cfg.Workbook,
		Logger:   logger,
	}
	res, err := pipeline.New(cfg.YearFilter(), logger).Run(file, writer)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), formatter.Format(cfg.Format, res))

	if cfg.Metrics.PushURL != "" {
		if err := push.New(cfg.Metrics.PushURL, jobName).Gatherer(metrics.Registry).Push(); err != nil {
			logger.Error("Error pushing to Pushgateway", slog.String("error", err.Error()))
		} else {
			logger.Info("Metrics pushed to Pushgateway", slog.String("url", cfg.Metrics.PushURL))
		}
	}

	if cfg.Metrics.Wait && cfg.Metrics.Addr != "" {
		logger.Info("Process kept alive for metric scraping. Press Ctrl+C to exit.")
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
	} else if cfg.Metrics.Addr != "" && cfg.Metrics.PushURL == "" {
		// Give a scraper a moment to collect the final values.
		time.Sleep(100 * time.Millisecond)
	}
	return nil
}

// applyFlags overrides config values with flags set on the command line.
// A positional argument is the input path.
func applyFlags(cmd *cobra.Command, cfg *config.Config, args []string) {
	flags := cmd.Flags()
	if len(args) == 1 {
		cfg.Input = args[0]
	}
	if flags.Changed("input") {
		cfg.Input = inputPath
	}
	if flags.Changed("out") {
		cfg.OutputDir = outputDir
	}
	if flags.Changed("year") {
		cfg.Year = year
	}
	if flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Changed("charts") {
		cfg.Charts = charts
	}
	if flags.Changed("xlsx") {
		cfg.Workbook = workbook
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = logFormat
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr = metricsAddr
	}
	if flags.Changed("push-url") {
		cfg.Metrics.PushURL = pushURL
	}
	if flags.Changed("wait") {
		cfg.Metrics.Wait = wait
	}
}

func serveMetrics(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	logger.Info("Metrics server listening", slog.String("addr", addr+"/metrics"))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("Metrics server error", slog.String("error", err.Error()))
	}
}
