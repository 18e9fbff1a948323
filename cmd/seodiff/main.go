package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/seodiff/seodiff"
	"github.com/seodiff/seodiff/diff"
	"github.com/seodiff/seodiff/fs"
	"github.com/seodiff/seodiff/goquery"
	seohttp "github.com/seodiff/seodiff/http"
	"github.com/seodiff/seodiff/job"
	"github.com/seodiff/seodiff/rod"
	seoslog "github.com/seodiff/seodiff/slog"
	"github.com/seodiff/seodiff/sqlite"
)

// defaultHostRPS is the per-host politeness limit. The concurrency flag
// bounds total parallelism; this keeps a batch that targets a single site
// from hammering it.
const defaultHostRPS = 2.0

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("seodiff"),
		kong.Description("Compare page content with and without JavaScript rendering"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.ConfigFile != "" {
		cfg, err := LoadConfig(cli.ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load config file %q: %w", cli.ConfigFile, err)
		}
		cli.ApplyConfig(cfg, setFlags(kongCtx))
	}

	if cli.InputFile == "" && cli.Sitemap == "" {
		return fmt.Errorf("either an input file or --sitemap is required")
	}
	if cli.InputFile != "" && cli.Sitemap != "" {
		return fmt.Errorf("input file and --sitemap are mutually exclusive")
	}

	format, err := seodiff.ParseFormat(cli.Format)
	if err != nil {
		return err
	}
	waitStrategy, err := seodiff.ParseWaitStrategy(cli.WaitStrategy)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	// Collect the URLs to process.
	var urls []string
	if cli.Sitemap != "" {
		fmt.Fprintf(stdout, "Discovering URLs from: %s\n", cli.Sitemap)
		var source seodiff.URLSource = seohttp.NewSitemapSource(nil)
		if cli.Verbose {
			source = seoslog.NewLoggingSource(source, logger)
		}
		urls, err = source.Discover(ctx, cli.Sitemap)
		if err != nil {
			return fmt.Errorf("sitemap discovery failed: %w", err)
		}
	} else {
		fmt.Fprintf(stdout, "Reading URLs from: %s\n", cli.InputFile)
		urls, err = readURLsFromFile(cli.InputFile)
		if err != nil {
			return err
		}
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs to process")
	}
	fmt.Fprintf(stdout, "Found %d URLs to process\n\n", len(urls))

	// Wire fetchers.
	rawOpts := []seohttp.Option{seohttp.WithTimeout(cli.Timeout)}
	if cli.UserAgent != "" {
		rawOpts = append(rawOpts, seohttp.WithUserAgent(cli.UserAgent))
	}
	var rawFetcher seodiff.RawFetcher = seohttp.NewFetcher(rawOpts...)

	rodOpts := []rod.Option{
		rod.WithFetchTimeout(cli.Timeout),
		rod.WithWaitStrategy(waitStrategy),
	}
	if cli.UserAgent != "" {
		rodOpts = append(rodOpts, rod.WithUserAgent(cli.UserAgent))
	}
	rodFetcher, err := rod.NewFetcher(rodOpts...)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer rodFetcher.Close()
	var renderedFetcher seodiff.RenderedFetcher = rodFetcher

	if cli.Verbose {
		rawFetcher = seoslog.NewLoggingRawFetcher(rawFetcher, logger)
		renderedFetcher = seoslog.NewLoggingRenderedFetcher(renderedFetcher, logger)
	}

	runner := &job.Runner{
		RawFetcher:      rawFetcher,
		RenderedFetcher: renderedFetcher,
		Extractor:       goquery.NewExtractor(),
		Differ:          diff.NewDiffer(),
		Limiter:         job.NewHostLimiter(defaultHostRPS),
		Concurrency:     cli.Concurrency,
	}

	var progress job.ProgressFunc
	if cli.Verbose {
		progress = func(event job.ProgressEvent) {
			switch event.Type {
			case job.ProgressCompleted, job.ProgressFailed:
				fmt.Fprintf(stderr, "[%d/%d] %s\n", event.Completed, event.Total, event.URL)
			}
		}
	}

	fmt.Fprintln(stdout, "Processing URLs...")
	result, err := runner.Run(ctx, urls, progress)
	if err != nil {
		return err
	}

	printResultsSummary(stdout, result)

	fmt.Fprintf(stdout, "\nSaving results to %s file...\n", format)
	store := fs.NewStore(cli.OutputDir)
	path, err := store.SaveResult(ctx, result, format)
	if err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}
	fmt.Fprintf(stdout, "Results saved to: %s\n", path)

	if cli.DB != "" {
		if err := recordHistory(ctx, cli.DB, result, format, stdout); err != nil {
			return err
		}
	}

	if result.URLsFailed > 0 {
		return fmt.Errorf("%d of %d URLs failed", result.URLsFailed, result.URLsProcessed)
	}

	return nil
}

// recordHistory persists the run into the history database.
func recordHistory(ctx context.Context, dbPath string, result *seodiff.JobResult, format seodiff.Format, stdout io.Writer) error {
	db := sqlite.NewDB(dbPath)
	if err := db.Open(); err != nil {
		return fmt.Errorf("failed to open history database at %q: %w", dbPath, err)
	}
	defer db.Close()

	jobID, err := sqlite.NewStore(db).SaveResult(ctx, result, format)
	if err != nil {
		return fmt.Errorf("failed to record run history: %w", err)
	}
	fmt.Fprintf(stdout, "Run recorded as job %s\n", jobID)
	return nil
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	InputFile    string        `arg:"" optional:"" help:"Text file containing one URL per line"`
	OutputDir    string        `short:"o" default:"." help:"Directory to save output files (default: current directory)"`
	Format       string        `short:"f" default:"csv" enum:"csv,json" help:"Output format"`
	Concurrency  int           `short:"c" default:"3" help:"Maximum number of URLs to process concurrently"`
	Timeout      time.Duration `short:"t" default:"30s" help:"Timeout for each fetch/render"`
	WaitStrategy string        `short:"w" default:"network_idle" enum:"network_idle,load,timeout" help:"Wait strategy for JS rendering"`
	UserAgent    string        `help:"Custom User-Agent header for both fetchers"`
	Sitemap      string        `help:"Discover URLs from this base URL's sitemap instead of an input file"`
	DB           string        `name:"db" help:"SQLite database path to record run history"`
	ConfigFile   string        `name:"config" type:"path" help:"YAML config file"`
	Verbose      bool          `short:"v" help:"Log fetch activity to stderr"`
}
