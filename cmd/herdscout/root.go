package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/herdscout/herdscout/browser"
	"github.com/herdscout/herdscout/config"
	"github.com/herdscout/herdscout/export"
	"github.com/herdscout/herdscout/form"
	"github.com/herdscout/herdscout/query"
	"github.com/herdscout/herdscout/search"
	"github.com/spf13/cobra"
)

var (
	exportFormat  string
	outputFile    string
	showSummary   bool
	semantic      bool
	queryText     string
	listLocations bool
	formInfoKind  string
)

var rootCmd = &cobra.Command{
	Use:   "herdscout",
	Short: "Search the Shorthorn registry's ranch, animal and EPD records",
	Long: `herdscout drives the Digital Beef registry's search forms through a
headless browser. The form layout is discovered from the live page on every
run; filters are matched fuzzily against the site's current dropdown options.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch {
		case listLocations:
			return locationsCmd.RunE(cmd, nil)
		case formInfoKind != "":
			return formInfoCmd.RunE(cmd, []string{formInfoKind})
		case semantic && queryText != "":
			return runSemantic(queryText)
		}
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&exportFormat, "export", "", "export format: csv or json")
	rootCmd.PersistentFlags().StringVar(&outputFile, "output", "", "export filename (default: auto-generated with timestamp)")
	rootCmd.PersistentFlags().BoolVar(&showSummary, "summary", false, "print an aggregate summary under the results")
	rootCmd.Flags().BoolVar(&semantic, "semantic", false, "interpret --query as a free-text search request")
	rootCmd.Flags().StringVar(&queryText, "query", "", "free-text query, used with --semantic")
	rootCmd.Flags().BoolVar(&listLocations, "list-locations", false, "shorthand for the locations subcommand")
	rootCmd.Flags().StringVar(&formInfoKind, "form-info", "", "shorthand for the form-info subcommand (ranch, animal or epd)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runSemantic classifies a free-text query and dispatches it to the right
// search.
func runSemantic(q string) error {
	switch query.ClassifyIntent(q) {
	case query.IntentEPD:
		filter := query.ParseEPD(q)
		if filter.Empty() {
			return fmt.Errorf("could not extract any trait window from %q", q)
		}
		return withSearcher(func(ctx context.Context, s *search.Searcher) error {
			result, err := s.SearchEPD(ctx, filter)
			if err != nil {
				return err
			}
			return output(result, form.KindEPD)
		})
	case query.IntentAnimal:
		filter := query.ParseAnimal(q)
		if filter.Value == "" {
			return fmt.Errorf("could not extract a search value from %q", q)
		}
		return withSearcher(func(ctx context.Context, s *search.Searcher) error {
			result, err := s.SearchAnimal(ctx, filter)
			if err != nil {
				return err
			}
			return output(result, form.KindAnimal)
		})
	default:
		filter := query.ParseRanch(q)
		if filter.Empty() {
			return fmt.Errorf("could not extract any ranch filter from %q", q)
		}
		return withSearcher(func(ctx context.Context, s *search.Searcher) error {
			result, err := s.SearchRanch(ctx, filter)
			if err != nil {
				return err
			}
			return output(result, form.KindRanch)
		})
	}
}

// withSearcher handles the shared lifecycle of one CLI search: config,
// logging, browser launch, signal-aware context, and guaranteed browser
// shutdown.
func withSearcher(fn func(context.Context, *search.Searcher) error) error {
	cfg := config.Load()
	initLogger(cfg.Log)

	session, err := browser.NewSession(cfg.Browser)
	if err != nil {
		return err
	}
	defer session.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return fn(ctx, search.New(session, cfg.Site, cfg.Browser.Proxy))
}

// output renders a search result to the terminal and, when requested,
// exports it.
func output(result *search.Result, kind form.Kind) error {
	for _, field := range result.SkippedFields {
		fmt.Fprintf(os.Stderr, "note: field %s not present on the page, filter skipped\n", field)
	}

	fmt.Println(export.RenderTable(result.Table))
	fmt.Printf("%d %s result(s) in %dms\n", result.Table.Len(), kind, result.Timing.TotalMs)

	if showSummary {
		fmt.Println()
		fmt.Println(export.Summarize(result.Table))
	}

	if exportFormat != "" {
		cfg := config.Load()
		exp := &export.Exporter{Dir: cfg.Export.Dir, Prefix: cfg.Export.FilePrefix}
		path, err := exp.Write(result.Table, exportFormat, outputFile)
		if err != nil {
			return err
		}
		fmt.Printf("Results exported to %s\n", path)
	}

	return nil
}

// initLogger configures slog based on the LogConfig. CLI runs log to stderr
// so result tables on stdout stay machine-readable.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
