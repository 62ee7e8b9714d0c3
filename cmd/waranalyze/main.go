// Package main provides the waranalyze CLI, which runs bootstrap tests on
// the flip-count samples written by warsim.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/signalnine/wartime/gosim/analysis"
	"github.com/signalnine/wartime/gosim/config"
	"github.com/signalnine/wartime/gosim/sampleio"
	"github.com/signalnine/wartime/gosim/simulation"
)

// Version information (set by build flags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const envFile = ".env"

var (
	files       string
	sampleSet   string
	reportPath  string
	bins        int
	verbose     bool
	showVersion bool
)

// namedSample is a sample with the label it is reported under.
type namedSample struct {
	Name   string
	Values []int
}

// Report is the JSON document written by -report.
type Report struct {
	RunID     string           `json:"run_id"`
	CreatedAt time.Time        `json:"created_at"`
	Seed      uint64           `json:"seed"`
	Samples   []reportSample   `json:"samples"`
	Bootstrap *analysis.Result `json:"bootstrap"`
}

type reportSample struct {
	Name    string           `json:"name"`
	Summary analysis.Summary `json:"summary"`
}

func parseFlags(s *config.Settings) {
	flag.StringVar(&s.OutputDir, "dir", s.OutputDir, "Directory holding the sample files")
	flag.StringVar(&files, "files", "", "Comma-separated CSV sample files, in test order (default: the five standard variants)")
	flag.StringVar(&sampleSet, "fb", "", "Read samples from a FlatBuffers sample set instead of CSV files")
	flag.IntVar(&s.Resamples, "resamples", s.Resamples, "Bootstrap trials per pair (0 = sample size)")
	flag.Int64Var(&s.Seed, "seed", s.Seed, "Random seed (0 = use current time)")
	flag.IntVar(&s.Workers, "workers", s.Workers, "Number of worker goroutines (0 = auto-detect CPU count)")
	flag.StringVar(&reportPath, "report", "", "Write a JSON report to this path")
	flag.IntVar(&bins, "bins", 10, "Histogram bins per sample (0 = no histogram)")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose output")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "waranalyze",
		ReportTimestamp: true,
	})

	settings, err := config.Load(envFile)
	if err != nil {
		logger.Fatal("Invalid configuration", "err", err)
	}
	parseFlags(&settings)

	if showVersion {
		fmt.Printf("waranalyze %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	if err := settings.Validate(); err != nil {
		logger.Fatal("Invalid configuration", "err", err)
	}
	if settings.Seed == 0 {
		settings.Seed = time.Now().UnixNano()
	}
	seed := uint64(settings.Seed)

	samples, err := loadSamples(settings.OutputDir)
	if err != nil {
		logger.Fatal("Error loading samples", "err", err)
	}
	for _, s := range samples {
		logger.Debug("Loaded sample", "name", s.Name, "n", len(s.Values))
	}

	values := make([][]int, len(samples))
	for i, s := range samples {
		values[i] = s.Values
		printSample(s)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lastPct := -1
	cfg := analysis.Config{
		Resamples: settings.Resamples,
		Seed:      seed,
		Workers:   settings.Workers,
		Progress: func(done, total int) {
			pct := done * 100 / total
			if pct == lastPct {
				return
			}
			lastPct = pct
			fmt.Printf("\rBootstrapping %3d%%", pct)
			if done == total {
				fmt.Println()
			}
		},
	}

	start := time.Now()
	result, err := analysis.CompareSuccessive(ctx, values, cfg)
	switch {
	case errors.Is(err, context.Canceled):
		fmt.Println("\n\nInterrupted! No results were produced.")
		os.Exit(130)
	case errors.Is(err, analysis.ErrMismatchedSampleLength):
		logger.Fatal("Samples must all be the same size", "err", err)
	case err != nil:
		logger.Fatal("Bootstrap failed", "err", err)
	}
	logger.Info("Bootstrap complete", "pairs", len(result.Pairs), "elapsed", time.Since(start).Round(time.Millisecond))

	printPValues(samples, result)

	if reportPath != "" {
		report := Report{
			RunID:     uuid.New().String(),
			CreatedAt: time.Now().UTC(),
			Seed:      seed,
			Bootstrap: result,
		}
		for _, s := range samples {
			report.Samples = append(report.Samples, reportSample{Name: s.Name, Summary: analysis.Summarize(s.Values)})
		}
		if err := sampleio.WriteJSON(reportPath, report); err != nil {
			logger.Fatal("Error writing report", "err", err)
		}
		logger.Info("Report saved", "run_id", report.RunID, "path", reportPath)
	}
}

// loadSamples reads the samples named by -fb or -files, falling back to
// the standard variant files in dir.
func loadSamples(dir string) ([]namedSample, error) {
	if sampleSet != "" {
		records, err := sampleio.ReadSampleSetFile(sampleSet)
		if err != nil {
			return nil, err
		}
		out := make([]namedSample, len(records))
		for i, r := range records {
			out[i] = namedSample{Name: r.Variant, Values: r.Flips}
		}
		return out, nil
	}

	var names []string
	if files == "" {
		for _, v := range simulation.StandardVariants() {
			names = append(names, v.File)
		}
	} else {
		for _, f := range strings.Split(files, ",") {
			names = append(names, sampleio.NormalizeCSVName(f, "default_times"))
		}
	}

	out := make([]namedSample, 0, len(names))
	for _, name := range names {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, name)
		}
		sample, err := sampleio.ReadCSVFile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, namedSample{Name: strings.TrimSuffix(filepath.Base(name), ".csv"), Values: sample})
	}
	return out, nil
}

func printSample(s namedSample) {
	sum := analysis.Summarize(s.Values)
	fmt.Printf("%s (n=%d)\n", s.Name, sum.N)
	fmt.Printf("  mean %.2f  variance %.2f  median %.1f  range %d-%d\n",
		sum.Mean, sum.Variance, sum.Median, sum.Min, sum.Max)

	hist := analysis.Histogram(s.Values, bins)
	peak := 0
	for _, b := range hist {
		peak = max(peak, b.Count)
	}
	for _, b := range hist {
		bar := 0
		if peak > 0 {
			bar = b.Count * 40 / peak
		}
		fmt.Printf("  %7.0f-%-7.0f %5d %s\n", b.Lo, b.Hi, b.Count, strings.Repeat("#", bar))
	}
	fmt.Println()
}

func printPValues(samples []namedSample, result *analysis.Result) {
	fmt.Println()
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("                    BOOTSTRAP P-VALUES")
	fmt.Println("════════════════════════════════════════════════════════════")
	for i, p := range result.MeanPValues {
		fmt.Printf("  H0_%dm  %-22s vs %-22s  p = %.4f\n", i+1, samples[i].Name, samples[i+1].Name, p)
	}
	for i, p := range result.VarPValues {
		fmt.Printf("  H0_%dv  %-22s vs %-22s  p = %.4f\n", i+1, samples[i].Name, samples[i+1].Name, p)
	}
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()
}
