// Package main provides the warsim CLI, which simulates games of War under
// five rule variants and writes the flip-count sample of each.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
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

const (
	manifestName  = "manifest.json"
	sampleSetName = "samples.fb"
)

// envFile supplies WARTIME_* defaults when present.
const envFile = ".env"

var (
	verbose     bool
	showVersion bool
)

func parseFlags(s *config.Settings) {
	flag.IntVar(&s.Trials, "trials", s.Trials, "Number of games simulated per variant")
	flag.Int64Var(&s.Seed, "seed", s.Seed, "Random seed (0 = use current time)")
	flag.IntVar(&s.Workers, "workers", s.Workers, "Number of worker goroutines (0 = auto-detect CPU count, 1 = serial)")
	flag.StringVar(&s.OutputDir, "output-dir", s.OutputDir, "Directory for sample files and the run manifest")
	flag.StringVar(&s.Format, "format", s.Format, "Sample file format (csv, fb, both)")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose output")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "warsim",
		ReportTimestamp: true,
	})

	settings, err := config.Load(envFile)
	if err != nil {
		logger.Fatal("Invalid configuration", "err", err)
	}
	parseFlags(&settings)

	if showVersion {
		fmt.Printf("warsim %s (built %s)\n", Version, BuildTime)
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

	variants := simulation.StandardVariants()
	printBanner(settings, variants)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nInterrupted! No samples were written.")
		os.Exit(130)
	}()

	startTime := time.Now()
	lastPct := -1
	results, err := simulation.RunVariants(variants, settings.Trials, seed, settings.Workers,
		func(v simulation.Variant, done, total int) {
			pct := done * 100 / total
			if pct == lastPct {
				return
			}
			lastPct = pct
			fmt.Printf("\rSimulating %-22s %3d%%", v.Name, pct)
			if done == total {
				fmt.Println()
				lastPct = -1
			}
		})
	if err != nil {
		logger.Fatal("Simulation failed", "err", err)
	}
	logger.Info("Simulation complete", "variants", len(variants), "trials", settings.Trials,
		"elapsed", formatDuration(time.Since(startTime)))

	if err := os.MkdirAll(settings.OutputDir, 0755); err != nil {
		logger.Fatal("Error creating output directory", "dir", settings.OutputDir, "err", err)
	}

	manifest := sampleio.NewManifest(seed, settings.Trials)
	records := make([]sampleio.Record, len(variants))
	for i, v := range variants {
		vm := sampleio.VariantManifest{
			Name:       v.Name,
			WarDeposit: v.Rules.WarDeposit,
			Reduction:  v.Rules.Reduction,
			Seed:       results[i].Seed,
			Summary:    analysis.Summarize(results[i].Sample),
		}
		if settings.Format != config.FormatFB {
			path := filepath.Join(settings.OutputDir, v.File)
			if err := sampleio.WriteCSVFile(path, results[i].Sample); err != nil {
				logger.Fatal("Error writing sample", "variant", v.Name, "err", err)
			}
			vm.File = v.File
			logger.Debug("Wrote sample", "variant", v.Name, "path", path)
		}
		manifest.Variants = append(manifest.Variants, vm)
		records[i] = sampleio.Record{
			Variant:    v.Name,
			WarDeposit: v.Rules.WarDeposit,
			Reduction:  v.Rules.Reduction,
			Seed:       results[i].Seed,
			Flips:      results[i].Sample,
		}
	}

	if settings.Format != config.FormatCSV {
		path := filepath.Join(settings.OutputDir, sampleSetName)
		if err := sampleio.WriteSampleSetFile(path, records); err != nil {
			logger.Fatal("Error writing sample set", "err", err)
		}
		manifest.SampleSet = sampleSetName
		logger.Debug("Wrote sample set", "path", path)
	}

	manifestPath := filepath.Join(settings.OutputDir, manifestName)
	if err := sampleio.WriteJSON(manifestPath, manifest); err != nil {
		logger.Fatal("Error writing manifest", "err", err)
	}
	logger.Info("Run saved", "run_id", manifest.RunID, "manifest", manifestPath)

	printSummary(variants, results)
}

func printBanner(s config.Settings, variants []simulation.Variant) {
	fmt.Println()
	fmt.Println("╔════════════════════════════════════════════════════════════╗")
	fmt.Println("║                 War Game-Length Simulator                  ║")
	fmt.Println("╚════════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Trials:         %d per variant\n", s.Trials)
	fmt.Printf("  Variants:       %d\n", len(variants))
	fmt.Printf("  Seed:           %d\n", s.Seed)
	fmt.Printf("  Workers:        %d (0=auto)\n", s.Workers)
	fmt.Printf("  Output:         %s (%s)\n", s.OutputDir, s.Format)
	fmt.Println()
}

func printSummary(variants []simulation.Variant, results []simulation.BatchResult) {
	fmt.Println()
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("                     SIMULATION SUMMARY")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Printf("  %-22s %9s %7s %6s %6s %8s\n", "Variant", "Avg", "Median", "Min", "Max", "Removed")
	for i, v := range variants {
		st := results[i].Stats
		fmt.Printf("  %-22s %9.2f %7d %6d %6d %8d\n",
			v.Name, st.AvgFlips, st.MedianFlips, st.MinFlips, st.MaxFlips, st.TotalRemoved)
	}
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
