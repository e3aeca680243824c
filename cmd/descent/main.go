// Package main provides the descent command line trainer.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/klauspost/cpuid/v2"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/descent/internal/config"
	"github.com/born-ml/descent/internal/history"
	"github.com/born-ml/descent/internal/model"
	"github.com/born-ml/descent/internal/train"
)

const version = "v0.1.0"

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "descent %s - gradient descent from scratch\n\n", version)
	fmt.Fprintln(out, "Usage: descent [flags] <command>")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  linear      Linear regression on Boston housing")
	fmt.Fprintln(out, "  binary      Binary logistic regression on Iris")
	fmt.Fprintln(out, "  multiclass  Multiclass logistic regression on Iris")
	fmt.Fprintln(out, "  network     ReLU network on MNIST")
	fmt.Fprintln(out, "  run         Run the experiment described by -config")
	fmt.Fprintln(out, "  history     List recorded runs, or show one: history [run-id]")
	fmt.Fprintln(out, "  version     Show version")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Flags:")
	flag.PrintDefaults()
}

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (required by run)")
	iterations := flag.Int("iters", 0, "Number of training iterations")
	lr := flag.Float64("lr", 0, "Learning rate")
	hidden := flag.String("hidden", "", "Comma separated hidden layer widths, e.g. 128,128")
	batchSize := flag.Int("batch", 0, "Mini-batch size for networks")
	reportEvery := flag.Int("report", 0, "Report progress every N iterations")
	seed := flag.Int64("seed", 0, "PRNG seed")
	dataDir := flag.String("data", "", "Dataset cache directory")
	baseURL := flag.String("base-url", "", "Override the dataset download URL")
	stable := flag.Bool("stable-softmax", false, "Subtract the row maximum before softmax")
	standardize := flag.Bool("standardize", false, "Standardize feature columns")
	synthetic := flag.Bool("synthetic", false, "Use generated data instead of downloading")
	historyPath := flag.String("history", "", "Record runs in this SQLite database")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}
	command := flag.Arg(0)
	switch {
	case command == "version":
		fmt.Printf("descent %s\n", version)
		return
	case command == "history":
		if err := showHistory(context.Background(), os.Stdout, *historyPath, flag.Args()[1:]); err != nil {
			log.Fatalf("history: %v", err)
		}
		return
	case flag.NArg() != 1:
		usage()
		os.Exit(2)
	}

	widths, err := parseHidden(*hidden)
	if err != nil {
		log.Fatalf("invalid -hidden: %v", err)
	}

	cfg, err := loadConfig(command, *cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg.ApplyOverrides(config.Overrides{
		Iterations:    *iterations,
		LearningRate:  *lr,
		Hidden:        widths,
		BatchSize:     *batchSize,
		ReportEvery:   *reportEvery,
		Seed:          *seed,
		DataDir:       *dataDir,
		BaseURL:       *baseURL,
		StableSoftmax: *stable,
		Standardize:   *standardize,
		Synthetic:     *synthetic,
		History:       *historyPath,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	runID := uuid.New().String()
	log.SetPrefix(fmt.Sprintf("[%s] ", runID[:8]))
	log.Printf("run=%s kind=%s iters=%d lr=%v seed=%d", runID, cfg.Kind, cfg.Iterations, cfg.LearningRate, cfg.Seed)
	log.Printf("cpu=%q physical_cores=%d", cpuid.CPU.BrandName, cpuid.CPU.PhysicalCores)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, runID); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Printf("interrupted")
			return
		}
		log.Fatalf("training failed: %v", err)
	}
}

// loadConfig returns the config for command: the file given by -config for
// run, the reference defaults for a model kind otherwise.
func loadConfig(command, path string) (*config.Config, error) {
	if command == "run" {
		if path == "" {
			return nil, errors.New("run needs -config")
		}
		return config.Load(path)
	}

	kind, err := model.ParseKind(command)
	if err != nil {
		return nil, err
	}
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		if cfg.Kind != kind.String() {
			return nil, fmt.Errorf("config %s is for %s, not %s", path, cfg.Kind, kind)
		}
		return cfg, nil
	}
	cfg := config.Default(kind)
	return &cfg, nil
}

// run trains one experiment and logs the final held-out score.
func run(ctx context.Context, cfg *config.Config, runID string) error {
	rng := rand.New(rand.NewSource(cfg.Seed))

	exp, err := prepare(ctx, cfg, rng)
	if err != nil {
		return err
	}
	log.Printf("topology=%s inputs=%d outputs=%d hidden=%v train_rows=%d",
		exp.top.Kind, exp.top.Inputs, exp.top.Outputs, exp.top.Hidden, exp.data.Train.Rows())

	reporter := train.Reporter(train.NewTextReporter(os.Stdout))
	var rec *history.Recorder
	if cfg.History != "" {
		store, err := history.Open(ctx, cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()

		text, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		rec, err = store.Start(ctx, runID, cfg.Kind, string(text))
		if err != nil {
			return err
		}
		reporter = train.MultiReporter(reporter, rec)
	}

	finish := func(iterations int, err error) {
		if rec == nil {
			return
		}
		if ferr := rec.Finish(ctx, iterations, err); ferr != nil {
			log.Printf("record run: %v", ferr)
		}
	}

	tr, err := train.New(train.Config{
		Iterations:   cfg.Iterations,
		LearningRate: cfg.LearningRate,
		BatchSize:    cfg.BatchSize,
		ReportEvery:  cfg.ReportEvery,
	}, exp.top, exp.data, train.WithRand(rng), train.WithReporter(reporter))
	if err != nil {
		finish(0, err)
		return err
	}

	err = tr.Train(ctx)
	log.Printf("completed %d/%d iterations", tr.Iteration(), cfg.Iterations)
	finish(tr.Iteration(), err)
	if err != nil {
		return err
	}

	if exp.data.HasEval() {
		loss, acc, hasAcc, err := tr.Evaluate(exp.data.Eval)
		if err != nil {
			return err
		}
		if hasAcc {
			log.Printf("eval loss=%.6f accuracy=%.2f%%", loss, acc*100)
		} else {
			log.Printf("eval loss=%.6f", loss)
		}
	}
	return nil
}

// parseHidden parses a comma separated list of positive widths.
func parseHidden(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	widths := make([]int, len(parts))
	for i, p := range parts {
		w, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		if w <= 0 {
			return nil, fmt.Errorf("width %d must be > 0", w)
		}
		widths[i] = w
	}
	return widths, nil
}
