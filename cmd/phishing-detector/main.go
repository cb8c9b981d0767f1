package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/AL-ANWARTECH/phishing-detector/internal/adapters/filter"
	"github.com/AL-ANWARTECH/phishing-detector/internal/core"
	"github.com/AL-ANWARTECH/phishing-detector/internal/di"
	"github.com/AL-ANWARTECH/phishing-detector/internal/factory"
	"github.com/AL-ANWARTECH/phishing-detector/internal/training"
	"go.uber.org/zap"
)

func main() {
	flags := di.ParseFlags()

	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

func run(
	flags *di.CLIFlags,
	logger *zap.Logger,
	service *core.PhishingDetectorService,
	store core.ResultStore,
	detectorFactory *factory.DetectorFactory,
) error {
	defer logger.Sync()
	ctx := context.Background()

	// Explicit training run
	if flags.Train || flags.TrainFile != "" {
		var examples []core.LabeledExample
		switch {
		case flags.TrainFile != "":
			loaded, err := training.LoadData(flags.TrainFile)
			if err != nil {
				return err
			}
			examples = loaded
		case flags.TrainSize > 0:
			examples = training.GenerateData(flags.TrainSize, 1)
		default:
			examples = training.SampleData()
		}
		if err := service.Train(examples); err != nil {
			return fmt.Errorf("training failed: %w", err)
		}
		fmt.Printf("Trained classifier on %d examples\n", len(examples))

		if flags.SaveModel {
			if err := detectorFactory.SaveModel(service); err != nil {
				return err
			}
			fmt.Println("Model saved")
		}

		// Training-only invocation; don't wait on stdin
		if flags.InputFile == "" && flags.InputDir == "" && flags.History == 0 && !flags.Evaluate {
			return nil
		}
	}

	// Evaluation mode
	if flags.Evaluate {
		m := training.Evaluate(service.Classifier(), training.SampleData())
		fmt.Printf("=== Model Evaluation Results ===\n")
		fmt.Printf("accuracy: %.3f\n", m.Accuracy)
		fmt.Printf("precision: %.3f\n", m.Precision)
		fmt.Printf("recall: %.3f\n", m.Recall)
		fmt.Printf("f1: %.3f\n", m.F1)
		fmt.Printf("examples: %d\n", m.Examples)
		return nil
	}

	// History display mode
	if flags.History > 0 {
		return showHistory(ctx, store, flags.History)
	}

	cliFilter, err := filter.NewCliFilter(service, store, logger, flags.Verbose)
	if err != nil {
		return err
	}

	// Directory batch mode
	if flags.InputDir != "" {
		return analyzeDirectory(ctx, cliFilter, flags.InputDir)
	}

	// Single email from file or stdin
	rawEmail, err := readEmail(flags.InputFile, logger)
	if err != nil {
		return err
	}

	_, err = cliFilter.ProcessEmail(ctx, rawEmail)
	return err
}

// readEmail loads raw email text from the given file, or stdin when empty
func readEmail(inputFile string, logger *zap.Logger) (string, error) {
	if inputFile != "" {
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		logger.Info("Reading email from file", zap.String("file", inputFile))
		return string(data), nil
	}

	logger.Info("Reading email from stdin")
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// analyzeDirectory runs every recognized email file in a directory through
// the detector and prints a summary
func analyzeDirectory(ctx context.Context, cliFilter *filter.CliFilter, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	processed, phishing := 0, 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".eml" && ext != ".txt" && ext != ".email" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Printf("Skipping %s: %v\n", entry.Name(), err)
			continue
		}

		fmt.Printf("\nAnalyzing: %s\n", entry.Name())
		result, err := cliFilter.ProcessEmail(ctx, string(data))
		if err != nil {
			continue
		}
		processed++
		if result.IsPhishing {
			phishing++
		}
	}

	fmt.Printf("\n=== Directory Analysis Complete ===\n")
	fmt.Printf("Processed %d files\n", processed)
	fmt.Printf("Phishing emails detected: %d\n", phishing)
	return nil
}

// showHistory prints the most recent persisted analysis results
func showHistory(ctx context.Context, store core.ResultStore, limit int) error {
	history, err := store.History(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(history) == 0 {
		fmt.Println("No analysis history available.")
		return nil
	}

	fmt.Printf("=== Last %d Analysis Results ===\n", len(history))
	for i, item := range history {
		status := "SAFE"
		if item.IsPhishing {
			status = "PHISHING"
		}
		fmt.Printf("%d. %s - Score: %.2f%% - %s\n", i+1, status, item.ConfidenceScore,
			item.AnalyzedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
