package di

import (
	"flag"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/AL-ANWARTECH/phishing-detector/internal/config"
	"github.com/AL-ANWARTECH/phishing-detector/internal/core"
	"github.com/AL-ANWARTECH/phishing-detector/internal/factory"
	"github.com/AL-ANWARTECH/phishing-detector/internal/logging"
)

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	// Detection flags
	Threshold  float64
	RuleWeight float64
	MLWeight   float64
	Whitelist  string

	// Model flags
	ModelPath string
	SaveModel bool
	Train     bool
	TrainFile string
	TrainSize int
	Evaluate  bool

	// Store flags
	StoreType  string
	SQLitePath string
	History    int

	// Input flags
	InputFile  string
	InputDir   string
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	flags := &CLIFlags{}

	// Detection flags
	flag.Float64Var(&flags.Threshold, "threshold", 50, "Hybrid score above which an email is phishing")
	flag.Float64Var(&flags.RuleWeight, "rule-weight", 0.3, "Weight of the rule engine score")
	flag.Float64Var(&flags.MLWeight, "ml-weight", 0.7, "Weight of the classifier score")
	flag.StringVar(&flags.Whitelist, "whitelist", "", "Comma-separated list of whitelisted sender domains")

	// Model flags
	flag.StringVar(&flags.ModelPath, "model", "", "Path to a saved classifier model (loaded if present)")
	flag.BoolVar(&flags.SaveModel, "save-model", false, "Save the classifier model after training")
	flag.BoolVar(&flags.Train, "train", false, "Train the classifier on the generated fixture corpus")
	flag.StringVar(&flags.TrainFile, "train-file", "", "JSON file with labeled training examples")
	flag.IntVar(&flags.TrainSize, "train-size", 0, "Number of generated training examples (0 uses the base fixtures)")
	flag.BoolVar(&flags.Evaluate, "evaluate", false, "Evaluate the classifier against the fixture corpus and exit")

	// Store flags
	flag.StringVar(&flags.StoreType, "store", "memory", "Result store backend (memory, sqlite, mysql)")
	flag.StringVar(&flags.SQLitePath, "sqlite-path", "data/phishing_detector.db", "SQLite database path")
	flag.IntVar(&flags.History, "history", 0, "Show the N most recent analysis results and exit")

	// Input flags
	flag.StringVar(&flags.InputFile, "file", "", "Input email file (use stdin if not specified)")
	flag.StringVar(&flags.InputDir, "dir", "", "Analyze every .eml/.txt file in a directory")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	flag.Parse()
	return flags
}

// BuildCLIContainer creates and configures a dependency injection container
// for the one-shot CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.New()
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file",
				zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}
		return configFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewDetectorFactory); err != nil {
		return nil, err
	}

	// Register result store
	if err := container.Provide(func(f *factory.StoreFactory) (core.ResultStore, error) {
		return f.CreateResultStore()
	}); err != nil {
		return nil, err
	}

	// Register detector service
	if err := container.Provide(func(f *factory.DetectorFactory, store core.ResultStore) (*core.PhishingDetectorService, error) {
		return f.CreateDetectorService(store)
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// configFromFlags builds a configuration mirroring the command line flags
func configFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	v.Set("detector.threshold", flags.Threshold)
	v.Set("detector.rule_weight", flags.RuleWeight)
	v.Set("detector.ml_weight", flags.MLWeight)
	if flags.Whitelist != "" {
		v.Set("detector.whitelisted_domains", splitAndTrim(flags.Whitelist))
	}

	if flags.ModelPath != "" {
		v.Set("model.path", flags.ModelPath)
	}
	v.Set("store.type", flags.StoreType)
	v.Set("store.sqlite_path", flags.SQLitePath)
	v.Set("cli.verbose", flags.Verbose)

	return config.NewFromViper(v)
}
