package di

import (
	"go.uber.org/dig"

	"github.com/AL-ANWARTECH/phishing-detector/internal/config"
	"github.com/AL-ANWARTECH/phishing-detector/internal/core"
	"github.com/AL-ANWARTECH/phishing-detector/internal/factory"
	"github.com/AL-ANWARTECH/phishing-detector/internal/logging"
	"github.com/AL-ANWARTECH/phishing-detector/internal/ports"
)

// BuildContainer creates and configures a dependency injection container
// for the long-running filter daemon
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewDetectorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewFilterFactory); err != nil {
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

	// Register email filter
	if err := container.Provide(func(f *factory.FilterFactory) (ports.EmailFilter, error) {
		return f.CreateEmailFilter()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
