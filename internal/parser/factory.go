package parser

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"carte/internal/config"
	"carte/internal/port"
)

// ProviderFactory creates a LanguageModel from a provider config.
type ProviderFactory func(cfg *config.ParserProviderConfig, logger *zap.Logger) (port.LanguageModel, error)

// registry of provider factories, populated via RegisterProvider.
var (
	providersMu sync.RWMutex
	providers   = map[string]ProviderFactory{}
)

// RegisterProvider registers a provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providersMu.Lock()
	defer providersMu.Unlock()
	providers[name] = factory
}

// RegisteredProviders lists the registered provider names.
func RegisteredProviders() []string {
	providersMu.RLock()
	defer providersMu.RUnlock()
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewModel creates a LanguageModel from a provider config using the registered factory.
func NewModel(cfg *config.ParserProviderConfig, logger *zap.Logger) (port.LanguageModel, error) {
	providersMu.RLock()
	factory, ok := providers[cfg.Provider]
	providersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown parser provider: %s", cfg.Provider)
	}
	return factory(cfg, logger)
}

// NewModelChain builds the configured primary, secondary and tertiary models.
// A single model is returned as is; more are wrapped in a FallbackModel.
func NewModelChain(cfg *config.ParserConfig, logger *zap.Logger) (port.LanguageModel, error) {
	tiers := []*config.ParserProviderConfig{cfg.PrimaryConfig(), cfg.SecondaryConfig(), cfg.TertiaryConfig()}

	var models []port.LanguageModel
	for _, tier := range tiers {
		if tier == nil {
			continue
		}
		m, err := NewModel(tier, logger)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}

	if len(models) == 1 {
		return models[0], nil
	}
	return NewFallbackModel(models, logger), nil
}
