package core

import (
	"context"
	"fmt"
	"log"

	"github.com/livewell-ai/livewell/config"
	"github.com/livewell-ai/livewell/internal/capability"
	"github.com/livewell-ai/livewell/internal/hydration"
	"github.com/livewell-ai/livewell/internal/telemetry"
	"github.com/livewell-ai/livewell/provider"
	"github.com/livewell-ai/livewell/tools/forecast"
	"github.com/livewell-ai/livewell/tools/localtime"
)

// NewCapabilityRegistry registers the capabilities the fitness step declares
// to the reasoning engine: current local time and the weather outlook for
// the configured region.
func NewCapabilityRegistry(cfg *config.Config, logger *log.Logger) (*capability.Registry, error) {
	registry := capability.NewRegistry()

	err := registry.Register(capability.Capability{
		Name:        "time",
		Description: fmt.Sprintf("Get the current local time in %s.", cfg.Location.Timezone),
		Exec: func(ctx context.Context, args map[string]interface{}) (string, error) {
			return localtime.Now(cfg.Location.Timezone)
		},
	})
	if err != nil {
		return nil, err
	}

	weather := forecast.NewClient(cfg.Location.Latitude, cfg.Location.Longitude, cfg.Location.Timezone, logger)
	err = registry.Register(capability.Capability{
		Name: "weather",
		Description: fmt.Sprintf("Get a simple %d-day forecast for the region as lines 'YYYY-MM-DD: Condition'.",
			cfg.Advisor.ForecastDays),
		Exec: func(ctx context.Context, args map[string]interface{}) (string, error) {
			return weather.Outlook(ctx, cfg.Advisor.ForecastDays), nil
		},
	})
	if err != nil {
		return nil, err
	}

	return registry, nil
}

// NewEngine builds the full consultation pipeline in canonical order:
// fitness -> nutrition -> hydration -> summary.
func NewEngine(cfg *config.Config, logger *log.Logger, tele *telemetry.Telemetry) (*Pipeline, error) {
	llm, err := provider.NewProvider(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}

	registry, err := NewCapabilityRegistry(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build capability registry: %w", err)
	}

	loop := NewToolLoop(llm, registry, logger, tele, cfg.Advisor.MaxToolHops)
	climate := hydration.Climate{AvgTempC: 30, AvgHumidityPct: 70}

	return NewPipeline(logger, tele,
		NewFitnessStep(loop, logger),
		NewNutritionStep(),
		NewHydrationStep(climate),
		NewSummaryStep(llm, logger),
	), nil
}
