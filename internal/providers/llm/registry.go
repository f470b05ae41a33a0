package llm

import (
	"context"
	"fmt"

	"github.com/jzq1291/chatbot/internal/config"
	"github.com/jzq1291/chatbot/internal/core"
	"github.com/jzq1291/chatbot/pkg/log"
)

// NewRegistry builds the model id -> provider mapping from configuration.
// The registry is assembled once at startup and handed to the chat service;
// there is no process-wide mutable registry.
func NewRegistry(ctx context.Context, cfg *config.ModelsConfig) (map[string]core.CompletionProvider, error) {
	registry := make(map[string]core.CompletionProvider)

	for _, model := range cfg.OllamaModels {
		registry[model] = NewOllama(cfg.OllamaBaseURL, cfg.OllamaAPIKey, model)
	}

	if cfg.CustomBaseURL != "" && cfg.CustomModel != "" {
		registry[cfg.CustomModel] = NewCustomOpenAI(cfg.CustomBaseURL, cfg.CustomAPIKey, cfg.CustomModel)
	}

	if len(registry) == 0 {
		return nil, fmt.Errorf("no models configured")
	}
	if _, ok := registry[cfg.DefaultModel]; !ok {
		return nil, fmt.Errorf("default model %q is not among the configured models", cfg.DefaultModel)
	}

	log.FromCtx(ctx).Info().
		Int("models", len(registry)).
		Str("default", cfg.DefaultModel).
		Msg("completion providers registered")

	return registry, nil
}
