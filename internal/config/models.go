package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/jzq1291/chatbot/pkg/log"
)

// ModelsConfig describes the name -> client mapping built at startup. Each
// entry of OllamaModels becomes a registered model served by the Ollama
// endpoint; an optional Custom endpoint registers one more model under
// CustomModel.
type ModelsConfig struct {
	DefaultModel string `env:"DEFAULT_MODEL" envDefault:"qwen3"`

	OllamaBaseURL string   `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaAPIKey  string   `env:"OLLAMA_API_KEY"`
	OllamaModels  []string `env:"OLLAMA_MODELS" envDefault:"qwen3"`

	CustomBaseURL string `env:"CUSTOM_OPENAI_BASE_URL"`
	CustomAPIKey  string `env:"CUSTOM_OPENAI_API_KEY"`
	CustomModel   string `env:"CUSTOM_OPENAI_MODEL"`
}

func NewModelsConfig(ctx context.Context) *ModelsConfig {
	c := &ModelsConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse models config")
	}
	return c
}
