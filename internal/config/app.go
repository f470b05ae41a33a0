package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/jzq1291/chatbot/pkg/log"
)

// DefaultSystemPrompt instructs the model to act as a support assistant and
// to say so explicitly when the knowledge base has no answer.
const DefaultSystemPrompt = "You are a professional customer support assistant. " +
	"Answer the user's question based on the knowledge base content included in the conversation. " +
	"If the knowledge base does not contain the relevant information, tell the user so explicitly."

type AppConfig struct {
	RuntimePath string `env:"CHATBOT_RUNTIME_PATH" envDefault:".chatbot"`

	// Context management
	HistoryWindow int    `env:"HISTORY_WINDOW" envDefault:"10"`
	SystemPrompt  string `env:"SYSTEM_PROMPT"`

	// Streaming delivery
	StreamChunkSize int           `env:"STREAM_CHUNK_SIZE" envDefault:"1"`
	StreamDelay     time.Duration `env:"STREAM_DELAY" envDefault:"10ms"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse app config")
	}
	if c.SystemPrompt == "" {
		c.SystemPrompt = DefaultSystemPrompt
	}
	return c
}

func (c *AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c *AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "chatbot.db")
}

// GetRuntimePath resolves the runtime directory before any config struct
// is parsed; the .env file living there feeds the parse itself.
func GetRuntimePath() string {
	if p := os.Getenv("CHATBOT_RUNTIME_PATH"); p != "" {
		return p
	}
	return ".chatbot"
}

func IsDebug() bool {
	return os.Getenv("DEBUG") == "true"
}
