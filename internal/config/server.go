package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/jzq1291/chatbot/pkg/log"
)

type ServerConfig struct {
	ListenAddr string `env:"HTTP_LISTEN_ADDR" envDefault:":8080"`
}

func NewServerConfig(ctx context.Context) *ServerConfig {
	c := &ServerConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse server config")
	}
	return c
}
