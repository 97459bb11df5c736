package storage

import "github.com/jwebster45206/the-deep/internal/config"

type configFields struct {
	storage  string
	saveDir  string
	redisURL string
}

func (c configFields) build() *config.Config {
	return &config.Config{
		Storage:      c.storage,
		SaveDir:      c.saveDir,
		RedisURL:     c.redisURL,
		RedisRetries: 1,
	}
}
