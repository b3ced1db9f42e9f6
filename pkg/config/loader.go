package config

import (
	"errors"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// Load populates cfg from environment variables based on `env` struct tags.
//
// The first call attempts to load a .env file from the working directory; a
// missing file is fine and silently ignored. Parsing failures wrap
// ErrParsingConfig.
//
// Example:
//
//	type Limits struct {
//		MaxBodyBytes     int64 `env:"RESOLVEKIT_MAX_BODY_BYTES" envDefault:"4194304"`
//		MaxProviderDepth int   `env:"RESOLVEKIT_MAX_PROVIDER_DEPTH" envDefault:"32"`
//	}
//
//	var limits Limits
//	if err := config.Load(&limits); err != nil {
//		// handle error
//	}
func Load[T any](cfg *T) error {
	defaultEnvLoaded.Do(func() {
		// The .env file might not exist and that's ok.
		_ = godotenv.Load()
	})
	if cfg == nil {
		return ErrNilPointer
	}
	if err := env.Parse(cfg); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad is like Load but panics on failure. Configuration is read at
// startup, so a broken environment should prevent the application from
// serving at all.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
