// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
// It is a thin composition of godotenv (one-time .env loading) and
// caarlos0/env (tag-driven parsing). The resolution layer uses it for its
// request limits; applications can reuse it for their own settings:
//
//	type AppConfig struct {
//		Port int    `env:"PORT" envDefault:"8080"`
//		Env  string `env:"APP_ENV" envDefault:"development"`
//	}
//
//	var cfg AppConfig
//	config.MustLoad(&cfg)
package config
