// Package config loads service configuration from a YAML file, a .env file
// and the process environment using Viper and godotenv.
//
// Environment variables map onto nested keys by splitting on underscores,
// so SPEECH_REGION sets speech.region. Legacy variable names can be mapped
// explicitly with WithEnvAliases.
//
// # Usage
//
//	var cfg AppConfig
//	err := config.LoadConfig("speechkit", &cfg, config.WithEnvAliases(aliases))
package config
