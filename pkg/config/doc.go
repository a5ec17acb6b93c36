// Package config loads ruleval defaults from the environment.
//
// Variables use the RULEVAL_ prefix and may come from a .env file in the
// working directory, which is loaded once via github.com/joho/godotenv.
// Parsing is done by github.com/caarlos0/env/v11.
//
//	RULEVAL_DEBUG=true
//	RULEVAL_LOG_LEVEL=debug
//	RULEVAL_LOG_FORMAT=json
//	RULEVAL_LANGUAGE=de
//	RULEVAL_SELECTOR=id
//	RULEVAL_DIMENSION_TIMEOUT=2s
//	RULEVAL_CHAIN_CACHE_SIZE=1024
//	RULEVAL_PATTERN_CACHE_SIZE=256
//	RULEVAL_HTTP_ADDR=:9090
//	RULEVAL_RULES=./rules/signup.yaml
//	RULEVAL_TRANSLATIONS=./locales
//
// Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//		return err
//	}
//	log := cfg.Logger(os.Stderr)
//	opts := append(cfg.Options(log), validator.WithRegistry(cfg.Registry()))
//
// Errors can be compared with errors.Is against ErrParsingConfig,
// ErrLoadEnvFile and ErrInvalidConfig.
package config
