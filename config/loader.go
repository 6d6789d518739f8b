package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoaderOption customizes LoadInto.
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	configFile string
	envFile    string
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(o *loaderOptions) { o.configFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(o *loaderOptions) { o.envFile = path }
}

// LoadInto loads configuration into cfg. Resolution order: config.yml as the
// base, then .env, then process environment variables. Missing files are not
// an error; required values are caught by the caller's Validate.
func LoadInto(serviceName string, cfg interface{}, opts ...LoaderOption) error {
	var o loaderOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.configFile == "" {
		o.configFile = findFile(
			fmt.Sprintf("./cmd/%s/config.yml", serviceName),
			"./config/config.yml",
			"./config.yml",
		)
	}
	if o.envFile == "" {
		o.envFile = findFile(
			fmt.Sprintf(".env.%s", serviceName),
			".env",
		)
	}

	v := viper.New()

	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", o.configFile, err)
		}
	}

	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil {
			return fmt.Errorf("config: load %s: %w", o.envFile, err)
		}
	}

	v.AutomaticEnv()
	bindEnvVars(v)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: unmarshal for %s: %w", serviceName, err)
	}
	return nil
}

func findFile(candidates ...string) string {
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// bindEnvVars maps UPPER_SNAKE environment variables onto viper's nested
// keys. JWT_SECRET binds to jwt.secret, SERVER_READ_TIMEOUT binds to both
// server.read.timeout and server.read_timeout, so every mapstructure layout
// in the tree is reachable.
func bindEnvVars(v *viper.Viper) {
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}
		for _, variant := range envKeyVariants(pair[0]) {
			v.Set(variant, pair[1])
		}
	}
}

func envKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")
	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}

	seen := make(map[string]bool, len(variants))
	out := variants[:0]
	for _, variant := range variants {
		if !seen[variant] {
			seen[variant] = true
			out = append(out, variant)
		}
	}
	return out
}
