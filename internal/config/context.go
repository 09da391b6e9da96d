package config

import (
	"context"
	"os"
	"strings"
)

type (
	configKey  struct{}
	workDirKey struct{}
	envKey     struct{}
)

// WithConfig stores cfg in the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext returns the config from context, or nil if none is stored.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey{}).(*Config); ok {
		return cfg
	}
	return nil
}

// WithWorkDir stores the directory commands treat as current.
func WithWorkDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, workDirKey{}, dir)
}

// WorkDirFromContext returns the stored working directory, falling back to
// os.Getwd when none (or an empty one) is stored.
func WorkDirFromContext(ctx context.Context) string {
	if dir, ok := ctx.Value(workDirKey{}).(string); ok && dir != "" {
		return dir
	}
	wd, _ := os.Getwd()
	return wd
}

// WithEnv stores the environment snapshot as an environ list.
func WithEnv(ctx context.Context, environ []string) context.Context {
	return context.WithValue(ctx, envKey{}, environ)
}

// EnvFromContext returns the stored environ list, or os.Environ() when none
// is stored.
func EnvFromContext(ctx context.Context) []string {
	if environ, ok := ctx.Value(envKey{}).([]string); ok {
		return environ
	}
	return os.Environ()
}

// Getenv looks up key in the context's environment snapshot.
func Getenv(ctx context.Context, key string) string {
	prefix := key + "="
	environ := EnvFromContext(ctx)
	for i := len(environ) - 1; i >= 0; i-- {
		if v, ok := strings.CutPrefix(environ[i], prefix); ok {
			return v
		}
	}
	return ""
}
