// Package config is a thin wrapper around pkg/config that exposes the
// loaded configuration via the AppConfig variable for the cmd/ binaries,
// mirroring the teacher's cmd/config split from pkg/config.
package config

import (
	pkgconfig "zlkdex/pkg/config"
)

// AppConfig holds the currently loaded configuration for the CLI and
// server binaries.
var AppConfig pkgconfig.Config

// LoadConfig loads the configuration for the given environment name and
// stores it in AppConfig. Failure aborts the process — there is no
// sensible degraded mode for a misconfigured node.
func LoadConfig(env string) {
	cfg, err := pkgconfig.Load(env)
	if err != nil {
		panic(err)
	}
	AppConfig = *cfg
}
