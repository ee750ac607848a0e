// Package config provides centralized configuration management for the
// assetgauge dashboard service. Configuration is loaded from an optional
// YAML file named by ASSETGAUGE_CONFIG and overridden by environment
// variables, all namespaced with the ASSETGAUGE_ prefix:
//
//	ASSETGAUGE_SERVER_PORT=8080
//	ASSETGAUGE_UPLOAD_MAX_BYTES=33554432
//	ASSETGAUGE_LOGGING_LEVEL=debug
//
// Defaults are declared on the struct tags so a bare process starts with a
// working configuration.
package config
