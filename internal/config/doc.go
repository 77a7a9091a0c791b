// Package config loads viewspan settings from a TOML file with environment
// variable overrides, computes the decoration filter policy, and supports
// live reload through fsnotify with synchronous change observers.
package config
