// Package config handles application configuration loading and validation.
//
// Configuration is loaded from a YAML file and validated using struct tags.
// Missing tunables receive conservative defaults after validation.
package config
