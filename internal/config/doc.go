// Package config defines the application configuration structures and
// loading logic. Configuration is read from an optional config.yaml file
// and from environment variables with the KUTUBXONA_ prefix; environment
// variables take precedence.
package config
