// Package config loads runtime configuration for the snipctl CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. SNIPCTL_* environment variables.
//  3. Optional JSON file passed with --config.
//  4. Command-line flags bound by the cli package, which override earlier values.
//
// # JSON schema
//
// The JSON loader uses timex.Duration, so the timeout can be either a string
// like "10s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:5000/api",
//	  "session_file": "/home/me/.config/snipctl/session.json",
//	  "timeout": "10s"
//	}
package config
