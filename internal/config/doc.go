// Package config handles loading and parsing the stacks configuration file.
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/stacks/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Configuration Fields
//
//   - server_url: base URL of the library server (default http://127.0.0.1:8080)
//   - log_file: optional debug log destination; logging is disabled when empty
package config
