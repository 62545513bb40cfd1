// Package config loads and merges the application configuration from
// environment variables, command-line flags, and an optional JSON file.
//
// Sources are merged with first-wins priority for non-zero fields:
// environment, then flags, then the JSON file. Defaults are applied after
// the merge and the result is validated before use.
package config
