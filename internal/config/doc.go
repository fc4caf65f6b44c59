// Package config loads and validates the cellar configuration file.
//
// Configuration is TOML. Resolution order: an explicit --config path, then
// ~/.config/cellar/config.toml, then ./cellar.toml; a missing file yields
// the built-in defaults. Secrets such as the LLM API key may come from the
// environment instead of the file, and a .env file next to the working
// directory is loaded when present.
package config
