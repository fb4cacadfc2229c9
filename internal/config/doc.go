// Package config loads mapgenctl's settings.
//
// Resolution order, later entries overriding earlier ones:
//
//  1. built-in defaults (./logs, ./MapGenerator)
//  2. ~/.config/mapgenctl/config.toml (or --config)
//  3. MAPGEN_LOG_ROOT and MAPGEN_ROOT environment variables
//
// A .env file in the working directory is folded into the environment
// before resolution, without overriding variables already set. The result
// is a plain Config value passed explicitly to every component; no global
// state is read after startup.
package config
