// Package config loads the stagehook configuration.
//
// Configuration is built from layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← STAGEHOOK_TRIGGER_WORKERS=8
//	├─────────────────────────────┤
//	│  2. Configuration File      │  ← stagehook.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// The file and environment layers are read into maps, merged, and decoded
// strictly over the defaults, so an unknown key is an error rather than a
// silently ignored typo. A missing file is not an error.
//
// # File Format
//
//	[dispatcher]
//	disabled_kinds = ["cursor"]
//	recover_panics = true
//	metrics = true
//
//	[trigger]
//	workers = 4
//	queue_size = 256
//	timeout = "5s"
//	script = "macros.lua"
//
//	[logging]
//	level = "info"   # debug, info, warn, error
//	format = "text"  # text, json
//
// # Environment
//
// STAGEHOOK_<SECTION>_<KEY> sets [section] key, e.g.
// STAGEHOOK_DISPATCHER_DISABLED_KINDS=cursor,scroll. STAGEHOOK_LOG_LEVEL and
// STAGEHOOK_LOG_FORMAT are shorthands for the logging section.
package config
