// Package config loads, normalizes, and validates zhbatch configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// ZHBATCH_OUTPUT_DIR. The Config type centralizes every knob the CLI needs to
// build task parameters, so output folders, encodings, vocabulary overlays and
// rename behaviour are resolved in one pass.
//
// Tasks never read a Config directly: the CLI snapshots the values it needs
// into task parameters before a run starts.
package config
