// Package cli implements the lowpass command: a cobra command tree whose
// settings are resolved by viper from defaults, a YAML file, LOWPASS_*
// environment variables and flags, with zap logging to stderr and tabular
// output rendered as an aligned table, JSON, YAML or CSV.
package cli
