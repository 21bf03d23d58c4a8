// Package config defines the format-agnostic project definition model,
// along with the Loader interface for reading it from various sources.
//
// The `config.Model` is the single source of truth for the `dag` package.
// Concrete implementations of the Loader interface, such as for HCL, are
// provided in separate packages.
package config
