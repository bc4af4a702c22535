// Package config defines the format-agnostic program model for the
// runtime, along with the Loader interface for reading it from manifest
// files.
//
// The config.Model is the single source of truth for the registry, santa,
// and app packages. Concrete loaders for HCL and YAML live in separate
// packages.
package config
