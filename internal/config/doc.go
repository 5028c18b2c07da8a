// Package config defines the format-agnostic settings model of the generator
// and the Loader interface that concrete formats, such as HCL, implement.
//
// Settings are resolved in three layers: DefaultSettings, then a settings
// file, then command line flags applied by package app.
package config
