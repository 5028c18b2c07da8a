// Package hcl provides the HCL implementation of config.Loader. It decodes a
// litgen.hcl settings file with gohcl, evaluating expressions against an
// `env` object and a small set of cty string functions, and converts list
// values through cty into Go types.
package hcl
