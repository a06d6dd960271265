// Package hcl provides the HCL implementation of config.Loader. It is
// responsible for parsing bfc.hcl files, evaluating their attribute
// expressions into the format-agnostic config.Model, and writing a
// default configuration file.
package hcl
