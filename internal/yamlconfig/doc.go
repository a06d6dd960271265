// Package yamlconfig implements config.Loader for bfc.yaml files. Output
// paths use the same ${source.stem} template syntax as the HCL format.
package yamlconfig
