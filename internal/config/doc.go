// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package config defines the format-agnostic build configuration for bfc,
// the Loader interface implemented by each configuration format, and the
// path templates used to name generated files.
//
// A Model starts from Default, is overlaid by a configuration file through
// a Loader, and finally by command-line flags. Concrete loaders live in the
// hcl and yamlconfig packages.
package config
