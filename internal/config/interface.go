// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the configuration file at path and returns a copy of base
	// with every setting present in the file applied on top of it.
	Load(ctx context.Context, path string, base *Model) (*Model, error)
}
