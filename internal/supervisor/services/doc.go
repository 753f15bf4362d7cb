// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

// Package services adapts the server's components to suture.Service.
//
// Every service blocks in Serve until its context is canceled and returns
// ctx.Err() on a clean stop, so suture does not restart it.
package services

import "context"

// Datasets is the part of library.Library the data layer services drive.
type Datasets interface {
	// Warm builds every configured model that is missing or stale.
	Warm(ctx context.Context) error

	// Stale reports whether a model is not loaded or its file changed since
	// it was built.
	Stale(ctx context.Context) bool

	// Ready reports whether every configured model is loaded.
	Ready() bool

	// Changed invalidates the model loaded from path.
	Changed(path, trigger string) bool

	// Paths returns the dataset files to watch.
	Paths() []string
}
