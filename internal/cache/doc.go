// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

/*
Package cache provides the two caches in front of the recommendation models.

# Snapshot

[Snapshot] holds an expensive value (the content model with its N x N
similarity matrix, or the play matrix) keyed by the fingerprint of the file
it was built from. The first Get builds it; later Gets return the stored
value until the fingerprint changes or [Snapshot.Invalidate] is called.
Concurrent callers during a build wait on that build through
golang.org/x/sync/singleflight instead of starting their own.

	snap := cache.NewSnapshot("content", fingerprintFile(path), buildModel)
	model, cached, err := snap.Get(ctx)

# LRU

[LRU] is a generic least recently used cache with TTL, used for query
results such as "top 10 similar to X". It is cleared whenever a snapshot is
rebuilt so results never outlive the model that produced them.
*/
package cache
