// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

/*
Package recommend implements the two ranking modes of Soundalike.

# Content similarity

Each song gets a tag built from categorical metadata ("coldplay rock").
Tags are tokenized and counted over a bounded vocabulary ([NewVectorizer]),
all pairs of count vectors are compared with cosine similarity
([NewSimilarityMatrix]) and [ContentModel.Recommend] returns the k songs
closest to a given one:

	model, err := recommend.NewContentModel(items, recommend.DefaultMaxVocabulary)
	recs, err := model.Recommend("Yellow", 5)

The matrix is built once per dataset version and is read-only afterwards,
so a ContentModel is safe for concurrent queries without locking.

Conventions:
  - cosine similarity of a zero vector (empty metadata) is 0, including
    with itself
  - the queried song is excluded by id, so duplicates of it (score 1.0)
    are still returned
  - ties are broken by ascending song id

# Listening history

[PlayMatrix] ranks a user's songs by their own historical play counts.
This is a lookup over past plays, not a prediction, and is kept separate
from the content model. [PlayMatrix.Summary] derives the headline numbers
(songs played, total plays, most played) from the same ranking that
[PlayMatrix.TopPlayed] returns.

# Catalog statistics

[CatalogStats] answers dashboard questions about the loaded catalog: totals,
the artists with the most songs and the most popular songs.
*/
package recommend
