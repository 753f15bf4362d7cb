// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrItemNotFound matches *ItemNotFoundError.
	ErrItemNotFound = errors.New("song not found")

	// ErrUserNotFound matches *UserNotFoundError.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmptyDataset is returned when a model is built from zero rows.
	ErrEmptyDataset = errors.New("dataset is empty")
)

// ItemNotFoundError reports a song name that is not in the catalog.
type ItemNotFoundError struct {
	Name string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("song %q not found in dataset", e.Name)
}

// Is reports whether target is ErrItemNotFound.
func (e *ItemNotFoundError) Is(target error) bool {
	return target == ErrItemNotFound
}

// UserNotFoundError reports a user that has no row in the play matrix.
type UserNotFoundError struct {
	User string
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("user %q not found in listening history", e.User)
}

// Is reports whether target is ErrUserNotFound.
func (e *UserNotFoundError) Is(target error) bool {
	return target == ErrUserNotFound
}
