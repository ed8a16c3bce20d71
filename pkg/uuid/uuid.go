// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered unique identifiers for request correlation
and change-feed event IDs.

Version 7 values sort by creation time (millisecond precision), so event IDs
seen by a client increase along with the changes they describe.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// If the random source fails it falls back to a random (v4) UUID instead of
// panicking; callers only need uniqueness.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}
