package util

import "github.com/google/uuid"

// NewID generates a unique identifier for runs and session turns.
func NewID() string { return uuid.NewString() }
