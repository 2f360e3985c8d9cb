package utils

import "github.com/google/uuid"

func NewID() string {
	return uuid.NewString()
}

// IsValidID reports whether s is a well-formed record identifier.
func IsValidID(s string) bool {
	return uuid.Validate(s) == nil
}
