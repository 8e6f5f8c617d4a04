package domain

import "github.com/google/uuid"

// ValidID reports whether id can address a stored record. Identifiers that
// fail this check can never resolve and are treated as not found.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
