package construction

import "github.com/google/uuid"

// NewID returns a random UUIDv4 string. It is the default identifier
// generator of a Space.
func NewID() string {
	return uuid.NewString()
}
