package identity

import (
	"strings"

	"github.com/google/uuid"
)

// NewUID mints a random v4 identifier.
func NewUID() string {
	return uuid.NewString()
}

// IsLegacyUID reports whether uid came from the old client-side guest scheme
// and must be replaced before the visitor can write.
func IsLegacyUID(uid string) bool {
	uid = strings.TrimSpace(uid)
	if uid == "" || strings.HasPrefix(uid, "user-") || strings.Contains(uid, "guest") {
		return true
	}
	id, err := uuid.Parse(uid)
	return err != nil || id == uuid.Nil
}
