package validator

import (
	"strings"

	"github.com/google/uuid"
)

// uuidLen is the canonical 8-4-4-4-12 hyphenated length. uuid.Parse also
// accepts braced, urn-prefixed and unhyphenated forms, which are rejected.
const uuidLen = 36

func validUUID(c *Context, _ []string) Outcome {
	s := strings.TrimSpace(c.Value.String())
	if len(s) != uuidLen || strings.Count(s, "-") != 4 {
		return Fail("")
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return Fail("")
	}
	if v := id.Version(); v < 1 || v > 5 || id.Variant() != uuid.RFC4122 {
		return Fail("")
	}
	return Pass()
}
