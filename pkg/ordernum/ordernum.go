package ordernum

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"
)

// Orders are numbered VK + YYYYMMDD + a zero-padded 4-digit random suffix.
// Collisions within a day are possible and surface as a unique constraint
// violation on insert; callers retry with a fresh number.
const prefix = "VK"

var pattern = regexp.MustCompile(`^VK\d{8}\d{4}$`)

// Generate produces an order number for the given timestamp.
func Generate(now time.Time) string {
	return fmt.Sprintf("%s%s%04d", prefix, now.Format("20060102"), rand.IntN(10000))
}

// IsValid reports whether the value matches the order number format.
func IsValid(value string) bool {
	return pattern.MatchString(value)
}
