// Package validation checks user-supplied values read from scene and
// geometry files before they reach the simulation.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/opd-ai/go-ricochet/pkg/physics"
)

// Size and content limits for scene files
const (
	MaxDocumentSize = 1 << 20 // 1MB per scene or index file
	MaxNameLen      = 64
	MaxRadius       = 1e6
)

// Names may contain letters, digits, spaces, hyphens, underscores and dots
var validNameChars = regexp.MustCompile(`^[a-zA-Z0-9\s\-_.]+$`)

// ValidateDocumentSize rejects files too large to be a scene
func ValidateDocumentSize(size int64) error {
	if size > MaxDocumentSize {
		return fmt.Errorf("document too large: %d bytes (max %d)", size, MaxDocumentSize)
	}
	return nil
}

// ValidateName validates and trims a scene or entity name
func ValidateName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("name cannot be empty")
	}

	if len(name) > MaxNameLen {
		return "", fmt.Errorf("name too long: %d characters (max %d)", len(name), MaxNameLen)
	}

	if !utf8.ValidString(name) {
		return "", fmt.Errorf("name contains invalid UTF-8 characters")
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("name cannot be only whitespace")
	}

	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("name contains control characters")
		}
	}

	if !validNameChars.MatchString(trimmed) {
		return "", fmt.Errorf("name %q contains invalid characters (only alphanumeric, spaces, hyphens, underscores and dots allowed)", trimmed)
	}

	return trimmed, nil
}

// ValidateVector rejects NaN and infinite coordinates
func ValidateVector(v physics.Vector2D) error {
	if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
		return fmt.Errorf("vector (%v, %v) is not finite", v.X, v.Y)
	}
	return nil
}

// ValidateRadius validates a circle collider radius
func ValidateRadius(r float64) error {
	if math.IsNaN(r) || r < 0 {
		return fmt.Errorf("radius cannot be negative: %v", r)
	}
	if r > MaxRadius {
		return fmt.Errorf("radius too large: %v (max %v)", r, MaxRadius)
	}
	return nil
}

// ValidateCapacity validates a line collider segment capacity. Zero means
// the loader default.
func ValidateCapacity(capacity int) error {
	if capacity < 0 || capacity > physics.MaxSegmentCapacity {
		return fmt.Errorf("invalid capacity: %d (must be 0-%d): %w",
			capacity, physics.MaxSegmentCapacity, physics.ErrAllocationFailure)
	}
	return nil
}
