package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var adjectives = []string{
	"Green", "Golden", "Sunny", "Fertile", "Happy",
	"Riverside", "Highland", "Misty", "Quiet", "Windy",
	"Rolling", "Shady", "Bright", "Wild", "Old",
}

var nouns = []string{
	"Meadow", "Harvest", "Orchard", "Valley", "Field",
	"Grove", "Acres", "Pasture", "Garden", "Prairie",
	"Hollow", "Ridge", "Creek", "Barn", "Mill",
}

// GenerateFarmName creates a display-name fallback in the format
// "Adjective Noun ####" for accounts registered without a display name
func GenerateFarmName() (string, error) {
	adjIdx, err := rand.Int(rand.Reader, big.NewInt(int64(len(adjectives))))
	if err != nil {
		return "", fmt.Errorf("failed to generate random adjective: %w", err)
	}

	nounIdx, err := rand.Int(rand.Reader, big.NewInt(int64(len(nouns))))
	if err != nil {
		return "", fmt.Errorf("failed to generate random noun: %w", err)
	}

	suffix, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("failed to generate random suffix: %w", err)
	}

	return fmt.Sprintf("%s %s %04d", adjectives[adjIdx.Int64()], nouns[nounIdx.Int64()], suffix.Int64()), nil
}
