package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash generates a SHA-256 hash of the input string
func Hash(input string) string {
	hasher := sha256.New()
	hasher.Write([]byte(input))
	return hex.EncodeToString(hasher.Sum(nil))
}

// ItemID returns the stable identifier for a news item: the source's GUID
// when one exists, otherwise a hash derived from link and title so the same
// underlying entry keeps the same ID across fetches.
func ItemID(guid, link, title string) string {
	if guid != "" {
		return guid
	}
	return Hash(link + "|" + title)
}
