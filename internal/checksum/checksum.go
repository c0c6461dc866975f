package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateContentHash returns the hex SHA-256 of the serialized output.
// Two runs over unchanged pages produce the same hash.
func (g *Generator) GenerateContentHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
