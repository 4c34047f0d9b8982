// Package sessionid generates session identifiers: a UUIDv7 written as 26
// lowercase Crockford base32 characters, in the style of TypeID. IDs sort by
// creation time.
package sessionid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Crockford base32, lowercase.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an encoded ID.
const Length = 26

// Generator creates session IDs from a source of randomness.
type Generator struct {
	rand io.Reader
}

// NewGenerator returns a generator reading random bits from r. A nil reader
// uses crypto/rand.
func NewGenerator(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// Generate creates an ID with crypto/rand.
func Generate() (string, error) {
	return NewGenerator(nil).Generate()
}

// Generate creates a new ID.
func (g *Generator) Generate() (string, error) {
	var (
		id  uuid.UUID
		err error
	)
	if g.rand != nil {
		id, err = uuid.NewV7FromReader(g.rand)
	} else {
		id, err = uuid.NewV7()
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate session ID: %w", err)
	}
	return Encode(id), nil
}

// Encode writes a UUID as 130 bits (two zero bits, then the UUID) in groups
// of five.
func Encode(id uuid.UUID) string {
	var out [Length]byte
	for i := range out {
		var v byte
		for b := 0; b < 5; b++ {
			v <<= 1
			bit := i*5 + b - 2
			if bit >= 0 && id[bit/8]&(0x80>>(bit%8)) != 0 {
				v |= 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out[:])
}

// Parse decodes an ID back into its UUID.
func Parse(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if len(s) != Length {
		return id, fmt.Errorf("session ID must be exactly %d characters, got %d", Length, len(s))
	}
	if s[0] > '7' {
		return id, fmt.Errorf("session ID first character must be 0-7, got %c", s[0])
	}

	for i := 0; i < Length; i++ {
		v := strings.IndexByte(alphabet, s[i])
		if v < 0 {
			return id, fmt.Errorf("invalid character %c at position %d", s[i], i)
		}
		for b := 0; b < 5; b++ {
			bit := i*5 + b - 2
			if bit >= 0 && v&(0x10>>b) != 0 {
				id[bit/8] |= 0x80 >> (bit % 8)
			}
		}
	}
	return id, nil
}

// Validate checks that s is a well formed ID.
func Validate(s string) error {
	_, err := Parse(s)
	return err
}
