// Package gameid generates sortable hand identifiers: a UUIDv7 rendered as a
// 26 character lower-case Crockford base32 string.
package gameid

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Crockford's base32, lower case.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded ID.
const Length = 26

// Generator produces hand IDs. The zero value draws randomness from
// crypto/rand through the uuid package.
type Generator struct {
	random io.Reader
}

// NewGenerator returns a generator reading random bits from r, or the
// package default when r is nil.
func NewGenerator(r io.Reader) *Generator {
	return &Generator{random: r}
}

// NewSeededGenerator returns a generator whose random bits come from rng.
// The timestamp part still follows the wall clock.
func NewSeededGenerator(rng *rand.Rand) *Generator {
	return NewGenerator(rngReader{rng})
}

// Generate creates a new ID using crypto randomness.
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate returns a new ID. It panics if the random source fails, which
// cannot happen for the built-in sources.
func (g *Generator) Generate() string {
	var (
		id  uuid.UUID
		err error
	)
	if g.random == nil {
		id, err = uuid.NewV7()
	} else {
		id, err = uuid.NewV7FromReader(g.random)
	}
	if err != nil {
		panic("gameid: " + err.Error())
	}
	return Encode(id)
}

// Encode renders a UUID as 26 base32 characters. The 128 bits are left
// padded with two zero bits so the first character is always 0-7.
func Encode(id uuid.UUID) string {
	out := make([]byte, Length)
	for i := range out {
		var v byte
		for b := range 5 {
			v <<= 1
			if bit := i*5 + b - 2; bit >= 0 && id[bit/8]&(0x80>>(bit%8)) != 0 {
				v |= 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out)
}

// Decode parses an ID produced by Encode.
func Decode(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if err := Validate(s); err != nil {
		return id, err
	}
	for i := range Length {
		v := strings.IndexByte(alphabet, s[i])
		for b := range 5 {
			bit := i*5 + b - 2
			if bit < 0 || v&(0x10>>b) == 0 {
				continue
			}
			id[bit/8] |= 0x80 >> (bit % 8)
		}
	}
	return id, nil
}

// Time returns the creation time embedded in an ID.
func Time(s string) (time.Time, error) {
	id, err := Decode(s)
	if err != nil {
		return time.Time{}, err
	}
	if id.Version() != 7 {
		return time.Time{}, fmt.Errorf("game ID %q is not a version 7 UUID", s)
	}
	sec, nsec := id.Time().UnixTime()
	return time.Unix(sec, nsec), nil
}

// Validate checks that an ID is 26 characters of the base32 alphabet with a
// first character of at most '7'.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}
	for i := range len(id) {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}

type rngReader struct {
	rng *rand.Rand
}

func (r rngReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.Uint32())
	}
	return len(p), nil
}
