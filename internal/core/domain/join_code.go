package domain

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// JoinCodeAlphabet holds uppercase letters and digits without the
// look-alike characters 0, O, 1 and I.
const JoinCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// JoinCodeLength is the number of characters in a generated join code.
const JoinCodeLength = 6

// DefaultJoinCode is used until an admin regenerates the code.
const DefaultJoinCode = "WORK2024"

// NewJoinCode draws JoinCodeLength independent uniform characters from
// JoinCodeAlphabet.
func NewJoinCode() string {
	max := big.NewInt(int64(len(JoinCodeAlphabet)))
	var b strings.Builder
	b.Grow(JoinCodeLength)
	for range JoinCodeLength {
		n, _ := rand.Int(rand.Reader, max)
		b.WriteByte(JoinCodeAlphabet[n.Int64()])
	}
	return b.String()
}

// JoinCodeMatches compares a supplied code to the current one, ignoring case.
func JoinCodeMatches(supplied, current string) bool {
	return current != "" && strings.EqualFold(strings.TrimSpace(supplied), current)
}
