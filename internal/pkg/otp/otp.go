package otp

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// Generator produces one-time passcodes for email verification.
type Generator interface {
	// Generate returns a new passcode or an error if the random source fails.
	Generate() (string, error)
}

const (
	codeMin = 100000
	codeMax = 999999
)

// NumericCode generates cryptographically secure six-digit passcodes.
//
// Codes are drawn uniformly from 100000 to 999999 so they never carry a
// leading zero. Clients render the code as typed, so a fixed width without
// zero padding keeps the contract simple.
type NumericCode struct{}

// NewNumericCode returns a new NumericCode generator.
func NewNumericCode() *NumericCode {
	return &NumericCode{}
}

// Generate produces a six-digit passcode using crypto/rand.
func (nc *NumericCode) Generate() (string, error) {
	span := int64(codeMax - codeMin + 1)

	num, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(codeMin+num.Int64(), 10), nil
}
