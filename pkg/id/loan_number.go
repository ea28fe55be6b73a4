package id

import (
	"crypto/rand"
	"math/big"
)

const loanNumberPrefix = "LN"

var nineDigitSpan = big.NewInt(900_000_000)

// NewLoanNumber returns "LN" followed by exactly 9 random digits
// (first digit never zero). Uniqueness is enforced by the store;
// callers retry on collision.
func NewLoanNumber() string {
	n, err := rand.Int(rand.Reader, nineDigitSpan)
	if err != nil {
		// crypto/rand only fails when the platform RNG is broken.
		panic(err)
	}
	v := n.Int64() + 100_000_000
	return loanNumberPrefix + big.NewInt(v).String()
}
