package services

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	pnrAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// PNRLength is fixed at 10 uppercase alphanumeric characters.
	PNRLength = 10
)

// GeneratePNR produces a booking reference code. Uniqueness is enforced by
// the bookings table's unique key, not by the entropy here; a collision
// surfaces as a duplicate-key insert and the caller regenerates.
func GeneratePNR() (string, error) {
	var b strings.Builder
	b.Grow(PNRLength)
	max := big.NewInt(int64(len(pnrAlphabet)))
	for i := 0; i < PNRLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(pnrAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// ValidPNR reports whether a string has the PNR shape. Used to reject
// malformed lookups before touching the store.
func ValidPNR(pnr string) bool {
	if len(pnr) != PNRLength {
		return false
	}
	for i := 0; i < len(pnr); i++ {
		if !strings.ContainsRune(pnrAlphabet, rune(pnr[i])) {
			return false
		}
	}
	return true
}
