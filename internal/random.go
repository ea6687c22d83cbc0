package internal

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	secureIDRandomLen = 16
	secureIDAlphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// SecureID returns an opaque correlation token: a base-36 millisecond timestamp
// followed by 16 characters drawn uniformly from the 62-character alphanumeric
// alphabet. The timestamp prefix makes IDs generated far apart sort by time and
// keeps IDs practically unique even if the random draws collide; IDs minted in
// the same millisecond carry no ordering guarantee.
//
// Adequate for correlation tokens, not for access-control secrets: the format
// reveals creation time and the random source is not meant to resist an
// observer of the process.
func SecureID() (string, error) {
	var b strings.Builder
	b.Grow(secureIDRandomLen + 10)

	b.WriteString(strconv.FormatInt(time.Now().UnixMilli(), 36))

	max := big.NewInt(int64(len(secureIDAlphabet)))
	for i := 0; i < secureIDRandomLen; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(secureIDAlphabet[n.Int64()])
	}

	return b.String(), nil
}

// RandomInt returns a uniform integer in [min, max] using crypto/rand.
// min must be <= max; the caller guarantees the range is valid.
func RandomInt(min, max int) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max-min+1)))
	if err != nil {
		return 0, err
	}
	return min + int(n.Int64()), nil
}
