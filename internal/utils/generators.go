package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateOTP returns a 6-digit numeric code.
func GenerateOTP() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// GenerateOrderNumber returns a human-readable order number such as
// ORD-MB3K2F9-X7Q4T. Uniqueness is probabilistic: a millisecond timestamp
// plus five random base36 characters.
func GenerateOrderNumber() string {
	return "ORD-" + base36Timestamp() + "-" + randomBase36(5)
}

// GenerateTrackingID returns a tracking identifier such as
// TRK-MB3K2F9-X7Q4TNZ, distinct from the order number and internal id.
func GenerateTrackingID() string {
	return "TRK-" + base36Timestamp() + "-" + randomBase36(7)
}

func base36Timestamp() string {
	return strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
}

func randomBase36(length int) string {
	out := make([]byte, length)
	max := big.NewInt(int64(len(base36Alphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			out[i] = base36Alphabet[time.Now().UnixNano()%36]
			continue
		}
		out[i] = base36Alphabet[n.Int64()]
	}
	return string(out)
}
