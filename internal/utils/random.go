package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewTimestampID returns the creation-time identifier used for rides, threads
// and messages. Uniqueness rests on the resolution of the clock; the stores
// perform no further uniqueness check.
func NewTimestampID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}

func GenerateRandomString(length int) string {
	result := make([]byte, length)
	charsetLength := big.NewInt(int64(len(alphanumeric)))

	for i := range result {
		num, _ := rand.Int(rand.Reader, charsetLength)
		result[i] = alphanumeric[num.Int64()]
	}

	return string(result)
}
