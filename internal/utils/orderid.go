package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

const (
	OrderIDMin = 1000
	OrderIDMax = 89999
)

// GenerateOrderID returns a random numeric id in [OrderIDMin, OrderIDMax].
// Uniqueness is enforced by the orders table, not here.
func GenerateOrderID() string {
	span := big.NewInt(OrderIDMax - OrderIDMin + 1)
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		// fallback: time-based entropy
		n = big.NewInt(time.Now().UnixNano() % span.Int64())
	}
	return strconv.FormatInt(OrderIDMin+n.Int64(), 10)
}
