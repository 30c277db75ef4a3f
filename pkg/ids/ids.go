package ids

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"
)

// Prefix identifies the collection a token belongs to.
type Prefix string

const (
	PrefixOrder       Prefix = "ORD"
	PrefixRepair      Prefix = "R"
	PrefixSellRequest Prefix = "SR"
	PrefixPayment     Prefix = "PAY"
)

// New returns a time-based token like ORD-1756500000000-9f3a. The millisecond
// clock keeps tokens sortable by creation time; the random suffix keeps two
// tokens minted in the same millisecond distinct.
func New(prefix Prefix) string {
	return fmt.Sprintf("%s-%d-%04x", prefix, time.Now().UnixMilli(), randomSuffix())
}

func randomSuffix() uint16 {
	var buf [2]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return uint16(time.Now().UnixNano())
	}
	return binary.BigEndian.Uint16(buf[:])
}
