package booking

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateNumber returns a human-readable booking number: "BK" followed by
// the unix timestamp and four random digits. Uniqueness is enforced by the
// unique index on bookings.booking_number; the random suffix keeps bookings
// created within the same second from colliding.
func GenerateNumber() string {
	return fmt.Sprintf("BK%d%04d", time.Now().Unix(), rand.Intn(9000)+1000)
}
