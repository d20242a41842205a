package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderNumberPrefix is the externally visible prefix on every order
// reference.
const OrderNumberPrefix = "BH"

// GenerateOrderNumber returns a reference of the form
// BH20250131A1B2C3D4: prefix, calendar date, 8 uppercase hex chars.
// The random suffix makes concurrent generation collision-free for any
// realistic order volume; the unique index on orders.order_number is
// the final arbiter.
func GenerateOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s%s%s", OrderNumberPrefix, time.Now().Format("20060102"), suffix)
}
