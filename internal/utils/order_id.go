package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOrderID returns a time-based order token: ORD-<unix-ms>-<8 hex>.
// The random suffix keeps ids distinct when two orders share a millisecond.
func GenerateOrderID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), suffix)
}
