package booking

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

// CodeIssuer hands out patient-facing confirmation codes.
type CodeIssuer interface {
	Issue(now time.Time) string
}

// IDGenerator hands out appointment ids.
type IDGenerator interface {
	NextID(now time.Time) string
}

const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// CodeLength is the length of the random suffix in a confirmation code.
const CodeLength = 6

// RandomCodeIssuer produces MC-<year>-<6 uppercase alphanumerics>.
type RandomCodeIssuer struct{}

func (RandomCodeIssuer) Issue(now time.Time) string {
	suffix := make([]byte, CodeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand does not fail on supported platforms
			panic(fmt.Sprintf("booking: read random: %v", err))
		}
		suffix[i] = codeAlphabet[n.Int64()]
	}
	return FormatCode(now.Year(), string(suffix))
}

// FormatCode renders a confirmation code.
func FormatCode(year int, suffix string) string {
	return fmt.Sprintf("MC-%04d-%s", year, suffix)
}

// MonotonicIDs issues "appt-<unix millis>" ids that never repeat within the
// process, even for two bookings in the same millisecond.
type MonotonicIDs struct {
	mu   sync.Mutex
	last int64
}

func (m *MonotonicIDs) NextID(now time.Time) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ms := now.UnixMilli()
	if ms <= m.last {
		ms = m.last + 1
	}
	m.last = ms
	return fmt.Sprintf("appt-%d", ms)
}
