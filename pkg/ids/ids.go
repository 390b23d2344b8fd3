// Package ids genera identificadores ordenables (ULID) para registros de solo anexado,
// donde el orden lexicográfico coincide con el orden de inserción.
package ids

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// New devuelve un ULID monotónico (dentro del mismo milisegundo también crece).
func New() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
