package sketch

import (
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces unique object identifiers.
type IDGenerator func() string

// UUID returns a generator of upper-case RFC 4122 UUIDs, the format Sketch
// uses for do_objectID and symbolID.
func UUID() IDGenerator {
	return func() string {
		return strings.ToUpper(uuid.NewString())
	}
}

// Sequential returns a generator of "<prefix>1", "<prefix>2", ...
// Useful for reproducible documents.
func Sequential(prefix string) IDGenerator {
	var n atomic.Int64
	return func() string {
		return prefix + strconv.FormatInt(n.Add(1), 10)
	}
}

var idgen atomic.Pointer[IDGenerator]

func init() {
	g := UUID()
	idgen.Store(&g)
}

// SetIDGenerator replaces the generator used by NewObjectID.
// Pass nil to restore the UUID default.
func SetIDGenerator(g IDGenerator) {
	if g == nil {
		g = UUID()
	}
	idgen.Store(&g)
}

// NewObjectID returns a fresh identifier.
func NewObjectID() string {
	return (*idgen.Load())()
}
