package canvas

import (
	"strconv"

	"github.com/google/uuid"
)

// IDGenerator produces identifiers for synthesized canvas nodes and edges.
// It is injected rather than called through global random state so tests
// can produce deterministic output.
type IDGenerator func() string

// UUIDGenerator returns the production generator backed by random UUIDs
func UUIDGenerator() IDGenerator {
	return func() string {
		return uuid.New().String()
	}
}

// SequentialGenerator returns a generator emitting "{prefix}-1",
// "{prefix}-2", ... in call order. Intended for tests.
func SequentialGenerator(prefix string) IDGenerator {
	counter := 0
	return func() string {
		counter++
		return prefix + "-" + strconv.Itoa(counter)
	}
}
