package builders

import (
	"fmt"

	"github.com/google/uuid"
)

// idGenerator produces observation and event identifiers.
type idGenerator interface {
	Generate(seed string) string
}

type randomIDGenerator struct{}

func (g *randomIDGenerator) Generate(string) string {
	return uuid.New().String()
}

// deterministicIDGenerator derives name-based UUIDs from the seed and a
// per-builder counter. The counter is part of the name, so two builders fed
// identical input in identical order produce identical IDs.
type deterministicIDGenerator struct {
	counter int
}

func (g *deterministicIDGenerator) Generate(seed string) string {
	g.counter++
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(fmt.Sprintf("%s:%d", seed, g.counter))).String()
}
