package crypto

import (
	"sync"

	"github.com/google/uuid"
)

// IDGenerator supplies opaque unique strings. Certification codes are taken
// from it verbatim.
type IDGenerator interface {
	NewID() (string, error)
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// StaticIDGenerator hands out the configured ids in order and keeps repeating
// the last one once the list is exhausted.
type StaticIDGenerator struct {
	mu   sync.Mutex
	ids  []string
	next int
}

func NewStaticIDGenerator(ids ...string) *StaticIDGenerator {
	return &StaticIDGenerator{ids: ids}
}

func (g *StaticIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.ids) == 0 {
		return "", nil
	}

	id := g.ids[g.next]
	if g.next < len(g.ids)-1 {
		g.next++
	}
	return id, nil
}
