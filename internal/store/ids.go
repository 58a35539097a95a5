package store

import (
	"encoding/binary"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

const (
	idLength   = 9
	maxIDTries = 16
)

// IDGenerator produces short base-36 identifiers drawn from random UUID bits.
// Candidates that already exist in the target collection are rejected; after
// maxIDTries collisions a monotonic counter is appended.
type IDGenerator struct {
	source func() [16]byte
	seq    atomic.Uint64
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{source: func() [16]byte { return uuid.New() }}
}

// NewIDGeneratorFrom is meant for tests that need a predictable source.
func NewIDGeneratorFrom(source func() [16]byte) *IDGenerator {
	return &IDGenerator{source: source}
}

func (g *IDGenerator) Next(exists func(string) bool) string {
	var id string
	for i := 0; i < maxIDTries; i++ {
		id = g.candidate()
		if exists == nil || !exists(id) {
			return id
		}
	}
	for {
		next := id + "-" + strconv.FormatUint(g.seq.Add(1), 36)
		if !exists(next) {
			return next
		}
	}
}

func (g *IDGenerator) candidate() string {
	raw := g.source()
	s := strconv.FormatUint(binary.BigEndian.Uint64(raw[:8]), 36)
	for len(s) < idLength {
		s = "0" + s
	}
	return s[len(s)-idLength:]
}
