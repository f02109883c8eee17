// Package token issues guest access tokens and record ids.
package token

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const Prefix = "TOK-"

// Issuer hands out access tokens. Tokens only contain alphanumerics and hyphens
// so they survive the pass URL round trip.
type Issuer interface {
	Issue() string
}

type UUIDIssuer struct{}

func NewUUIDIssuer() UUIDIssuer {
	return UUIDIssuer{}
}

func (UUIDIssuer) Issue() string {
	return Prefix + strings.ToUpper(uuid.NewString())
}

// SequenceIssuer returns TOK-<prefix>-<n> with a monotonic counter. Unique within one process.
type SequenceIssuer struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func NewSequenceIssuer(prefix string) *SequenceIssuer {
	return &SequenceIssuer{prefix: prefix, next: 1}
}

func (s *SequenceIssuer) Issue() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok := fmt.Sprintf("%s%s-%d", Prefix, s.prefix, s.next)
	s.next++
	return tok
}

// GuestID builds the stable record id for a guest of the given type.
func GuestID(guestType string) string {
	return guestType + "-" + uuid.NewString()
}
