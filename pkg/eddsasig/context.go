package eddsasig

import (
	"github.com/pkg/errors"

	"github.com/mahdiidarabi/chainsig/pkg/sigerr"
)

// MaxContextSize is the RFC 8032 limit on Ed25519ph context strings.
const MaxContextSize = 255

// Context is the optional domain-separation string of Ed25519ph.
//
// An absent context and a present empty one are different values of this
// type. RFC 8032 §5.1 encodes both as a zero-length context in dom2, so they
// produce the same signature bytes.
type Context struct {
	value   string
	present bool
}

// NoContext is the absent context.
var NoContext = Context{}

// WithContext returns a present context holding s.
func WithContext(s string) Context {
	return Context{value: s, present: true}
}

// Value returns the context string and whether one was given.
func (c Context) Value() (string, bool) {
	return c.value, c.present
}

func (c Context) String() string {
	if !c.present {
		return "<none>"
	}
	return c.value
}

func (c Context) validate() error {
	if len(c.value) > MaxContextSize {
		return errors.Wrapf(sigerr.ErrInvalidContext, "context is %d bytes, limit is %d", len(c.value), MaxContextSize)
	}
	return nil
}
