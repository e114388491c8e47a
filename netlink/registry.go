package netlink

import (
	"encoding/binary"
	"fmt"
)

// DecodeFunc decodes the payload of a message whose header has already been
// validated. The payload slice aliases the caller's buffer: copy anything
// that has to outlive the call.
type DecodeFunc func(h Header, payload []byte, order binary.ByteOrder) (Message, error)

type registryKey struct {
	family Family
	typ    HeaderType
}

// Registry maps message types to decoders on a per-family basis. Populate it
// before decoding begins: lookups are safe for concurrent use, but
// registering new decoders while a Decoder is using the Registry is not.
type Registry struct {
	decoders map[registryKey]DecodeFunc
}

func NewRegistry() *Registry {
	return &Registry{decoders: map[registryKey]DecodeFunc{}}
}

// Register installs fn as the decoder for typ within family. Control
// message types are decoded the same way for every family and cannot be
// overridden.
func (r *Registry) Register(family Family, typ HeaderType, fn DecodeFunc) error {
	if typ < NLMSG_MIN_TYPE {
		return fmt.Errorf("type %s is reserved for control messages", typ)
	}
	if fn == nil {
		return fmt.Errorf("nil decoder for type %s of family %s", typ.Name(family), family)
	}

	k := registryKey{family, typ}
	if _, ok := r.decoders[k]; ok {
		return fmt.Errorf("a decoder for type %s of family %s already exists", typ.Name(family), family)
	}
	r.decoders[k] = fn

	return nil
}

// MustRegister is like Register but panics on error. It's meant for
// setting registries up in init() functions and the like.
func (r *Registry) MustRegister(family Family, typ HeaderType, fn DecodeFunc) *Registry {
	if err := r.Register(family, typ, fn); err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the decoder for typ within family, if any. A nil Registry
// has no decoders.
func (r *Registry) Lookup(family Family, typ HeaderType) (DecodeFunc, bool) {
	if r == nil {
		return nil, false
	}
	fn, ok := r.decoders[registryKey{family, typ}]
	return fn, ok
}

// Len returns the number of registered decoders.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.decoders)
}
