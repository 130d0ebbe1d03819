package rooms

import "strings"

// privatePrefix namespaces derived two-party rooms so they can never
// collide with a public room name; public names carrying the prefix are
// rejected at construction.
const privatePrefix = "private-"

// Directory holds the fixed set of public rooms and the derivation rule
// for private two-party room identifiers.
type Directory struct {
	public []string
	index  map[string]struct{}
}

// NewDirectory builds a directory from the configured public room names.
// Names that are empty or that collide with the private namespace are
// dropped.
func NewDirectory(public []string) *Directory {
	d := &Directory{
		public: make([]string, 0, len(public)),
		index:  make(map[string]struct{}, len(public)),
	}
	for _, name := range public {
		name = strings.TrimSpace(name)
		if name == "" || strings.HasPrefix(name, privatePrefix) {
			continue
		}
		if _, ok := d.index[name]; ok {
			continue
		}
		d.public = append(d.public, name)
		d.index[name] = struct{}{}
	}
	return d
}

// Public returns the public room names in declaration order.
func (d *Directory) Public() []string {
	out := make([]string, len(d.public))
	copy(out, d.public)
	return out
}

// IsPublic reports whether name is one of the pre-declared public rooms.
func (d *Directory) IsPublic(name string) bool {
	_, ok := d.index[name]
	return ok
}

// PrivateRoomID derives the deterministic room identifier for a pair of
// connection IDs. The two IDs are ordered as opaque strings before
// concatenation, so PrivateRoomID(a, b) == PrivateRoomID(b, a).
func PrivateRoomID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return privatePrefix + a + "-" + b
}

// IsPrivate reports whether name sits in the private room namespace.
func IsPrivate(name string) bool {
	return strings.HasPrefix(name, privatePrefix)
}

// AllowedJoinTarget reports whether requester may join the named room:
// any public room, or a private room whose derivation includes the
// requester's own connection ID.
func (d *Directory) AllowedJoinTarget(name, requesterID string) bool {
	if d.IsPublic(name) {
		return true
	}
	if !IsPrivate(name) || requesterID == "" {
		return false
	}
	// The requester must be one of the two ordered participants.
	pair := strings.TrimPrefix(name, privatePrefix)
	return strings.HasPrefix(pair, requesterID+"-") ||
		strings.HasSuffix(pair, "-"+requesterID)
}
