package merge

import (
	"encoding/binary"

	"github.com/viant/wrapmerge/inspector/graph"
)

// Signature identifies a method for inheritance matching: name plus ordered argument type codes.
// Return type, argument names and method constness are not part of the identity.
type Signature struct {
	Name     string
	ArgTypes []graph.TypeCode
}

// SignatureOf returns signature of a function
func SignatureOf(fn *graph.Function) Signature {
	return Signature{Name: fn.Name, ArgTypes: fn.ArgTypes()}
}

// Matches returns true when both signatures have the same name and argument type codes
func Matches(a, b Signature) bool {
	if a.Name != b.Name || len(a.ArgTypes) != len(b.ArgTypes) {
		return false
	}
	for i, code := range a.ArgTypes {
		if b.ArgTypes[i] != code {
			return false
		}
	}
	return true
}

// Key returns a digest of the signature, used only to bucket candidates
func (s Signature) Key() uint64 {
	codes := make([]byte, 4*len(s.ArgTypes))
	for i, code := range s.ArgTypes {
		binary.LittleEndian.PutUint32(codes[4*i:], uint32(code))
	}
	key, err := graph.Hash([]byte(s.Name), codes)
	if err != nil {
		return 0
	}
	return key
}
