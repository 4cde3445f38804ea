// Package grammar implements the RFC 7512 grammar used by the uri package.
package grammar

//go:generate go tool errtrace -w .

import (
	"fmt"

	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/pkcs11uri/internal/constraints"
)

func init() {
	abnf.EnableNodeCache(1024)
}

// Error is a grammar error.
type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

const (
	ErrNodeNotFound   Error = "node not found"
	ErrEmptyInput     Error = "empty input"
	ErrMalformedInput Error = "malformed input"
	ErrInvalidEscape  Error = "invalid percent-encoding"
)

// MustGetNode returns a pointer to the ABNF node with the given key.
func MustGetNode(n *abnf.Node, k string) *abnf.Node {
	sn, ok := n.GetNode(k)
	if !ok {
		panic(fmt.Errorf("get node %q from node %q: %w", k, n.Key, ErrNodeNotFound))
	}
	return sn
}

func matchAll[T constraints.Byteseq](op abnf.Operator, s T) bool {
	ns := abnf.NewNodes()
	defer ns.Free()

	if err := op([]byte(s), 0, ns); err != nil {
		return false
	}
	return ns.Best().Len() == len(s)
}

// IsAttrName reports whether s is a syntactically valid attribute name.
func IsAttrName[T constraints.Byteseq](s T) bool {
	if len(s) == 0 {
		return false
	}
	return matchAll(attrName, s)
}

// IsVendorAttrName reports whether s is a vendor attribute name, "x-" followed by at least one name char.
// The prefix is case-sensitive.
func IsVendorAttrName[T constraints.Byteseq](s T) bool {
	return len(s) > 2 && s[0] == 'x' && s[1] == '-' && IsAttrName(s)
}

// IsPathValue reports whether s is a valid percent-encoded path attribute value.
func IsPathValue[T constraints.Byteseq](s T) bool {
	if len(s) == 0 {
		return true
	}
	return matchAll(pathValue, s)
}

// IsQueryValue reports whether s is a valid percent-encoded query attribute value.
func IsQueryValue[T constraints.Byteseq](s T) bool {
	if len(s) == 0 {
		return true
	}
	return matchAll(queryValue, s)
}
