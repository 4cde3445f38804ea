package uri

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ghettovoice/pkcs11uri/internal/errorutil"
	"github.com/ghettovoice/pkcs11uri/internal/log"
)

const (
	ErrMissingScheme          errorutil.Error = "missing scheme"
	ErrUnknownScheme          errorutil.Error = "unknown scheme"
	ErrMalformedAttribute     errorutil.Error = "malformed attribute"
	ErrInvalidAttributeName   errorutil.Error = "invalid attribute name"
	ErrInvalidPercentEncoding errorutil.Error = "invalid percent-encoding"
	ErrUnknownAttribute       errorutil.Error = "unknown attribute"
	ErrMisplacedAttribute     errorutil.Error = "misplaced attribute"
	ErrDuplicateAttribute     errorutil.Error = "duplicate attribute"
	ErrInvalidTypeValue       errorutil.Error = "invalid type value"
	ErrInvalidAttributeValue  errorutil.Error = "invalid attribute value"
	ErrInputTooLong           errorutil.Error = "input too long"
	ErrBuilderSealed          errorutil.Error = "builder sealed"
)

// ParseError describes a rejected URI or attribute.
// Kind is one of the Err* sentinels, so errors.Is(err, ErrDuplicateAttribute) and alike work
// on any error returned by the package.
type ParseError struct {
	Kind error
	// Fragment is the offending part of the input, usually a whole "name=value" segment.
	Fragment string
	// Pos is the byte offset of the failure within the input, -1 for builder errors.
	Pos int
}

func newParseError(kind error, frag string, pos int) *ParseError {
	return &ParseError{Kind: kind, Fragment: frag, Pos: pos}
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}

	sb := strings.Builder{}
	sb.WriteString(e.Kind.Error())
	if e.Pos >= 0 {
		sb.WriteString(" at offset ")
		sb.WriteString(strconv.Itoa(e.Pos))
	}
	if e.Fragment != "" {
		fmt.Fprintf(&sb, ": %q", redactFragment(e.Fragment))
	}
	return sb.String()
}

func (e *ParseError) Unwrap() error { return e.Kind }

func (*ParseError) Grammar() bool { return true }

// redactFragment hides pin-value values so errors are safe to log.
func redactFragment(s string) string {
	const key = "pin-value="

	i := strings.Index(s, key)
	if i < 0 {
		return s
	}

	sb := strings.Builder{}
	for i >= 0 {
		i += len(key)
		sb.WriteString(s[:i])
		sb.WriteString(log.Redacted)
		s = s[i:]
		if j := strings.IndexAny(s, "&;"); j >= 0 {
			s = s[j:]
		} else {
			s = ""
		}
		i = strings.Index(s, key)
	}
	sb.WriteString(s)
	return sb.String()
}
