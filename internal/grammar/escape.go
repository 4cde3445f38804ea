package grammar

import (
	"fmt"

	"github.com/ghettovoice/pkcs11uri/internal/constraints"
)

// EscapeError reports a "%" that is not followed by two hex digits.
type EscapeError struct {
	// Offset is the byte offset of the "%" within the escaped input.
	Offset int
}

func (e *EscapeError) Error() string {
	return fmt.Sprintf("%s at offset %d", ErrInvalidEscape, e.Offset)
}

func (*EscapeError) Unwrap() error { return ErrInvalidEscape }

func (*EscapeError) Grammar() bool { return true }

// Unescape converts each "%" HEXDIG HEXDIG triplet of s into the hex-decoded byte.
// Hex digits may be of either case. Decoding is byte-wise, the result is not required to be UTF-8.
func Unescape[T constraints.Byteseq](s T) (T, error) {
	var i int
	for i < len(s) && s[i] != '%' {
		i++
	}
	if i == len(s) {
		return s, nil
	}

	b := make([]byte, 0, len(s))
	for j := range i {
		b = append(b, s[j])
	}
	for ; i < len(s); i++ {
		if s[i] != '%' {
			b = append(b, s[i])
			continue
		}
		if i+2 >= len(s) || !IsHexChar(s[i+1]) || !IsHexChar(s[i+2]) {
			return s, &EscapeError{Offset: i} //errtrace:skip
		}
		b = append(b, unhex(s[i+1])<<4|unhex(s[i+2]))
		i += 2
	}
	return T(b), nil
}

// Escape replaces each byte matched by shouldEscape with the uppercase hex form "%" HEXDIG HEXDIG.
// If shouldEscape is nil, all bytes except unreserved ones are escaped.
// Unlike URL path escaping an existing "%" is always escaped, so Unescape(Escape(s)) == s.
func Escape[T constraints.Byteseq](s T, shouldEscape func(c byte) bool) T {
	if shouldEscape == nil {
		shouldEscape = func(c byte) bool { return !IsCharUnreserved(c) }
	}

	var n int
	for i := range len(s) {
		if s[i] == '%' || shouldEscape(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	b := make([]byte, 0, len(s)+2*n)
	for i := range len(s) {
		if c := s[i]; c == '%' || shouldEscape(c) {
			b = append(b, '%', upperhex[c>>4], upperhex[c&15])
		} else {
			b = append(b, c)
		}
	}
	return T(b)
}

const upperhex = "0123456789ABCDEF"

// IsHexChar checks HEXDIG rule, either case.
func IsHexChar(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

// IsAlphanumChar checks alphanum rule.
func IsAlphanumChar(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

func charSet(chars string) map[byte]bool {
	m := make(map[byte]bool, len(chars))
	for i := range len(chars) {
		m[chars[i]] = true
	}
	return m
}

var (
	unreservedSet    = charSet(unreservedMarks)
	pathResAvailSet  = charSet(pathResAvailChars)
	queryResAvailSet = charSet(queryResAvailChars)
)

// IsCharUnreserved checks on RFC 3986 unreserved rule.
func IsCharUnreserved(c byte) bool {
	return unreservedSet[c] || IsAlphanumChar(c)
}

// IsPathChar reports whether c may appear unescaped in a path attribute value (pk11-pchar).
func IsPathChar(c byte) bool {
	return pathResAvailSet[c] || IsCharUnreserved(c)
}

// IsQueryChar reports whether c may appear unescaped in a query attribute value (pk11-qchar).
func IsQueryChar(c byte) bool {
	return queryResAvailSet[c] || IsCharUnreserved(c)
}
