package uri

import (
	"strings"

	"github.com/ghettovoice/pkcs11uri/internal/grammar"
	"github.com/ghettovoice/pkcs11uri/internal/util"
)

// pair is a decoded "name=value" segment together with its location in the input.
type pair struct {
	comp  Component
	name  string
	value string
	seg   string
	pos   int
}

// tokenize splits s into path and query pairs in input order.
// Attribute names are checked syntactically, values are percent-decoded.
func tokenize(s string) ([]pair, error) {
	i := strings.IndexByte(s, ':')
	if i <= 0 {
		return nil, newParseError(ErrMissingScheme, s, 0)
	}
	if !util.EqFold(s[:i], Scheme) {
		return nil, newParseError(ErrUnknownScheme, s[:i], 0)
	}

	off := i + 1
	path, query, hasQuery := strings.Cut(s[off:], "?")
	pairs := make([]pair, 0, strings.Count(path, ";")+strings.Count(query, "&")+2)

	var err error
	if path != "" {
		if pairs, err = tokenizeComponent(pairs, PathComponent, path, off); err != nil {
			return nil, err //errtrace:skip
		}
	}
	if hasQuery {
		if pairs, err = tokenizeComponent(pairs, QueryComponent, query, off+len(path)+1); err != nil {
			return nil, err //errtrace:skip
		}
	}
	return pairs, nil
}

func tokenizeComponent(dst []pair, comp Component, s string, off int) ([]pair, error) {
	sep := string(comp.sep())
	for {
		seg, rest, more := strings.Cut(s, sep)
		p, err := tokenizeSegment(comp, seg, off)
		if err != nil {
			return nil, err //errtrace:skip
		}
		dst = append(dst, p)
		if !more {
			return dst, nil
		}
		off += len(seg) + 1
		s = rest
	}
}

func tokenizeSegment(comp Component, seg string, off int) (pair, error) {
	name, raw, ok := strings.Cut(seg, "=")
	if !ok {
		return pair{}, newParseError(ErrMalformedAttribute, seg, off)
	}
	if !grammar.IsAttrName(name) {
		return pair{}, newParseError(ErrInvalidAttributeName, seg, off)
	}

	voff := off + len(name) + 1
	if !isComponentValue(comp, raw) {
		// locate the first offending byte
		for i := 0; i < len(raw); i++ {
			c := raw[i]
			if c == '%' {
				if i+2 >= len(raw) || !grammar.IsHexChar(raw[i+1]) || !grammar.IsHexChar(raw[i+2]) {
					return pair{}, newParseError(ErrInvalidPercentEncoding, seg, voff+i)
				}
				i += 2
				continue
			}
			if comp.shouldEscape(c) {
				return pair{}, newParseError(ErrMalformedAttribute, seg, voff+i)
			}
		}
	}

	val, err := grammar.Unescape(raw)
	if err != nil {
		return pair{}, newParseError(ErrInvalidPercentEncoding, seg, voff)
	}
	return pair{comp: comp, name: name, value: val, seg: seg, pos: off}, nil
}

func isComponentValue(comp Component, s string) bool {
	if comp == QueryComponent {
		return grammar.IsQueryValue(s)
	}
	return grammar.IsPathValue(s)
}

func stripWhitespace(s string) string {
	if strings.IndexAny(s, " \t\r\n") < 0 {
		return s
	}

	b := make([]byte, 0, len(s))
	for i := range len(s) {
		switch c := s[i]; c {
		case ' ', '\t', '\r', '\n':
		default:
			b = append(b, c)
		}
	}
	return string(b)
}
