package grammar

import (
	"strconv"

	"github.com/ghettovoice/abnf"
)

// Rules follow RFC 7512 Section 2.3, with attribute names generalized to
// pk11-attr-name. Names are checked against the attribute table by the uri package.
//
//	pk11-URI             = "pkcs11:" [ pk11-path ] [ "?" pk11-query ]
//	pk11-path            = pk11-pattr *(";" pk11-pattr)
//	pk11-query           = pk11-qattr *("&" pk11-qattr)
//	pk11-pattr           = pk11-attr-name "=" *pk11-pchar
//	pk11-qattr           = pk11-attr-name "=" *pk11-qchar
//	pk11-attr-name       = 1*(ALPHA / DIGIT / "-")
//	pk11-pchar           = unreserved / pk11-path-res-avail / pct-encoded
//	pk11-qchar           = unreserved / pk11-query-res-avail / pct-encoded
//	pk11-path-res-avail  = ":" / "[" / "]" / "@" / "!" / "$" / "'" / "(" / ")" / "*" / "+" / "," / "=" / "&"
//	pk11-query-res-avail = ":" / "[" / "]" / "/" / "?" / "|" / "@" / "!" / "$" / "'" / "(" / ")" / "*" / "+" / "," / "="
//	pk11-library-version = 1*DIGIT [ "." 1*DIGIT ]
//	pk11-slot-id         = 1*DIGIT
const (
	unreservedMarks    = "-._~"
	pathResAvailChars  = ":[]@!$'()*+,=&"
	queryResAvailChars = ":[]/?|@!$'()*+,="
)

func literal(s string) abnf.Operator { return abnf.Literal(strconv.Quote(s), []byte(s)) }

func charsOf(key, chars string) abnf.Operator {
	if len(chars) == 0 {
		panic("grammar: empty char set " + key)
	}
	ops := make([]abnf.Operator, 0, len(chars))
	for i := range len(chars) {
		ops = append(ops, literal(chars[i:i+1]))
	}
	return abnf.Alt(key, ops[0], ops[1:]...)
}

var (
	alpha = abnf.Alt("ALPHA",
		abnf.Range("%x41-5A", []byte{0x41}, []byte{0x5A}),
		abnf.Range("%x61-7A", []byte{0x61}, []byte{0x7A}),
	)
	digit  = abnf.Range("DIGIT", []byte{0x30}, []byte{0x39})
	hexdig = abnf.Alt("HEXDIG",
		digit,
		abnf.Range("%x41-46", []byte{0x41}, []byte{0x46}),
		abnf.Range("%x61-66", []byte{0x61}, []byte{0x66}),
	)

	pctEncoded = abnf.Concat("pct-encoded", literal("%"), hexdig, hexdig)
	unreserved = abnf.Alt("unreserved", alpha, digit, charsOf("mark", unreservedMarks))

	pchar = abnf.Alt("pk11-pchar", unreserved, charsOf("pk11-path-res-avail", pathResAvailChars), pctEncoded)
	qchar = abnf.Alt("pk11-qchar", unreserved, charsOf("pk11-query-res-avail", queryResAvailChars), pctEncoded)

	attrName   = abnf.Repeat1Inf("pk11-attr-name", abnf.Alt("pk11-attr-nm-char", alpha, digit, literal("-")))
	pathValue  = abnf.Repeat0Inf("pk11-path-value", pchar)
	queryValue = abnf.Repeat0Inf("pk11-query-value", qchar)

	pathAttr  = abnf.Concat("pk11-pattr", attrName, literal("="), pathValue)
	queryAttr = abnf.Concat("pk11-qattr", attrName, literal("="), queryValue)

	path = abnf.Concat("pk11-path",
		pathAttr,
		abnf.Repeat0Inf(`*( ";" pk11-pattr )`, abnf.Concat(`";" pk11-pattr`, literal(";"), pathAttr)),
	)
	query = abnf.Concat("pk11-query",
		queryAttr,
		abnf.Repeat0Inf(`*( "&" pk11-qattr )`, abnf.Concat(`"&" pk11-qattr`, literal("&"), queryAttr)),
	)

	pk11URI = abnf.Concat("pk11-URI",
		literal("pkcs11:"),
		abnf.Optional("[ pk11-path ]", path),
		abnf.Optional(`[ "?" pk11-query ]`, abnf.Concat(`"?" pk11-query`, literal("?"), query)),
	)

	libraryVersion = abnf.Concat("pk11-library-version",
		abnf.Repeat1Inf("pk11-version-major", digit),
		abnf.Optional(`[ "." pk11-version-minor ]`, abnf.Concat(`"." pk11-version-minor`,
			literal("."),
			abnf.Repeat1Inf("pk11-version-minor", digit),
		)),
	)
	slotID = abnf.Repeat1Inf("pk11-slot-id", digit)
)
