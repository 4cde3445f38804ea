// Package uri implements parsing and rendering of PKCS #11 URIs according to RFC 7512.
//
// # Overview
//
// A PKCS #11 URI identifies a module, token or object without embedding
// vendor specific paths or slot numbers:
//
//	pkcs11:token=my-ca;object=my-signing-key;type=private?pin-value=1234&module-name=softhsm2
//
// The path component (attributes separated by ";") identifies the library, slot, token and object.
// The query component (attributes separated by "&") carries runtime hints:
// PIN value or source, module name or path.
//
// # Parsing
//
//	u, err := uri.Parse("pkcs11:token=my-ca;id=%01%02")
//	if err != nil {
//	    var pe *uri.ParseError
//	    if errors.As(err, &pe) {
//	        // pe.Kind, pe.Fragment, pe.Pos
//	    }
//	}
//	label, ok := u.Token() // "my-ca", true
//	id, _ := u.ID()        // []byte{1, 2}
//
// Parsing is strict. Standard attributes may appear once and only in their own component,
// unknown attributes without the "x-" vendor prefix are rejected, "type" is limited to
// public, private, cert, secret-key and data. Failures are [*ParseError] values whose Kind
// is one of the Err* sentinels, so [errors.Is] can be used to classify them.
//
// [NewParser] creates a parser with custom [ParseOptions]: input length limit,
// whitespace stripping for URIs wrapped over several lines, and a logger for rejected inputs.
//
// # Rendering
//
// [URI.String] returns the canonical form: attributes in a fixed order, values percent-encoded
// with uppercase hex digits, "?" only when there are query attributes.
// Parsing the canonical form yields an equal URI.
//
// # Building
//
//	u, err := uri.NewBuilder().
//	    SetToken("my-ca").
//	    SetObjectLabel("my-signing-key").
//	    SetType(uri.ObjectTypePrivate).
//	    SetPINSource("file:/etc/pin").
//	    Build()
//
// # Thread Safety
//
// A [URI] is immutable and safe for concurrent reads, [Parser] is safe for concurrent use.
// [Builder] must not be shared between goroutines.
package uri
