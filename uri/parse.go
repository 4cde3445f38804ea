package uri

import (
	"context"
	"errors"
	"log/slog"

	"braces.dev/errtrace"

	"github.com/ghettovoice/pkcs11uri/internal/constraints"
	"github.com/ghettovoice/pkcs11uri/internal/errorutil"
	"github.com/ghettovoice/pkcs11uri/internal/grammar"
	"github.com/ghettovoice/pkcs11uri/internal/log"
	"github.com/ghettovoice/pkcs11uri/internal/util"
)

// DefaultMaxLength is the default limit of the input length accepted by the parser.
const DefaultMaxLength = 4096

// ParseOptions configures a [Parser].
type ParseOptions struct {
	// MaxLength limits the input length in bytes, checked before any processing.
	// Zero means [DefaultMaxLength], a negative value disables the limit.
	MaxLength int `json:"max_length,omitempty"`
	// IgnoreWhitespace removes SP, HTAB, CR and LF from the input before parsing,
	// so URIs wrapped over several lines are accepted. Error offsets then refer to the stripped input.
	IgnoreWhitespace bool `json:"ignore_whitespace,omitempty"`
	// Logger receives a debug record for every rejected input.
	// Records carry the error kind and offset only, never the input itself.
	// Nil means no logging.
	Logger *slog.Logger `json:"-"`
}

func (o *ParseOptions) maxLength() int {
	if o == nil || o.MaxLength == 0 {
		return DefaultMaxLength
	}
	return o.MaxLength
}

func (o *ParseOptions) ignoreWhitespace() bool {
	return o != nil && o.IgnoreWhitespace
}

func (o *ParseOptions) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return log.Noop
	}
	return o.Logger
}

// Parser parses PKCS #11 URIs.
// It is immutable and safe for concurrent use.
type Parser struct {
	maxLen   int
	ignoreWS bool
	log      *slog.Logger
}

// NewParser creates a new parser with the given options.
// Nil options mean defaults.
func NewParser(opts *ParseOptions) *Parser {
	return &Parser{
		maxLen:   opts.maxLength(),
		ignoreWS: opts.ignoreWhitespace(),
		log:      opts.logger(),
	}
}

// Parse parses a PKCS #11 URI.
// All failures are [*ParseError] values, no partial result is returned.
func (p *Parser) Parse(s string) (*URI, error) {
	u, err := p.parse(s)
	if err != nil {
		p.logReject(err)
		return nil, errtrace.Wrap(err)
	}
	return u, nil
}

func (p *Parser) parse(s string) (*URI, error) {
	if p.maxLen > 0 && len(s) > p.maxLen {
		return nil, newParseError(ErrInputTooLong, "", p.maxLen)
	}
	if p.ignoreWS {
		s = stripWhitespace(s)
	}

	pairs, err := tokenize(s)
	if err != nil {
		return nil, err //errtrace:skip
	}
	return validate(pairs)
}

func (p *Parser) logReject(err error) {
	var pe *ParseError
	if !errors.As(err, &pe) {
		return
	}
	p.log.LogAttrs(context.Background(), slog.LevelDebug, "pkcs11 uri rejected",
		slog.String("kind", pe.Kind.Error()),
		slog.Int("offset", pe.Pos),
	)
}

// validate maps tokenized pairs onto a new URI.
func validate(pairs []pair) (*URI, error) {
	u := new(URI)
	for _, p := range pairs {
		if err := u.add(p.comp, p.name, p.value); err != nil {
			return nil, newParseError(errKind(err), p.seg, p.pos)
		}
	}
	return u, nil
}

// errKind returns the package sentinel err carries, or err itself.
func errKind(err error) error {
	var kind errorutil.Error
	if errors.As(err, &kind) {
		return kind
	}
	return err
}

var defParser = NewParser(nil)

// Parse parses a PKCS #11 URI from the given input s (string or []byte) with default options.
func Parse[T constraints.Byteseq](s T) (*URI, error) {
	return errtrace.Wrap2(defParser.Parse(string(s)))
}

// MustParse is like [Parse] but panics on error.
// It is intended for tests and static initialization.
func MustParse[T constraints.Byteseq](s T) *URI {
	return util.Must2(Parse(s))
}

// Is reports whether s matches the RFC 7512 URI grammar.
// Attribute names are not checked against the attribute table, use [Parse] for full validation.
func Is[T constraints.Byteseq](s T) bool {
	_, err := grammar.ParseURI(s)
	return err == nil
}
