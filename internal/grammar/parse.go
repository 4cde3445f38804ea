package grammar

import (
	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/pkcs11uri/internal/constraints"
	"github.com/ghettovoice/pkcs11uri/internal/errorutil"
)

func newMalformedInputErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedInput, args...) //errtrace:skip
}

func parse[T constraints.Byteseq](op abnf.Operator, s T) (*abnf.Node, error) {
	if len(s) == 0 {
		return nil, errtrace.Wrap(ErrEmptyInput)
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := op([]byte(s), 0, ns); err != nil {
		return nil, errtrace.Wrap(newMalformedInputErr(err))
	}

	n := ns.Best()
	if nl, il := n.Len(), len(s); nl < il {
		return nil, errtrace.Wrap(newMalformedInputErr("node length %d < input length %d", nl, il))
	}
	return n, nil
}

// ParseURI parses s with the pk11-URI rule.
func ParseURI[T constraints.Byteseq](s T) (*abnf.Node, error) {
	return errtrace.Wrap2(parse(pk11URI, s))
}

// ParseLibraryVersion parses s with the pk11-library-version rule.
// The result has "pk11-version-major" and optional "pk11-version-minor" nodes.
func ParseLibraryVersion[T constraints.Byteseq](s T) (*abnf.Node, error) {
	return errtrace.Wrap2(parse(libraryVersion, s))
}

// ParseSlotID parses s with the pk11-slot-id rule.
func ParseSlotID[T constraints.Byteseq](s T) (*abnf.Node, error) {
	return errtrace.Wrap2(parse(slotID, s))
}
