package uri

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/pkcs11uri/internal/grammar"
	"github.com/ghettovoice/pkcs11uri/internal/ioutil"
	"github.com/ghettovoice/pkcs11uri/internal/log"
	"github.com/ghettovoice/pkcs11uri/internal/util"
)

// RenderTo writes the canonical form of the URI to w.
//
// Path attributes are written in table order followed by vendor attributes,
// then, if there are any query attributes, "?" and the query attributes in the same manner.
// Every value byte outside the component literal set is percent-encoded with uppercase hex digits.
func (u *URI) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if u == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(Scheme).WriteChar(':')
	cw.Call(u.renderPath)
	if opts == nil || !opts.OmitQuery {
		cw.Call(u.renderQuery)
	}
	return errtrace.Wrap2(cw.Result())
}

func (u *URI) renderPath(w io.Writer) (num int, err error) {
	return errtrace.Wrap2(u.renderAttrs(w, PathComponent))
}

func (u *URI) renderQuery(w io.Writer) (num int, err error) {
	if !u.HasQuery() {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteChar('?')
	cw.Call(func(w io.Writer) (int, error) { return u.renderAttrs(w, QueryComponent) })
	return errtrace.Wrap2(cw.Result())
}

func (u *URI) renderAttrs(w io.Writer, comp Component) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	var i int
	for a := range u.Attrs(comp) {
		if i > 0 {
			cw.WriteChar(comp.sep())
		}
		cw.WriteString(a.Name).WriteChar('=').WriteString(grammar.Escape(a.Value, comp.shouldEscape))
		i++
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the string representation of the URI.
func (u *URI) Render(opts *RenderOptions) string {
	if u == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the canonical string representation of the URI.
func (u *URI) String() string {
	if u == nil {
		return ""
	}
	return u.Render(nil)
}

// Format implements fmt.Formatter for custom formatting of the URI.
//
//   - %s and %v print the canonical form, %+s writes it directly to the state;
//   - %q prints the quoted canonical form;
//   - %#v and other verbs print the underlying struct.
func (u *URI) Format(f fmt.State, verb rune) {
	switch {
	case verb == 's', verb == 'v' && !f.Flag('#'):
		if f.Flag('+') {
			u.RenderTo(f, nil) //nolint:errcheck
			return
		}
		fmt.Fprint(f, u.String())
		return
	case verb == 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
		return
	default:
		type hideMethods URI
		type URI hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*URI)(u))
		return
	}
}

// LogValue implements [slog.LogValuer].
// Attributes are grouped by component with percent-encoded values and pin-value redacted.
func (u *URI) LogValue() slog.Value {
	if u == nil {
		return slog.Value{}
	}

	attrs := make([]slog.Attr, 0, 2)
	for _, comp := range [...]Component{PathComponent, QueryComponent} {
		var group []slog.Attr
		for a := range u.Attrs(comp) {
			v := grammar.Escape(a.Value, comp.shouldEscape)
			if a.Name == attrTable[AttrPINValue].name {
				v = log.Redacted
			}
			group = append(group, slog.String(a.Name, v))
		}
		if len(group) > 0 {
			attrs = append(attrs, slog.Attr{Key: comp.String(), Value: slog.GroupValue(group...)})
		}
	}
	return slog.GroupValue(attrs...)
}
