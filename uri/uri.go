package uri

//go:generate go tool errtrace -w .

import (
	"iter"
	"slices"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/pkcs11uri/internal/errorutil"
	"github.com/ghettovoice/pkcs11uri/internal/grammar"
	"github.com/ghettovoice/pkcs11uri/internal/types"
	"github.com/ghettovoice/pkcs11uri/internal/util"
)

// RenderOptions contains options for rendering URIs.
type RenderOptions = types.RenderOptions

var (
	_ types.Renderer        = (*URI)(nil)
	_ types.Cloneable[*URI] = (*URI)(nil)
	_ types.Equalable       = (*URI)(nil)
	_ types.ValidFlag       = (*URI)(nil)
)

// URI is a parsed PKCS #11 URI.
//
// Standard attributes are kept in a fixed table indexed by [AttrKey],
// vendor "x-" attributes keep their insertion order per component.
// A URI is immutable, use [Builder] to assemble a new one.
// The zero value is the empty URI "pkcs11:".
type URI struct {
	vals   [numAttrs]string
	set    uint32
	vendor [2][]Attribute
}

// add validates one attribute found in the component comp and stores it.
// It returns one of the Err* sentinels on failure.
func (u *URI) add(comp Component, name, value string) error {
	if strings.HasPrefix(name, vendorPrefix) {
		return errtrace.Wrap(u.addVendor(comp, name, value))
	}
	if !grammar.IsAttrName(name) {
		return ErrInvalidAttributeName
	}
	k, ok := LookupAttr(name)
	if !ok {
		return ErrUnknownAttribute
	}
	return errtrace.Wrap(u.setAttr(comp, k, value))
}

func (u *URI) addVendor(comp Component, name, value string) error {
	if !comp.IsValid() {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("unknown component %d", comp))
	}
	if !grammar.IsVendorAttrName(name) {
		return ErrInvalidAttributeName
	}
	u.vendor[comp] = append(u.vendor[comp], Attribute{Name: name, Value: value})
	return nil
}

func (u *URI) setAttr(comp Component, k AttrKey, value string) error {
	if !k.IsValid() {
		return ErrUnknownAttribute
	}
	def := &attrTable[k]
	if def.comp != comp {
		return ErrMisplacedAttribute
	}
	if u.has(k) {
		return ErrDuplicateAttribute
	}
	if def.norm != nil {
		v, err := def.norm(value)
		if err != nil {
			return errtrace.Wrap(err)
		}
		value = v
	}
	u.vals[k] = value
	u.set |= 1 << k
	return nil
}

func (u *URI) has(k AttrKey) bool { return u.set&(1<<k) != 0 }

// Get returns the value of the standard attribute k.
func (u *URI) Get(k AttrKey) (string, bool) {
	if u == nil || !k.IsValid() || !u.has(k) {
		return "", false
	}
	return u.vals[k], true
}

// Vendor returns all values of the vendor attribute name in the component comp
// in their insertion order.
func (u *URI) Vendor(comp Component, name string) ([]string, bool) {
	if u == nil || !comp.IsValid() {
		return nil, false
	}
	var vals []string
	for _, a := range u.vendor[comp] {
		if a.Name == name {
			vals = append(vals, a.Value)
		}
	}
	return vals, len(vals) > 0
}

// Attrs iterates over the attributes of the component comp in canonical order:
// standard attributes in table order followed by vendor attributes.
func (u *URI) Attrs(comp Component) iter.Seq[Attribute] {
	return func(yield func(Attribute) bool) {
		if u == nil || !comp.IsValid() {
			return
		}
		for k := range numAttrs {
			if attrTable[k].comp != comp || !u.has(k) {
				continue
			}
			if !yield(Attribute{Name: attrTable[k].name, Value: u.vals[k]}) {
				return
			}
		}
		for _, a := range u.vendor[comp] {
			if !yield(a) {
				return
			}
		}
	}
}

// PathAttrs returns path attributes in canonical order.
func (u *URI) PathAttrs() []Attribute { return slices.Collect(u.Attrs(PathComponent)) }

// QueryAttrs returns query attributes in canonical order.
func (u *URI) QueryAttrs() []Attribute { return slices.Collect(u.Attrs(QueryComponent)) }

// HasQuery reports whether the URI has any query attribute.
func (u *URI) HasQuery() bool {
	_, ok := util.IterFirst(u.Attrs(QueryComponent))
	return ok
}

// LibraryManufacturer returns the "library-manufacturer" attribute.
func (u *URI) LibraryManufacturer() (string, bool) { return u.Get(AttrLibraryManufacturer) }

// LibraryDescription returns the "library-description" attribute.
func (u *URI) LibraryDescription() (string, bool) { return u.Get(AttrLibraryDescription) }

// LibraryVersion returns the "library-version" attribute.
func (u *URI) LibraryVersion() (Version, bool) {
	v, ok := u.Get(AttrLibraryVersion)
	if !ok {
		return Version{}, false
	}
	ver, err := ParseVersion(v)
	if err != nil {
		return Version{}, false
	}
	return ver, true
}

func (u *URI) SlotManufacturer() (string, bool) { return u.Get(AttrSlotManufacturer) }

func (u *URI) SlotDescription() (string, bool) { return u.Get(AttrSlotDescription) }

// SlotID returns the "slot-id" attribute, a decimal slot number.
func (u *URI) SlotID() (uint64, bool) {
	v, ok := u.Get(AttrSlotID)
	if !ok {
		return 0, false
	}
	id, err := parseSlotID(v)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (u *URI) Manufacturer() (string, bool) { return u.Get(AttrManufacturer) }

func (u *URI) Model() (string, bool) { return u.Get(AttrModel) }

func (u *URI) Serial() (string, bool) { return u.Get(AttrSerial) }

// Token returns the token label, the "token" attribute.
func (u *URI) Token() (string, bool) { return u.Get(AttrToken) }

// ObjectLabel returns the object label, the "object" attribute.
func (u *URI) ObjectLabel() (string, bool) { return u.Get(AttrObject) }

// Type returns the object type, the "type" attribute.
func (u *URI) Type() (ObjectType, bool) {
	v, ok := u.Get(AttrType)
	return ObjectType(v), ok
}

// ID returns the object identifier, the "id" attribute, as raw bytes.
func (u *URI) ID() ([]byte, bool) {
	v, ok := u.Get(AttrID)
	if !ok {
		return nil, false
	}
	return []byte(v), true
}

// PINValue returns the "pin-value" query attribute.
func (u *URI) PINValue() (string, bool) { return u.Get(AttrPINValue) }

// PINSource returns the "pin-source" query attribute.
// It is returned as is, the caller decides how to resolve it.
func (u *URI) PINSource() (string, bool) { return u.Get(AttrPINSource) }

func (u *URI) ModuleName() (string, bool) { return u.Get(AttrModuleName) }

func (u *URI) ModulePath() (string, bool) { return u.Get(AttrModulePath) }

// Clone returns a deep copy of the URI.
func (u *URI) Clone() *URI {
	if u == nil {
		return nil
	}
	u2 := *u
	for c := range u.vendor {
		u2.vendor[c] = slices.Clone(u.vendor[c])
	}
	return &u2
}

// Equal reports whether val is a URI with the same attribute set.
// Standard attributes are compared regardless of input order,
// vendor attributes are compared in order per component.
func (u *URI) Equal(val any) bool {
	var other *URI
	switch v := val.(type) {
	case URI:
		other = &v
	case *URI:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}

	return u.set == other.set &&
		u.vals == other.vals &&
		slices.Equal(u.vendor[PathComponent], other.vendor[PathComponent]) &&
		slices.Equal(u.vendor[QueryComponent], other.vendor[QueryComponent])
}

// IsValid reports whether the URI is non-nil.
// A URI can only be constructed through parsing or [Builder], both validate every attribute.
func (u *URI) IsValid() bool { return u != nil }

// MarshalText implements [encoding.TextMarshaler].
func (u *URI) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *URI) UnmarshalText(text []byte) error {
	u1, err := Parse(text)
	if err != nil {
		*u = URI{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}
