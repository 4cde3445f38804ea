package uri

import (
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/pkcs11uri/internal/errorutil"
	"github.com/ghettovoice/pkcs11uri/internal/grammar"
)

// Scheme is the PKCS #11 URI scheme.
const Scheme = "pkcs11"

const vendorPrefix = "x-"

// Component is a URI component an attribute belongs to.
type Component uint8

const (
	PathComponent Component = iota
	QueryComponent
)

func (c Component) String() string {
	switch c {
	case PathComponent:
		return "path"
	case QueryComponent:
		return "query"
	default:
		return "Component(" + strconv.Itoa(int(c)) + ")"
	}
}

func (c Component) IsValid() bool { return c <= QueryComponent }

func (c Component) sep() byte {
	if c == QueryComponent {
		return '&'
	}
	return ';'
}

func (c Component) shouldEscape(b byte) bool {
	if c == QueryComponent {
		return !grammar.IsQueryChar(b)
	}
	return !grammar.IsPathChar(b)
}

// AttrKey identifies a standard attribute.
// Keys are declared in the canonical rendering order.
type AttrKey uint8

const (
	AttrLibraryManufacturer AttrKey = iota
	AttrLibraryDescription
	AttrLibraryVersion
	AttrSlotManufacturer
	AttrSlotDescription
	AttrSlotID
	AttrManufacturer
	AttrModel
	AttrSerial
	AttrToken
	AttrObject
	AttrType
	AttrID
	AttrPINValue
	AttrPINSource
	AttrModuleName
	AttrModulePath

	numAttrs
)

type attrDef struct {
	name  string
	comp  Component
	// norm validates a decoded value and returns its canonical form.
	norm func(v string) (string, error)
}

var attrTable = [numAttrs]attrDef{
	AttrLibraryManufacturer: {"library-manufacturer", PathComponent, nil},
	AttrLibraryDescription:  {"library-description", PathComponent, nil},
	AttrLibraryVersion:      {"library-version", PathComponent, normLibraryVersion},
	AttrSlotManufacturer:    {"slot-manufacturer", PathComponent, nil},
	AttrSlotDescription:     {"slot-description", PathComponent, nil},
	AttrSlotID:              {"slot-id", PathComponent, normSlotID},
	AttrManufacturer:        {"manufacturer", PathComponent, nil},
	AttrModel:               {"model", PathComponent, nil},
	AttrSerial:              {"serial", PathComponent, nil},
	AttrToken:               {"token", PathComponent, nil},
	AttrObject:              {"object", PathComponent, nil},
	AttrType:                {"type", PathComponent, normType},
	AttrID:                  {"id", PathComponent, nil},
	AttrPINValue:            {"pin-value", QueryComponent, nil},
	AttrPINSource:           {"pin-source", QueryComponent, nil},
	AttrModuleName:          {"module-name", QueryComponent, nil},
	AttrModulePath:          {"module-path", QueryComponent, nil},
}

var attrsByName = func() map[string]AttrKey {
	m := make(map[string]AttrKey, numAttrs)
	for k := range numAttrs {
		m[attrTable[k].name] = k
	}
	return m
}()

// LookupAttr returns the standard attribute key with the given name.
// Names are case-sensitive.
func LookupAttr(name string) (AttrKey, bool) {
	k, ok := attrsByName[name]
	return k, ok
}

// String returns the attribute name as it appears in the URI.
func (k AttrKey) String() string {
	if !k.IsValid() {
		return "AttrKey(" + strconv.Itoa(int(k)) + ")"
	}
	return attrTable[k].name
}

// Component returns the component the attribute belongs to.
func (k AttrKey) Component() Component {
	if !k.IsValid() {
		return PathComponent
	}
	return attrTable[k].comp
}

func (k AttrKey) IsValid() bool { return k < numAttrs }

// ObjectType is a value of the "type" attribute.
type ObjectType string

const (
	ObjectTypePublic    ObjectType = "public"
	ObjectTypePrivate   ObjectType = "private"
	ObjectTypeCert      ObjectType = "cert"
	ObjectTypeSecretKey ObjectType = "secret-key"
	ObjectTypeData      ObjectType = "data"
)

// IsValid reports whether t is one of the RFC 7512 object types.
// The comparison is case-sensitive.
func (t ObjectType) IsValid() bool {
	switch t {
	case ObjectTypePublic, ObjectTypePrivate, ObjectTypeCert, ObjectTypeSecretKey, ObjectTypeData:
		return true
	default:
		return false
	}
}

func normType(v string) (string, error) {
	if !ObjectType(v).IsValid() {
		return "", ErrInvalidTypeValue
	}
	return v, nil
}

// Version is a library version, the "library-version" attribute.
type Version struct {
	Major, Minor uint8
}

func (v Version) String() string {
	return strconv.Itoa(int(v.Major)) + "." + strconv.Itoa(int(v.Minor))
}

// ParseVersion parses a library version in the form "M" or "M.N".
// A missing minor part is zero.
func ParseVersion(s string) (Version, error) {
	n, err := grammar.ParseLibraryVersion(s)
	if err != nil {
		return Version{}, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidAttributeValue, err))
	}

	var ver Version
	major, err := strconv.ParseUint(grammar.MustGetNode(n, "pk11-version-major").String(), 10, 8)
	if err != nil {
		return Version{}, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidAttributeValue, err))
	}
	ver.Major = uint8(major)
	if mn, ok := n.GetNode("pk11-version-minor"); ok {
		minor, err := strconv.ParseUint(mn.String(), 10, 8)
		if err != nil {
			return Version{}, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidAttributeValue, err))
		}
		ver.Minor = uint8(minor)
	}
	return ver, nil
}

// normLibraryVersion renders "M" and "M.N" with leading zeros as "M.N".
func normLibraryVersion(v string) (string, error) {
	ver, err := ParseVersion(v)
	if err != nil {
		return "", ErrInvalidAttributeValue
	}
	return ver.String(), nil
}

func parseSlotID(s string) (uint64, error) {
	if _, err := grammar.ParseSlotID(s); err != nil {
		return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidAttributeValue, err))
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidAttributeValue, err))
	}
	return id, nil
}

func normSlotID(v string) (string, error) {
	id, err := parseSlotID(v)
	if err != nil {
		return "", ErrInvalidAttributeValue
	}
	return strconv.FormatUint(id, 10), nil
}

// Attribute is a single name/value pair of the URI.
// Value holds the percent-decoded bytes.
type Attribute struct {
	Name  string
	Value string
}
