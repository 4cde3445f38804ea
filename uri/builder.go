package uri

import (
	"context"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"github.com/qmuntal/stateless"

	"github.com/ghettovoice/pkcs11uri/internal/errorutil"
)

type builderState string

const (
	builderStateOpen   builderState = "open"
	builderStateSealed builderState = "sealed"
)

const (
	bldEvtSet   = "set"
	bldEvtAdd   = "add"
	bldEvtBuild = "build"
)

// Builder assembles a URI attribute by attribute.
//
// Every setter applies the same rules as the parser: placement, duplicates, value checks
// and vendor name syntax. Setter errors are collected and returned by [Builder.Build].
// Once built, the builder is sealed, further setters fail with [ErrBuilderSealed].
//
// Builder is not safe for concurrent use.
type Builder struct {
	fsm  *stateless.StateMachine
	uri  URI
	errs []error
	res  *URI
	err  error
}

// NewBuilder creates a new builder in the open state.
func NewBuilder() *Builder {
	b := new(Builder)
	b.fsm = stateless.NewStateMachine(builderStateOpen)

	b.fsm.Configure(builderStateOpen).
		InternalTransition(bldEvtSet, b.actSet).
		InternalTransition(bldEvtAdd, b.actAdd).
		Permit(bldEvtBuild, builderStateSealed)

	b.fsm.Configure(builderStateSealed).
		OnEntry(b.actSeal).
		InternalTransition(bldEvtSet, b.actRejectSealed).
		InternalTransition(bldEvtAdd, b.actRejectSealed).
		Ignore(bldEvtBuild)

	return b
}

func (b *Builder) actSet(_ context.Context, args ...any) error {
	k := args[0].(AttrKey) //nolint:forcetypeassert
	v := args[1].(string)  //nolint:forcetypeassert
	if err := b.uri.setAttr(k.Component(), k, v); err != nil {
		return newParseError(errKind(err), k.String()+"="+v, -1)
	}
	return nil
}

func (b *Builder) actAdd(_ context.Context, args ...any) error {
	comp := args[0].(Component) //nolint:forcetypeassert
	name := args[1].(string)    //nolint:forcetypeassert
	v := args[2].(string)       //nolint:forcetypeassert
	if !comp.IsValid() {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("unknown component %d", comp))
	}
	if err := b.uri.add(comp, name, v); err != nil {
		return newParseError(errKind(err), name+"="+v, -1)
	}
	return nil
}

func (*Builder) actRejectSealed(context.Context, ...any) error {
	return ErrBuilderSealed
}

func (b *Builder) actSeal(context.Context, ...any) error {
	if b.err = errorutil.JoinPrefix("build pkcs11 uri:", b.errs...); b.err == nil {
		b.res = b.uri.Clone()
	}
	return nil
}

func (b *Builder) fire(trigger string, args ...any) *Builder {
	if err := b.fsm.Fire(trigger, args...); err != nil {
		b.errs = append(b.errs, err)
	}
	return b
}

// Set sets the standard attribute k to the decoded value v.
func (b *Builder) Set(k AttrKey, v string) *Builder {
	if !k.IsValid() {
		b.errs = append(b.errs, newParseError(ErrUnknownAttribute, k.String(), -1))
		return b
	}
	return b.fire(bldEvtSet, k, v)
}

// Add adds the attribute name with the decoded value v found in the component comp,
// the same way the parser does for a "name=value" segment.
func (b *Builder) Add(comp Component, name, v string) *Builder {
	return b.fire(bldEvtAdd, comp, name, v)
}

// AddVendor appends the vendor attribute name with the decoded value v to the component comp.
// The name must start with "x-".
func (b *Builder) AddVendor(comp Component, name, v string) *Builder {
	if !strings.HasPrefix(name, vendorPrefix) {
		b.errs = append(b.errs, newParseError(ErrInvalidAttributeName, name+"="+v, -1))
		return b
	}
	return b.fire(bldEvtAdd, comp, name, v)
}

func (b *Builder) SetLibraryManufacturer(v string) *Builder {
	return b.Set(AttrLibraryManufacturer, v)
}

func (b *Builder) SetLibraryDescription(v string) *Builder {
	return b.Set(AttrLibraryDescription, v)
}

func (b *Builder) SetLibraryVersion(v Version) *Builder {
	return b.Set(AttrLibraryVersion, v.String())
}

func (b *Builder) SetSlotManufacturer(v string) *Builder { return b.Set(AttrSlotManufacturer, v) }

func (b *Builder) SetSlotDescription(v string) *Builder { return b.Set(AttrSlotDescription, v) }

func (b *Builder) SetSlotID(id uint64) *Builder {
	return b.Set(AttrSlotID, strconv.FormatUint(id, 10))
}

func (b *Builder) SetManufacturer(v string) *Builder { return b.Set(AttrManufacturer, v) }

func (b *Builder) SetModel(v string) *Builder { return b.Set(AttrModel, v) }

func (b *Builder) SetSerial(v string) *Builder { return b.Set(AttrSerial, v) }

func (b *Builder) SetToken(v string) *Builder { return b.Set(AttrToken, v) }

func (b *Builder) SetObjectLabel(v string) *Builder { return b.Set(AttrObject, v) }

func (b *Builder) SetType(t ObjectType) *Builder { return b.Set(AttrType, string(t)) }

// SetID sets the object identifier, any byte values are allowed.
func (b *Builder) SetID(id []byte) *Builder { return b.Set(AttrID, string(id)) }

func (b *Builder) SetPINValue(v string) *Builder { return b.Set(AttrPINValue, v) }

func (b *Builder) SetPINSource(v string) *Builder { return b.Set(AttrPINSource, v) }

func (b *Builder) SetModuleName(v string) *Builder { return b.Set(AttrModuleName, v) }

func (b *Builder) SetModulePath(v string) *Builder { return b.Set(AttrModulePath, v) }

// Err returns the errors collected so far joined into one, or nil.
func (b *Builder) Err() error {
	return errtrace.Wrap(errorutil.Join(b.errs...))
}

// Sealed reports whether [Builder.Build] has been called.
func (b *Builder) Sealed() bool {
	return b.fsm.MustState() == builderStateSealed
}

// Build seals the builder and returns the assembled URI or the joined setter errors.
// Subsequent calls return the same result, each time as a separate copy.
func (b *Builder) Build() (*URI, error) {
	if err := b.fsm.Fire(bldEvtBuild); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if b.err != nil {
		return nil, errtrace.Wrap(b.err)
	}
	return b.res.Clone(), nil
}
