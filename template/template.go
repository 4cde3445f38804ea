//go:build pkcs11

// Package template converts PKCS #11 URIs into github.com/miekg/pkcs11 object search templates
// and matches URIs against library, slot and token information.
//
// Nothing here loads a module or opens a session, callers pass the values obtained from their
// own [pkcs11.Ctx].
package template

import (
	"strings"

	"github.com/miekg/pkcs11"

	"github.com/ghettovoice/pkcs11uri/internal/types"
	"github.com/ghettovoice/pkcs11uri/uri"
)

// ObjectClass returns the CKO_* object class of the URI object type.
func ObjectClass(t uri.ObjectType) (uint, bool) {
	switch t {
	case uri.ObjectTypePublic:
		return pkcs11.CKO_PUBLIC_KEY, true
	case uri.ObjectTypePrivate:
		return pkcs11.CKO_PRIVATE_KEY, true
	case uri.ObjectTypeCert:
		return pkcs11.CKO_CERTIFICATE, true
	case uri.ObjectTypeSecretKey:
		return pkcs11.CKO_SECRET_KEY, true
	case uri.ObjectTypeData:
		return pkcs11.CKO_DATA, true
	default:
		return 0, false
	}
}

// ObjectTemplate returns the FindObjectsInit template for the object attributes of u:
// CKA_CLASS from "type", CKA_LABEL from "object" and CKA_ID from "id".
// An empty template matches every object.
func ObjectTemplate(u *uri.URI) []*pkcs11.Attribute {
	if !types.IsValid(u) {
		return nil
	}

	var tmpl []*pkcs11.Attribute
	if t, ok := u.Type(); ok {
		if cls, ok := ObjectClass(t); ok {
			tmpl = append(tmpl, pkcs11.NewAttribute(pkcs11.CKA_CLASS, cls))
		}
	}
	if label, ok := u.ObjectLabel(); ok {
		tmpl = append(tmpl, pkcs11.NewAttribute(pkcs11.CKA_LABEL, label))
	}
	if id, ok := u.ID(); ok {
		tmpl = append(tmpl, pkcs11.NewAttribute(pkcs11.CKA_ID, id))
	}
	return tmpl
}

// PKCS #11 info structures pad text fields with spaces.
func trimPad(s string) string { return strings.TrimRight(s, " \x00") }

func matchText(u *uri.URI, k uri.AttrKey, v string) bool {
	want, ok := u.Get(k)
	return !ok || want == trimPad(v)
}

// MatchToken reports whether the token attributes of u match ti.
// Absent attributes match anything.
func MatchToken(u *uri.URI, ti pkcs11.TokenInfo) bool {
	return types.IsValid(u) &&
		matchText(u, uri.AttrToken, ti.Label) &&
		matchText(u, uri.AttrManufacturer, ti.ManufacturerID) &&
		matchText(u, uri.AttrModel, ti.Model) &&
		matchText(u, uri.AttrSerial, ti.SerialNumber)
}

// MatchSlot reports whether the slot attributes of u match the slot id and si.
// Absent attributes match anything.
func MatchSlot(u *uri.URI, id uint, si pkcs11.SlotInfo) bool {
	if !types.IsValid(u) {
		return false
	}
	if want, ok := u.SlotID(); ok && want != uint64(id) {
		return false
	}
	return matchText(u, uri.AttrSlotManufacturer, si.ManufacturerID) &&
		matchText(u, uri.AttrSlotDescription, si.SlotDescription)
}

// MatchLibrary reports whether the library attributes of u match info.
// Absent attributes match anything, "library-version=M" matches M.0 only.
func MatchLibrary(u *uri.URI, info pkcs11.Info) bool {
	if !types.IsValid(u) {
		return false
	}
	if want, ok := u.LibraryVersion(); ok &&
		(want.Major != info.LibraryVersion.Major || want.Minor != info.LibraryVersion.Minor) {
		return false
	}
	return matchText(u, uri.AttrLibraryManufacturer, info.ManufacturerID) &&
		matchText(u, uri.AttrLibraryDescription, info.LibraryDescription)
}
