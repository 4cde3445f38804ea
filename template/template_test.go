//go:build pkcs11

package template_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/miekg/pkcs11"

	"github.com/ghettovoice/pkcs11uri/template"
	"github.com/ghettovoice/pkcs11uri/uri"
)

func TestObjectTemplate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		uri  *uri.URI
		want []*pkcs11.Attribute
	}{
		{"nil", nil, nil},
		{"no object attributes", uri.MustParse("pkcs11:token=a?pin-value=1"), nil},
		{
			"all",
			uri.MustParse("pkcs11:token=a;object=my-key;type=private;id=%01%02"),
			[]*pkcs11.Attribute{
				pkcs11.NewAttribute(pkcs11.CKA_CLASS, pkcs11.CKO_PRIVATE_KEY),
				pkcs11.NewAttribute(pkcs11.CKA_LABEL, "my-key"),
				pkcs11.NewAttribute(pkcs11.CKA_ID, []byte{1, 2}),
			},
		},
		{
			"cert by id",
			uri.MustParse("pkcs11:type=cert;id=%AB"),
			[]*pkcs11.Attribute{
				pkcs11.NewAttribute(pkcs11.CKA_CLASS, pkcs11.CKO_CERTIFICATE),
				pkcs11.NewAttribute(pkcs11.CKA_ID, []byte{0xab}),
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got := template.ObjectTemplate(c.uri)
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("template.ObjectTemplate(%v) = %v, want %v\ndiff (-got +want):\n%v", c.uri, got, c.want, diff)
			}
		})
	}
}

func TestObjectClass(t *testing.T) {
	t.Parallel()

	cases := []struct {
		typ    uri.ObjectType
		want   uint
		wantOK bool
	}{
		{uri.ObjectTypePublic, pkcs11.CKO_PUBLIC_KEY, true},
		{uri.ObjectTypePrivate, pkcs11.CKO_PRIVATE_KEY, true},
		{uri.ObjectTypeCert, pkcs11.CKO_CERTIFICATE, true},
		{uri.ObjectTypeSecretKey, pkcs11.CKO_SECRET_KEY, true},
		{uri.ObjectTypeData, pkcs11.CKO_DATA, true},
		{"bogus", 0, false},
	}

	for _, c := range cases {
		got, ok := template.ObjectClass(c.typ)
		if got != c.want || ok != c.wantOK {
			t.Errorf("template.ObjectClass(%q) = (%v, %v), want (%v, %v)", c.typ, got, ok, c.want, c.wantOK)
		}
	}
}

func TestMatchToken(t *testing.T) {
	t.Parallel()

	ti := pkcs11.TokenInfo{
		Label:          "my-ca                           ",
		ManufacturerID: "SoftHSM project                 ",
		Model:          "SoftHSM v2      ",
		SerialNumber:   "0123456789abcdef",
	}

	cases := []struct {
		name string
		uri  *uri.URI
		want bool
	}{
		{"nil", nil, false},
		{"empty", uri.MustParse("pkcs11:"), true},
		{"label", uri.MustParse("pkcs11:token=my-ca"), true},
		{"all", uri.MustParse("pkcs11:manufacturer=SoftHSM%20project;model=SoftHSM%20v2;serial=0123456789abcdef;token=my-ca"), true},
		{"other label", uri.MustParse("pkcs11:token=other"), false},
		{"other serial", uri.MustParse("pkcs11:serial=0000"), false},
	}

	for _, c := range cases {
		if got := template.MatchToken(c.uri, ti); got != c.want {
			t.Errorf("%s: template.MatchToken(%v) = %v, want %v", c.name, c.uri, got, c.want)
		}
	}
}

func TestMatchSlot(t *testing.T) {
	t.Parallel()

	si := pkcs11.SlotInfo{SlotDescription: "SoftHSM slot ID 0x5", ManufacturerID: "SoftHSM project"}

	cases := []struct {
		name string
		uri  *uri.URI
		id   uint
		want bool
	}{
		{"empty", uri.MustParse("pkcs11:"), 5, true},
		{"slot id", uri.MustParse("pkcs11:slot-id=5"), 5, true},
		{"other slot id", uri.MustParse("pkcs11:slot-id=6"), 5, false},
		{"manufacturer", uri.MustParse("pkcs11:slot-manufacturer=SoftHSM%20project"), 1, true},
		{"description", uri.MustParse("pkcs11:slot-description=other"), 5, false},
	}

	for _, c := range cases {
		if got := template.MatchSlot(c.uri, c.id, si); got != c.want {
			t.Errorf("%s: template.MatchSlot(%v, %d) = %v, want %v", c.name, c.uri, c.id, got, c.want)
		}
	}
}

func TestMatchLibrary(t *testing.T) {
	t.Parallel()

	info := pkcs11.Info{
		ManufacturerID:     "SoftHSM",
		LibraryDescription: "Implementation of PKCS11",
		LibraryVersion:     pkcs11.Version{Major: 2, Minor: 6},
	}

	cases := []struct {
		name string
		uri  *uri.URI
		want bool
	}{
		{"empty", uri.MustParse("pkcs11:"), true},
		{"version", uri.MustParse("pkcs11:library-version=2.6"), true},
		{"major only", uri.MustParse("pkcs11:library-version=2"), false},
		{"other version", uri.MustParse("pkcs11:library-version=2.5"), false},
		{"manufacturer", uri.MustParse("pkcs11:library-manufacturer=SoftHSM"), true},
		{"description", uri.MustParse("pkcs11:library-description=Implementation%20of%20PKCS11"), true},
		{"other description", uri.MustParse("pkcs11:library-description=p11-kit"), false},
	}

	for _, c := range cases {
		if got := template.MatchLibrary(c.uri, info); got != c.want {
			t.Errorf("%s: template.MatchLibrary(%v) = %v, want %v", c.name, c.uri, got, c.want)
		}
	}
}
