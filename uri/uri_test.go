package uri_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/pkcs11uri/internal/errorutil"
	"github.com/ghettovoice/pkcs11uri/uri"
)

const fullURI = "pkcs11:library-manufacturer=Snake%20Oil,%20Inc.;library-description=Soft;library-version=2.40;" +
	"slot-manufacturer=SM;slot-description=SD;slot-id=5;manufacturer=M;model=Mo;serial=0123456789abcdef;" +
	"token=T;object=O;type=secret-key;id=%01%02;x-a=1" +
	"?pin-value=p&pin-source=file:/p&module-name=mn&module-path=/mp&x-b=2"

func TestURI_Accessors(t *testing.T) {
	t.Parallel()

	u := uri.MustParse(fullURI)
	if got := u.String(); got != fullURI {
		t.Errorf("u.String() = %q, want %q", got, fullURI)
	}

	strs := []struct {
		name string
		fn   func() (string, bool)
		want string
	}{
		{"LibraryManufacturer", u.LibraryManufacturer, "Snake Oil, Inc."},
		{"LibraryDescription", u.LibraryDescription, "Soft"},
		{"SlotManufacturer", u.SlotManufacturer, "SM"},
		{"SlotDescription", u.SlotDescription, "SD"},
		{"Manufacturer", u.Manufacturer, "M"},
		{"Model", u.Model, "Mo"},
		{"Serial", u.Serial, "0123456789abcdef"},
		{"Token", u.Token, "T"},
		{"ObjectLabel", u.ObjectLabel, "O"},
		{"PINValue", u.PINValue, "p"},
		{"PINSource", u.PINSource, "file:/p"},
		{"ModuleName", u.ModuleName, "mn"},
		{"ModulePath", u.ModulePath, "/mp"},
	}
	for _, c := range strs {
		if got, ok := c.fn(); !ok || got != c.want {
			t.Errorf("u.%s() = (%q, %v), want (%q, true)", c.name, got, ok, c.want)
		}
	}

	if got, ok := u.LibraryVersion(); !ok || got != (uri.Version{Major: 2, Minor: 40}) {
		t.Errorf("u.LibraryVersion() = (%v, %v), want (2.40, true)", got, ok)
	}
	if got, ok := u.SlotID(); !ok || got != 5 {
		t.Errorf("u.SlotID() = (%v, %v), want (5, true)", got, ok)
	}
	if got, ok := u.Type(); !ok || got != uri.ObjectTypeSecretKey {
		t.Errorf("u.Type() = (%q, %v), want (%q, true)", got, ok, uri.ObjectTypeSecretKey)
	}
	if got, ok := u.ID(); !ok || !cmp.Equal(got, []byte{1, 2}) {
		t.Errorf("u.ID() = (%v, %v), want ([1 2], true)", got, ok)
	}
	if got, ok := u.Vendor(uri.PathComponent, "x-a"); !ok || !cmp.Equal(got, []string{"1"}) {
		t.Errorf("u.Vendor(path, x-a) = (%v, %v), want ([1], true)", got, ok)
	}
	if got, ok := u.Vendor(uri.QueryComponent, "x-b"); !ok || !cmp.Equal(got, []string{"2"}) {
		t.Errorf("u.Vendor(query, x-b) = (%v, %v), want ([2], true)", got, ok)
	}
	if got, ok := u.Vendor(uri.QueryComponent, "x-a"); ok {
		t.Errorf("u.Vendor(query, x-a) = (%v, %v), want (nil, false)", got, ok)
	}
	if got, ok := u.Get(uri.AttrToken); !ok || got != "T" {
		t.Errorf("u.Get(AttrToken) = (%q, %v), want (\"T\", true)", got, ok)
	}
}

func TestURI_Accessors_Absent(t *testing.T) {
	t.Parallel()

	for _, u := range []*uri.URI{nil, uri.MustParse("pkcs11:")} {
		if got, ok := u.Token(); ok {
			t.Errorf("u.Token() = (%q, %v), want (\"\", false)", got, ok)
		}
		if got, ok := u.ID(); ok {
			t.Errorf("u.ID() = (%v, %v), want (nil, false)", got, ok)
		}
		if got, ok := u.SlotID(); ok {
			t.Errorf("u.SlotID() = (%v, %v), want (0, false)", got, ok)
		}
		if got, ok := u.LibraryVersion(); ok {
			t.Errorf("u.LibraryVersion() = (%v, %v), want (0.0, false)", got, ok)
		}
		if got, ok := u.Type(); ok {
			t.Errorf("u.Type() = (%q, %v), want (\"\", false)", got, ok)
		}
		if got, ok := u.Get(uri.AttrKey(200)); ok {
			t.Errorf("u.Get(200) = (%q, %v), want (\"\", false)", got, ok)
		}
		if u.HasQuery() {
			t.Errorf("u.HasQuery() = true, want false")
		}
	}
}

func mustBuild(b *uri.Builder) *uri.URI {
	u, err := b.Build()
	if err != nil {
		panic(err)
	}
	return u
}

func TestURI_Equal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		u    *uri.URI
		val  any
		want bool
	}{
		{"nil nil", (*uri.URI)(nil), (*uri.URI)(nil), true},
		{"nil non-nil", (*uri.URI)(nil), uri.MustParse("pkcs11:"), false},
		{"non-uri", uri.MustParse("pkcs11:token=a"), "pkcs11:token=a", false},
		{"value", uri.MustParse("pkcs11:token=a"), *uri.MustParse("pkcs11:token=a"), true},
		{"input order", uri.MustParse("pkcs11:type=cert;token=a"), uri.MustParse("pkcs11:token=a;type=cert"), true},
		{"escape case", uri.MustParse("pkcs11:token=a%2fb"), uri.MustParse("pkcs11:token=a%2Fb"), true},
		{"value differs", uri.MustParse("pkcs11:token=a"), uri.MustParse("pkcs11:token=b"), false},
		{"empty vs absent", uri.MustParse("pkcs11:token="), uri.MustParse("pkcs11:"), false},
		{"vendor order", uri.MustParse("pkcs11:x-a=1;x-a=2"), uri.MustParse("pkcs11:x-a=2;x-a=1"), false},
		{"vendor component", uri.MustParse("pkcs11:x-a=1"), uri.MustParse("pkcs11:?x-a=1"), false},
		{"query", uri.MustParse("pkcs11:?pin-value=1"), uri.MustParse("pkcs11:?pin-value=2"), false},
		{"version forms", uri.MustParse("pkcs11:library-version=1"), uri.MustParse("pkcs11:library-version=1.0"), true},
		{"slot id forms", uri.MustParse("pkcs11:slot-id=07"), uri.MustParse("pkcs11:slot-id=7"), true},
		{
			"builder and parser forms",
			mustBuild(uri.NewBuilder().SetLibraryVersion(uri.Version{Major: 1}).SetSlotID(7)),
			uri.MustParse("pkcs11:library-version=01;slot-id=0007"),
			true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.u.Equal(c.val); got != c.want {
				t.Errorf("u.Equal(%v) = %v, want %v", c.val, got, c.want)
			}
		})
	}
}

func TestURI_Clone(t *testing.T) {
	t.Parallel()

	if got := (*uri.URI)(nil).Clone(); got != nil {
		t.Errorf("nil.Clone() = %v, want nil", got)
	}

	u := uri.MustParse(fullURI)
	u2 := u.Clone()
	if u2 == u {
		t.Fatal("u.Clone() returned the same pointer")
	}
	if !u2.Equal(u) {
		t.Errorf("u.Clone() = %v, want %v", u2, u)
	}
	if !u2.IsValid() {
		t.Error("u.Clone().IsValid() = false, want true")
	}
}

func TestParseVersion(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input   string
		want    uri.Version
		wantErr error
	}{
		{"2", uri.Version{Major: 2}, nil},
		{"2.40", uri.Version{Major: 2, Minor: 40}, nil},
		{"255.255", uri.Version{Major: 255, Minor: 255}, nil},
		{"", uri.Version{}, uri.ErrInvalidAttributeValue},
		{"256", uri.Version{}, uri.ErrInvalidAttributeValue},
		{"1.256", uri.Version{}, uri.ErrInvalidAttributeValue},
		{"1.2.3", uri.Version{}, uri.ErrInvalidAttributeValue},
		{"v1", uri.Version{}, uri.ErrInvalidAttributeValue},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			t.Parallel()

			got, err := uri.ParseVersion(c.input)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("uri.ParseVersion(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.input, err, c.wantErr, diff)
			}
			if got != c.want {
				t.Errorf("uri.ParseVersion(%q) = %v, want %v", c.input, got, c.want)
			}
		})
	}

	if got, want := (uri.Version{Major: 3}).String(), "3.0"; got != want {
		t.Errorf("Version.String() = %q, want %q", got, want)
	}
}

func TestLookupAttr(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		wantKey  uri.AttrKey
		wantComp uri.Component
		wantOK   bool
	}{
		{"token", uri.AttrToken, uri.PathComponent, true},
		{"object", uri.AttrObject, uri.PathComponent, true},
		{"library-version", uri.AttrLibraryVersion, uri.PathComponent, true},
		{"pin-value", uri.AttrPINValue, uri.QueryComponent, true},
		{"module-path", uri.AttrModulePath, uri.QueryComponent, true},
		{"Token", 0, 0, false},
		{"label", 0, 0, false},
		{"x-token", 0, 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			k, ok := uri.LookupAttr(c.name)
			if ok != c.wantOK {
				t.Fatalf("uri.LookupAttr(%q) ok = %v, want %v", c.name, ok, c.wantOK)
			}
			if !ok {
				return
			}
			if k != c.wantKey {
				t.Errorf("uri.LookupAttr(%q) = %v, want %v", c.name, k, c.wantKey)
			}
			if k.String() != c.name {
				t.Errorf("key.String() = %q, want %q", k.String(), c.name)
			}
			if k.Component() != c.wantComp {
				t.Errorf("key.Component() = %v, want %v", k.Component(), c.wantComp)
			}
		})
	}
}

func TestObjectType_IsValid(t *testing.T) {
	t.Parallel()

	for _, ot := range []uri.ObjectType{
		uri.ObjectTypePublic,
		uri.ObjectTypePrivate,
		uri.ObjectTypeCert,
		uri.ObjectTypeSecretKey,
		uri.ObjectTypeData,
	} {
		if !ot.IsValid() {
			t.Errorf("ObjectType(%q).IsValid() = false, want true", ot)
		}
		if _, err := uri.Parse("pkcs11:type=" + string(ot)); err != nil {
			t.Errorf("uri.Parse(type=%s) error = %v, want nil", ot, err)
		}
	}
	for _, ot := range []uri.ObjectType{"", "bogus", "Cert", "secret_key"} {
		if ot.IsValid() {
			t.Errorf("ObjectType(%q).IsValid() = true, want false", ot)
		}
	}
}

func TestParseError(t *testing.T) {
	t.Parallel()

	_, err := uri.Parse("pkcs11:token=a;token=b")
	var pe *uri.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("uri.Parse() error = %T, want *uri.ParseError", err)
	}
	if got, want := pe.Error(), `duplicate attribute at offset 15: "token=b"`; got != want {
		t.Errorf("pe.Error() = %q, want %q", got, want)
	}
	if !errorutil.IsGrammarErr(err) {
		t.Error("errorutil.IsGrammarErr(err) = false, want true")
	}
	if pe.Fragment != "token=b" {
		t.Errorf("pe.Fragment = %q, want %q", pe.Fragment, "token=b")
	}

	be := &uri.ParseError{Kind: uri.ErrBuilderSealed, Pos: -1}
	if got, want := be.Error(), "builder sealed"; got != want {
		t.Errorf("be.Error() = %q, want %q", got, want)
	}
}
