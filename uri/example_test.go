package uri_test

import (
	"errors"
	"fmt"

	"github.com/ghettovoice/pkcs11uri/uri"
)

func ExampleParse() {
	u, err := uri.Parse("pkcs11:token=my-ca;object=my-signing-key;type=private?pin-value=1234&module-name=softhsm2")
	if err != nil {
		panic(err)
	}

	token, _ := u.Token()
	label, _ := u.ObjectLabel()
	typ, _ := u.Type()
	mod, _ := u.ModuleName()
	fmt.Println(token, label, typ, mod)
	fmt.Println(u.Render(&uri.RenderOptions{OmitQuery: true}))
	// Output:
	// my-ca my-signing-key private softhsm2
	// pkcs11:token=my-ca;object=my-signing-key;type=private
}

func ExampleParse_error() {
	_, err := uri.Parse("pkcs11:token=a;token=b")

	var pe *uri.ParseError
	if errors.As(err, &pe) {
		fmt.Println(errors.Is(err, uri.ErrDuplicateAttribute), pe.Fragment, pe.Pos)
	}
	// Output:
	// true token=b 15
}

func ExampleNewBuilder() {
	u, err := uri.NewBuilder().
		SetToken("Software PKCS#11 softtoken").
		SetID([]byte{0x01, 0xff}).
		SetType(uri.ObjectTypePrivate).
		SetPINSource("file:/etc/token.pin").
		Build()
	if err != nil {
		panic(err)
	}
	fmt.Println(u)
	// Output:
	// pkcs11:token=Software%20PKCS%2311%20softtoken;type=private;id=%01%FF?pin-source=file:/etc/token.pin
}
