// Package constraints provides type constraints shared by internal packages.
package constraints

// Byteseq is a string or a byte slice, possibly holding non-UTF-8 data.
type Byteseq interface {
	~string | ~[]byte
}
