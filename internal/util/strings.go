package util

import (
	"strings"
	"sync"
)

// EqFold reports whether s1 and s2 are equal under ASCII case folding.
func EqFold[T1, T2 ~string](s1 T1, s2 T2) bool {
	return strings.EqualFold(string(s1), string(s2))
}

var strBldrPool = &sync.Pool{
	New: func() any {
		sb := new(strings.Builder)
		sb.Grow(256)
		return sb
	},
}

// GetStringBuilder takes a string builder from the pool.
func GetStringBuilder() *strings.Builder {
	return strBldrPool.Get().(*strings.Builder) //nolint:forcetypeassert
}

// FreeStringBuilder resets sb and returns it to the pool.
func FreeStringBuilder(sb *strings.Builder) {
	if sb.Cap() > 64*1024 {
		return
	}
	sb.Reset()
	strBldrPool.Put(sb)
}
