package tui

import (
	"strings"
	"sync"

	"github.com/codefionn/calcschnell/internal/consts"
)

// builderPool recycles the builders used to assemble the view on every frame
var builderPool = sync.Pool{
	New: func() any {
		return new(strings.Builder)
	},
}

func acquireBuilder() *strings.Builder {
	b := builderPool.Get().(*strings.Builder)
	b.Reset()
	return b
}

// builderString returns the content of b and hands b back to the pool.
// Builders that grew past consts.BufferSize64KB are left to the GC.
func builderString(b *strings.Builder) string {
	if b == nil {
		return ""
	}
	s := strings.Clone(b.String())
	if b.Cap() <= consts.BufferSize64KB {
		b.Reset()
		builderPool.Put(b)
	}
	return s
}
