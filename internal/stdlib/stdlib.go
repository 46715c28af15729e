// Package stdlib provides the native libraries scripts can import with gyatt.
package stdlib

import (
	"time"

	"github.com/cookable-lang/cookable/internal/interpreter"
)

// Standard returns a registry holding every bundled library.
func Standard() *interpreter.Registry {
	r := interpreter.NewRegistry()
	r.Register(NerdName, NewNerd)
	r.Register(ClockName, NewClock(time.Now, time.Sleep))
	return r
}
