// Package debug provides assertions that compile away unless the
// paintassert build tag is set.
package debug

// Assert panics with the given message when assertions are enabled and
// the condition is false.
func Assert(cond bool, msg string) {
	if Enabled && !cond {
		panic("skypaint: " + msg)
	}
}
