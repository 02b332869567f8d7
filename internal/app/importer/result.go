package importer

// Result is the outcome of transforming one input row: either an accepted
// store-ready spec or a skip with a reason. Ref is the human-identifying
// fragment used in warnings, e.g. "with importId:'key_1'".
type Result[S any] struct {
	Spec   S
	Ref    string
	Reason string
	ok     bool
}

// Accept returns an accepted result.
func Accept[S any](spec S, ref string) Result[S] {
	return Result[S]{Spec: spec, Ref: ref, ok: true}
}

// Skip returns a result for a row that cannot be loaded.
func Skip[S any](ref, reason string) Result[S] {
	return Result[S]{Ref: ref, Reason: reason}
}

// Accepted reports whether the row produced a spec.
func (r Result[S]) Accepted() bool { return r.ok }

// Numbered is an accepted spec together with its 1-based row ordinal in the
// source file.
type Numbered[S any] struct {
	Ordinal int
	Ref     string
	Spec    S
}
