package domain

// Cursor is a pull-based, single-pass stream of T read from the store.
// Next advances and reports whether a value is available; after it returns
// false, Err reports the error that ended the stream, if any. Close releases
// the underlying resource and is safe to call more than once.
type Cursor[T any] interface {
	Next() bool
	Value() T
	Err() error
	Close()
}
