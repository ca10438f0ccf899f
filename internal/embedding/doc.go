// Package embedding provides the word-vector lookup used by semantic sorting.
//
// Vectors come from fastText-style text files (".vec": an optional
// "<count> <dim>" header followed by one "<word> <v1> ... <vdim>" line per
// word). A file can be read straight into an in-memory Table, or imported
// once into a SQLite Store so later runs resolve tokens with indexed lookups
// instead of re-parsing millions of lines.
//
// Lookups never fail loudly: a token that cannot be resolved is reported as
// missing and the caller drops it. Open returns ErrUnavailable when neither a
// store nor a vector file can be used.
package embedding
