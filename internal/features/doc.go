// Package features turns filenames into the ordered token sequences the
// similarity scorers compare.
//
// A filename loses its final extension, is split on underscores, hyphens,
// spaces, and decimal digits, and each remaining segment is Unicode-normalized
// and lowercased. Tokens found in the stop-word list of the configured
// language are dropped. Order of appearance is kept and duplicates survive;
// scorers that need set semantics collapse them themselves.
package features
