// Package similarity scores how related two token sequences are.
//
// Lexical scoring is the Jaccard index over the distinct tokens of each side.
// Semantic scoring resolves every token to a word vector and returns the best
// cosine similarity over all cross pairs, so one strongly related concept is
// enough to call two filenames similar. Both scorers are symmetric and return
// values in [0, 1]; degenerate inputs score 0 rather than NaN.
package similarity
