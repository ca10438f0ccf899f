// Package organizer sorts the files of a directory into subdirectories.
//
// A run lists the regular files of the target directory, plans destination
// groups (by extension, or by lexical or semantic similarity of the tokens in
// their names), and then moves each group into a subdirectory named after it.
// Groups with a single member stay where they are when grouping by
// similarity. With Recursive set, every subdirectory that existed before the
// run is sorted the same way, independently of its parent.
//
// Per-file failures never abort a run. They are collected on the Report,
// which joins them into one error for the caller. An unusable target path or
// missing word vectors stop the run before anything is touched.
package organizer
