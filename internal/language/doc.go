// Package language resolves the language names and codes accepted in
// configuration ("en", "eng", "English", "en-US") to a canonical ISO 639-1
// code. The feature extractor keys its stop-word lists by that code.
package language
