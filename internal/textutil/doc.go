// Package textutil sanitizes text that ends up as path segments on disk,
// such as the folder names derived from file-name tokens.
package textutil
