// Package sqlite provides the modernc.org/sqlite backed document store.
//
// Documents live in a single key/body table created by embedded goose
// migrations. Keys are the slash separated storage keys used by the project
// assembler.
package sqlite
