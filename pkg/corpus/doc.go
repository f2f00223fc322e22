// Package corpus resolves corpus references in definitions documents.
//
// A slot value token of the form $name splices the values of the corpus called
// name into the slot. A corpus is an ordered list of values, one per line of its
// source file. Three backends implement Loader:
//
//   - DirLoader reads <dir>/<name> from disk (the default, dir "corpora")
//   - SQLiteStore serves corpora imported into a SQLite database
//   - MemoryLoader serves corpora from a map, for tests and embedding
//
// Line splitting is shared by every backend through SplitLines: content is split
// on "\n", a trailing "\r" is dropped from each line, and the empty line left by
// a final newline is ignored. Values are not trimmed.
package corpus
