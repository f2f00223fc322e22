// Slotgen generates text from slot-and-template definitions documents.
//
// A definitions document names slots (sets of values, optionally read from
// corpus files) and templates that reference them. Each generation fills
// every reference with a random value from its slot.
//
// Usage:
//
//	# Generate one sentence from definitions.txt
//	slotgen generate SENTENCE
//
//	# Five deterministic outputs from another document
//	slotgen generate STORY --file story.txt --count 5 --seed 42
//
//	# Check a document for errors and warnings
//	slotgen lint --file story.txt --strict
//
//	# Serve generation over HTTP with hot reload
//	slotgen serve --listen 127.0.0.1:8080
//
//	# Store a corpus in the SQLite backend
//	slotgen corpus import animals corpora/animals
package main

func main() {
	Execute()
}
