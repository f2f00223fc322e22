// Package grammar is the entry point for reading slotgen definitions documents.
//
// It ties together the parser, which builds an ast.Document or fails with a
// typed error from the errors package, and the validator, which reports lint
// findings on documents that parse.
//
//	doc, findings, err := grammar.Lint("definitions.txt", corpus.NewDirLoader("corpora"))
//	if err != nil {
//	    log.Fatal(err) // parse error: the document cannot be used
//	}
//	for _, f := range findings {
//	    fmt.Println(f) // warnings only
//	}
package grammar
