// Package parser turns definitions documents into ASTs.
//
// A document holds exactly one slot section and one template section:
//
//	<BEGIN SLOTS>
//	# comment lines and blank lines are ignored
//	ANIMAL -> cat,dog,owl\s,$animals
//	<END SLOTS>
//	<BEGIN TEMPLATES>
//	SENTENCE -> The <ANIMAL> ran.
//	<END TEMPLATES>
//
// Every definition line is "name -> value". In the slot section the value is a
// comma-separated list; tokens are kept as written, a token ending in \s is
// single-use, and a token starting with $ is replaced by the lines of the named
// corpus. In the template section the value is a body in which <NAME> references
// a slot defined in the slot section. There is no escape syntax for < and >.
//
// # Basic Usage
//
//	p := parser.NewParser().WithCorpusLoader(corpus.NewDirLoader("corpora"))
//	doc, err := p.Parse("definitions.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Errors are *errors.Error values from the grammar errors package and carry the
// document line of the offending definition.
package parser
