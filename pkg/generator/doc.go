// Package generator builds slot and template registries from a definitions
// document and generates text from them.
//
// # Basic Usage
//
//	engine, err := generator.New("definitions.txt", generator.WithSeed(1))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := engine.Generate("SENTENCE")
//
// # Selection
//
// Each slot reference in a template draws one value uniformly from the slot's
// available pool. Values ending in \s are single-use: once drawn they are held
// back until every single-use value of the slot has been drawn, at which point
// all of them become eligible again. Ordinary values are always eligible.
//
// Depletion state belongs to the slot. Two templates referencing the same slot
// affect each other's draws.
//
// # Randomness
//
// Every engine owns its own PCG source. WithSeed makes it deterministic;
// otherwise it is seeded from process entropy. The package never touches the
// global math/rand state.
//
// # Concurrency
//
// An Engine is not safe for concurrent use. Callers that share one across
// goroutines must serialize access; see the reload package.
package generator
