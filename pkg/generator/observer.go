package generator

import "time"

// Observer is told about engine activity. Observers run inline on every draw.
type Observer interface {
	// ObserveDraw is called once per slot draw.
	ObserveDraw(slot string, singleUse bool)
	// ObserveRefill is called when a slot's used values return to its pool.
	ObserveRefill(slot string)
	// ObserveGeneration is called once per Generate call, err is nil on success.
	ObserveGeneration(template string, duration time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveDraw(string, bool) {}

func (nopObserver) ObserveRefill(string) {}

func (nopObserver) ObserveGeneration(string, time.Duration, error) {}
