// Package domain defines core data structures used throughout the pipeline.
package domain

import "fmt"

// Pair currency conversion pair.
type Pair struct {
	// From base (native) currency code.
	From string
	// To quote currency code.
	To string
}

// String returns the string representation.
func (p *Pair) String() string {
	return fmt.Sprintf("%s_%s", p.From, p.To)
}
