// Package photon simulates polarization-encoded qubits in transit between
// the two participants of a BB84 exchange.
//
// The simulation reduces quantum measurement to its observable consequences:
// reading a qubit in its preparation basis echoes the prepared bit exactly,
// while reading it in the other basis yields an independent uniform coin
// flip that carries no information about the prepared bit. That single rule
// is what makes matched-basis positions perfectly correlated and makes an
// intercept-resend attacker detectable.
package photon

import "math/rand"

// A Basis identifies one of the two mutually unbiased measurement bases used
// by BB84. Only equality between two Basis values is meaningful.
type Basis int

const (
	// Rectilinear is the computational (Z) basis.
	Rectilinear Basis = iota
	// Diagonal is the Hadamard (X) basis.
	Diagonal
)

// String implements fmt.Stringer.
func (b Basis) String() string {
	if b == Diagonal {
		return "diagonal"
	}
	return "rectilinear"
}

// A Qubit is a single classical bit encoded in a chosen polarization basis.
// It is immutable once prepared; measurement does not mutate it, it simply
// forgets it.
type Qubit struct {
	bit   bool
	basis Basis
}

// Prepare encodes bit in the given basis.
func Prepare(bit bool, basis Basis) Qubit {
	return Qubit{bit: bit, basis: basis}
}

// Measure reads the qubit in the given basis, drawing from r whenever the
// outcome is probabilistic. Measuring in the preparation basis always yields
// the prepared bit. Measuring in the other basis yields 0 or 1 with equal
// probability, independent of the prepared bit.
func (q Qubit) Measure(basis Basis, r *rand.Rand) bool {
	if basis == q.basis {
		return q.bit
	}
	return r.Intn(2) == 1
}

// RandomBasis draws a uniform basis choice from r.
func RandomBasis(r *rand.Rand) Basis {
	if r.Intn(2) == 1 {
		return Diagonal
	}
	return Rectilinear
}
