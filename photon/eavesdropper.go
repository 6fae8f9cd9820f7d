package photon

import (
	"errors"
	"fmt"
	"math/rand"
)

// An InterceptionRecord describes what the eavesdropper did to one qubit in
// transit. Basis and Bit are only meaningful when Intercepted is set.
type InterceptionRecord struct {
	Intercepted bool
	Basis       Basis
	Bit         bool
}

// An Eavesdropper mounts an intercept-resend attack on qubits in transit:
// with some per-qubit probability it measures the qubit in a uniformly
// chosen basis and forwards a fresh qubit prepared from its own basis and
// outcome. Whenever its basis differs from the sender's, the re-prepared
// qubit loses all memory of the original bit, which is the disturbance the
// detection step exploits.
type Eavesdropper struct {
	rate    float64
	rand    *rand.Rand
	records []InterceptionRecord
}

// NewEavesdropper returns an Eavesdropper intercepting each qubit
// independently with the given probability, drawing its basis choices and
// measurement outcomes from r.
func NewEavesdropper(rate float64, r *rand.Rand) (*Eavesdropper, error) {
	if rate < 0 || rate > 1 {
		return nil, fmt.Errorf("interception rate %v outside [0, 1]", rate)
	}
	if r == nil {
		return nil, errors.New("must provide rand")
	}
	return &Eavesdropper{rate: rate, rand: r}, nil
}

// Intercept passes a batch of in-flight qubits through the eavesdropper and
// returns what comes out the other side. Unintercepted qubits pass through
// untouched. One InterceptionRecord is appended per qubit, in transit order.
func (e *Eavesdropper) Intercept(qubits []Qubit) []Qubit {
	out := make([]Qubit, len(qubits))
	for i, q := range qubits {
		if e.rand.Float64() >= e.rate {
			out[i] = q
			e.records = append(e.records, InterceptionRecord{})
			continue
		}
		basis := RandomBasis(e.rand)
		bit := q.Measure(basis, e.rand)
		out[i] = Prepare(bit, basis)
		e.records = append(e.records, InterceptionRecord{
			Intercepted: true,
			Basis:       basis,
			Bit:         bit,
		})
	}
	return out
}

// Records returns one record per qubit intercepted or passed through so far.
func (e *Eavesdropper) Records() []InterceptionRecord {
	return e.records
}
