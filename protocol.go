package qkd

import (
	"fmt"
	"math/rand"

	"github.com/quantumchat/qkd/bitmap"
	"github.com/quantumchat/qkd/photon"
)

// A Protocol holds the state for a single BB84 run. All of its state is
// local to the run; concurrent runs must use separate Protocol values.
type Protocol struct {
	rand         *rand.Rand
	keyBits      int
	totalQubits  int
	testFraction float64
	eve          *photon.Eavesdropper

	// Test hooks. When nil, choices are drawn from rand.
	bitsFunc          func(n int) bitmap.Dense
	senderBasisFunc   func(n int) bitmap.Dense
	receiverBasisFunc func(n int) bitmap.Dense
}

// Run executes one complete BB84 exchange: random bit and basis generation,
// qubit preparation, transit (through the eavesdropper, if any), measurement,
// sifting, eavesdropping detection and privacy amplification. A detected
// eavesdropper, a sifted-key integrity violation, or too little surviving
// key material each abort the run with a wrapped sentinel error; no key is
// ever returned alongside an error.
func (p *Protocol) Run() (Result, error) {
	var res Result
	n := p.totalQubits
	res.Stats.RawBits = n

	// Sender side: random bits, random bases, one prepared qubit each.
	bits := p.randomBits(n, p.bitsFunc)
	sendBases := p.randomBits(n, p.senderBasisFunc)
	qubits := make([]photon.Qubit, n)
	for i := range qubits {
		qubits[i] = photon.Prepare(bits.Get(i), basisAt(sendBases, i))
	}

	if p.eve != nil {
		qubits = p.eve.Intercept(qubits)
	}

	// Receiver side: independent random bases, one measurement each.
	recvBases := p.randomBits(n, p.receiverBasisFunc)
	var recvBits bitmap.Dense
	for i, q := range qubits {
		recvBits.AppendBit(q.Measure(basisAt(recvBases, i), p.rand))
	}

	sSifted, rSifted := sift(bits, sendBases, recvBits, recvBases)
	res.Stats.SiftedBits = sSifted.Size()

	det, err := detect(sSifted, rSifted, p.testFraction, p.rand)
	if err != nil {
		return res, err
	}
	res.Stats.TestedBits = det.tested
	res.Stats.QBER = det.qber
	if det.detected {
		return res, fmt.Errorf("observed QBER %.4f: %w", det.qber, ErrEavesdropperDetected)
	}

	// The statistical test can pass trivially when almost nothing survived
	// sifting; refuse to stretch that little entropy into a key.
	if det.sRemaining.Size() < p.keyBits/4 {
		return res, fmt.Errorf("%d bits remain after testing, need %d: %w",
			det.sRemaining.Size(), p.keyBits/4, ErrInsufficientKeyMaterial)
	}

	key, err := amplify(det.sRemaining, p.keyBits)
	if err != nil {
		return res, err
	}
	res.Key = key
	res.Stats.KeyBits = p.keyBits
	return res, nil
}

func (p *Protocol) randomBits(n int, hook func(int) bitmap.Dense) bitmap.Dense {
	if hook != nil {
		return hook(n)
	}
	buf := make([]byte, bitmap.BytesFor(n))
	p.rand.Read(buf)
	return bitmap.NewDense(buf, n)
}

func basisAt(bases bitmap.Dense, i int) photon.Basis {
	if bases.Get(i) {
		return photon.Diagonal
	}
	return photon.Rectilinear
}
