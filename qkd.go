// Package qkd simulates the BB84 quantum key distribution protocol to derive
// shared symmetric session keys, including statistical detection of an
// intercept-resend eavesdropper via the induced quantum bit error rate.
//
// A protocol run is a single synchronous computation with no state shared
// across runs; callers may execute runs for different party pairs
// concurrently. The only externally consumed operation is DeriveSessionKey.
package qkd

import (
	"errors"
	"math/rand"

	"github.com/quantumchat/qkd/photon"
)

// Protocol parameters used by DeriveSessionKey.
var (
	DefaultKeyBits      = 256
	DefaultTestFraction = 0.1
	DefaultEveRate      = 0.3
)

// QBERThreshold is the observed error rate above which a run is aborted as
// eavesdropped. 11% is the BB84 bound below which an eavesdropper's
// information gain is provably limited.
const QBERThreshold = 0.11

// Terminal failure modes of a protocol run. All of them collapse to
// ("", detected=true) at the DeriveSessionKey boundary: the package never
// hands out a partial or reduced-strength key.
var (
	ErrEavesdropperDetected    = errors.New("quantum bit error rate over threshold")
	ErrSiftIntegrity           = errors.New("sifted key length mismatch")
	ErrInsufficientKeyMaterial = errors.New("too few sifted bits to amplify")
)

// Stats packages together a collection of potentially interesting metrics
// pertaining to one protocol run. They are populated as far as the run
// progressed, even when it failed.
type Stats struct {
	RawBits    int
	SiftedBits int
	TestedBits int
	QBER       float64
	KeyBits    int
}

// A Result is the outcome of a successful protocol run: the derived key as
// lowercase hexadecimal, plus run metrics.
type Result struct {
	Key   string
	Stats Stats
}

// A ProtocolOpts packages together the arguments necessary to construct a
// new Protocol.
type ProtocolOpts struct {
	// Rand provides the randomness for bit and basis choices and for
	// measurement outcomes. Statistical uniformity is all that is asked of
	// it; the security property lives in the measurement rule, not here.
	// Must be non-nil.
	Rand *rand.Rand

	// KeyBits specifies the length of the bit string fed into privacy
	// amplification. Defaults to DefaultKeyBits.
	KeyBits int

	// TotalQubits specifies how many raw qubits to exchange. Defaults to
	// 4*KeyBits, leaving margin for the ~50% sifting survival rate and for
	// test-bit consumption.
	TotalQubits int

	// TestFraction specifies the fraction of the sifted key publicly
	// compared during eavesdropping detection. Defaults to
	// DefaultTestFraction.
	TestFraction float64

	// Eavesdropper, if non-nil, intercepts the qubits in transit.
	Eavesdropper *photon.Eavesdropper
}

// NewProtocol returns a new Protocol, configured in accordance with opts, or
// an error if the options are nonsensical.
func NewProtocol(opts ProtocolOpts) (*Protocol, error) {
	if opts.Rand == nil {
		return nil, errors.New("must provide Rand")
	}
	keyBits := opts.KeyBits
	if keyBits == 0 {
		keyBits = DefaultKeyBits
	}
	if keyBits < 0 {
		return nil, errors.New("key length must be positive")
	}
	total := opts.TotalQubits
	if total == 0 {
		total = 4 * keyBits
	}
	if total < 0 {
		return nil, errors.New("qubit count must be positive")
	}
	frac := opts.TestFraction
	if frac == 0 {
		frac = DefaultTestFraction
	}
	if frac < 0 || frac > 1 {
		return nil, errors.New("test fraction must lie in (0, 1]")
	}
	return &Protocol{
		rand:         opts.Rand,
		keyBits:      keyBits,
		totalQubits:  total,
		testFraction: frac,
		eve:          opts.Eavesdropper,
	}, nil
}
