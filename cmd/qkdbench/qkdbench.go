// qkdbench runs repeated BB84 simulations for each entry in the cartesian
// product of a collection of tuning parameters, e.g. raw qubit count and
// eavesdropper interception rate, and outputs a CSV of aggregate statistics
// for each combination, e.g. detection rate and mean observed QBER.
package main

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"text/template"

	flag "github.com/spf13/pflag"
	"gonum.org/v1/gonum/stat"

	"github.com/quantumchat/qkd"
	"github.com/quantumchat/qkd/photon"
)

var (
	qubits = flag.IntSlice("qubits", []int{1024},
		"The raw qubit counts to exchange per run.")
	keyBits = flag.IntSlice("keyBits", []int{qkd.DefaultKeyBits},
		"The final key lengths, in bits.")
	eveRate = flag.Float64Slice("eveRate", []float64{0, qkd.DefaultEveRate, 1},
		"The eavesdropper interception rates. Zero disables the eavesdropper.")
	trials = flag.Int("trials", 100, "Protocol runs per parameter combination.")
	seed   = flag.Int64("seed", 42, "Base PRNG seed.")
)

var columns = []string{"Qubits", "KeyBits", "EveRate", "Trials", "Detected",
	"Insufficient", "Keys", "MeanQBER", "StdDevQBER"}

// An experiment packages together the result of benchmarking a single
// parameterization for easy formatting.
type experiment struct {
	// Fields corresponding to experiment parameters
	Qubits  int
	KeyBits int
	EveRate float64
	Trials  int

	// Fields corresponding to experiment results
	Detected     int
	Insufficient int
	Keys         int
	MeanQBER     float64
	StdDevQBER   float64
}

func main() {
	flag.Parse()
	fmt.Println(strings.Join(columns, ", "))
	tmpl := template.Must(template.New("line").Parse(lineTmpl()))
	for _, n := range *qubits {
		for _, kb := range *keyBits {
			for _, rate := range *eveRate {
				exp := &experiment{Qubits: n, KeyBits: kb, EveRate: rate, Trials: *trials}
				if err := bench(exp); err != nil {
					log.Fatalf("Benching %+v: %v", exp, err)
				}
				if err := tmpl.Execute(os.Stdout, exp); err != nil {
					log.Fatalf("BUG: could not fill in line template: %v", err)
				}
			}
		}
	}
}

func bench(exp *experiment) error {
	qbers := make([]float64, 0, exp.Trials)
	for t := 0; t < exp.Trials; t++ {
		opts := qkd.ProtocolOpts{
			Rand:        rand.New(rand.NewSource(*seed + int64(t))),
			KeyBits:     exp.KeyBits,
			TotalQubits: exp.Qubits,
		}
		if exp.EveRate > 0 {
			eve, err := photon.NewEavesdropper(exp.EveRate,
				rand.New(rand.NewSource(*seed + int64(exp.Trials+t))))
			if err != nil {
				return err
			}
			opts.Eavesdropper = eve
		}
		p, err := qkd.NewProtocol(opts)
		if err != nil {
			return err
		}
		res, err := p.Run()
		qbers = append(qbers, res.Stats.QBER)
		switch {
		case errors.Is(err, qkd.ErrEavesdropperDetected):
			exp.Detected++
		case errors.Is(err, qkd.ErrInsufficientKeyMaterial):
			exp.Insufficient++
		case err != nil:
			return err
		default:
			exp.Keys++
		}
	}
	exp.MeanQBER = stat.Mean(qbers, nil)
	exp.StdDevQBER = stat.StdDev(qbers, nil)
	return nil
}

func lineTmpl() string {
	var els []string
	for _, c := range columns {
		els = append(els, "{{."+c+"}}")
	}
	return strings.Join(els, ", ") + "\n"
}
