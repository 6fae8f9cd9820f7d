package qkd

import (
	"errors"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/quantumchat/qkd/photon"
)

// DeriveSessionKey runs one BB84 exchange on behalf of two parties and
// returns their shared 256-bit session key as 64 lowercase hexadecimal
// characters, along with whether an eavesdropper was detected. The party
// identifiers are used for logging and association only; they contribute
// nothing to the key.
//
// Error handling is fail-closed: any failure whatsoever yields ("", true).
// Callers must treat the absence of a key exactly like explicit detection.
//
// Each invocation constructs fresh local state, so concurrent calls for
// different party pairs do not interfere.
func DeriveSessionKey(partyA, partyB string, simulateEve bool) (key string, eveDetected bool) {
	log := logrus.WithFields(logrus.Fields{
		"party_a": partyA,
		"party_b": partyB,
		"eve":     simulateEve,
	})
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("QKD run panicked, failing closed")
			key, eveDetected = "", true
		}
	}()

	opts := ProtocolOpts{
		Rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
		KeyBits: DefaultKeyBits,
	}
	if simulateEve {
		eve, err := photon.NewEavesdropper(DefaultEveRate,
			rand.New(rand.NewSource(time.Now().UnixNano()+1)))
		if err != nil {
			log.WithError(err).Error("building eavesdropper")
			return "", true
		}
		opts.Eavesdropper = eve
	}
	p, err := NewProtocol(opts)
	if err != nil {
		log.WithError(err).Error("configuring QKD protocol")
		return "", true
	}

	res, err := p.Run()
	switch {
	case errors.Is(err, ErrEavesdropperDetected):
		log.WithField("qber", res.Stats.QBER).Warn("eavesdropper detected, discarding run")
		return "", true
	case errors.Is(err, ErrInsufficientKeyMaterial):
		log.WithField("sifted_bits", res.Stats.SiftedBits).Warn("insufficient key material, discarding run")
		return "", true
	case err != nil:
		log.WithError(err).Error("QKD run failed, failing closed")
		return "", true
	}

	log.WithFields(logrus.Fields{
		"qber":     res.Stats.QBER,
		"key_bits": res.Stats.KeyBits,
	}).Info("session key established")
	return res.Key, false
}
