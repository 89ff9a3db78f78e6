// Package transcript implements the Fiat-Shamir challenger the prover and
// verifier both drive identically: observe commitments and evaluation
// claims, sample verifier challenges, byte-for-byte deterministic given
// the same sequence of calls. Structurally this is the teacher's
// utils.Channel (absorb-then-squeeze over a running hash state, hash
// function dispatched by name), generalized from the teacher's prime
// field to binary tower elements and rid of the teacher's dependency on
// an unfetchable external field package.
package transcript

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/diamondtower/tensorpcs/internal/tensorpcs/core"
)

// Challenger is a duplex-style Fiat-Shamir transcript backed by SHAKE-256.
// Every Observe call domain-separates its input by a one-byte tag so that
// observing a commitment can never be confused with observing an
// evaluation claim.
type Challenger struct {
	state   []byte
	counter uint64
}

const (
	tagObserveBytes = 0x01
	tagObserveElem  = 0x02
	tagSample       = 0x10
	tagSampleBits   = 0x11
)

// New returns a fresh challenger seeded with a label, so independent
// protocol instances never share a transcript by accident.
func New(label string) *Challenger {
	c := &Challenger{state: []byte(label)}
	return c
}

func (c *Challenger) absorb(tag byte, data []byte) {
	h := sha3.NewShake256()
	h.Write(c.state)
	h.Write([]byte{tag})
	h.Write(data)
	out := make([]byte, 32)
	h.Read(out)
	c.state = out
	c.counter = 0
}

// Observe absorbs raw bytes, such as a commitment digest, into the
// transcript.
func (c *Challenger) Observe(data []byte) {
	c.absorb(tagObserveBytes, data)
}

// ObserveElements absorbs a sequence of field elements, such as claimed
// evaluations, into the transcript.
func (c *Challenger) ObserveElements(elems []core.Element) {
	buf := make([]byte, 0, len(elems)*16)
	for _, e := range elems {
		var tmp [16]byte
		binary.LittleEndian.PutUint64(tmp[0:8], e.Lo)
		binary.LittleEndian.PutUint64(tmp[8:16], e.Hi)
		buf = append(buf, tmp[:]...)
	}
	c.absorb(tagObserveElem, buf)
}

// squeeze produces the next 16 bytes of pseudorandom output deterministically
// derived from the current state and an internal counter, so repeated
// Sample calls without an intervening Observe still diverge.
func (c *Challenger) squeeze() []byte {
	h := sha3.NewShake256()
	h.Write(c.state)
	h.Write([]byte{tagSample})
	var ctr [8]byte
	binary.LittleEndian.PutUint64(ctr[:], c.counter)
	h.Write(ctr[:])
	c.counter++
	out := make([]byte, 16)
	h.Read(out)
	return out
}

// Sample draws a uniformly random element of F_level from the transcript.
func (c *Challenger) Sample(level uint8) (core.Element, error) {
	if level > core.MaxLevel {
		return core.Element{}, fmt.Errorf("tensorpcs/transcript: level %d exceeds max level %d", level, core.MaxLevel)
	}
	out := c.squeeze()
	lo := binary.LittleEndian.Uint64(out[0:8])
	hi := binary.LittleEndian.Uint64(out[8:16])
	return core.NewElement(level, lo, hi), nil
}

// SampleBits draws an n-bit unsigned integer (n <= 64) from the
// transcript, used for Merkle opening index challenges.
func (c *Challenger) SampleBits(n int) (uint64, error) {
	if n < 0 || n > 64 {
		return 0, fmt.Errorf("tensorpcs/transcript: bit count %d out of range [0,64]", n)
	}
	out := c.squeeze()
	h2 := sha3.NewShake256()
	h2.Write([]byte{tagSampleBits})
	h2.Write(out)
	squeezed := make([]byte, 8)
	h2.Read(squeezed)
	v := binary.LittleEndian.Uint64(squeezed)
	if n == 64 {
		return v, nil
	}
	return v & ((uint64(1) << uint(n)) - 1), nil
}
