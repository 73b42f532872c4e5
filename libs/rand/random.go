package rand

import (
	crand "crypto/rand"
	"encoding/binary"
	mrand "math/rand"
)

// NewRand returns a prng seeded with OS randomness. The OS randomness is
// obtained from crypto/rand, however, like with any math/rand.Rand object
// none of the provided methods are suitable for cryptographic usage.
func NewRand() *mrand.Rand {
	var seed int64
	binary.Read(crand.Reader, binary.BigEndian, &seed)
	return mrand.New(mrand.NewSource(seed))
}

// Bytes returns n uniformly random bytes generated from a freshly
// instantiated prng. Returns an empty slice when n <= 0.
func Bytes(n int) []byte {
	if n <= 0 {
		return []byte{}
	}
	rand := NewRand()
	bs := make([]byte, n)
	rand.Read(bs)
	return bs
}
