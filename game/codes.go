package game

import "math/rand"

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// codeAttempts bounds the retry-until-unique loop. A 6-character code space
// holds ~2.1 billion values, so collisions beyond a handful of retries mean
// the length is too small for the live room count; we widen rather than fail.
const codeAttempts = 64

func newCode(rng *rand.Rand, length int) string {
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = codeCharset[rng.Intn(len(codeCharset))]
	}
	return string(buf)
}

// allocateCode returns a code not currently present in the store.
func allocateCode(store Store, rng *rand.Rand, length int) string {
	for {
		for i := 0; i < codeAttempts; i++ {
			code := newCode(rng, length)
			if _, taken := store.Get(code); !taken {
				return code
			}
		}
		length++
	}
}
