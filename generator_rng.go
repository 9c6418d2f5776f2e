package jsonschema

// lcgRNG is a linear-congruential generator: same seed, same document, and
// same pointer sequence of calls always produce the same stream, per
// spec.md §4.5's determinism requirement. math/rand's global generator is
// avoided because its output depends on process-wide call order, not just
// the seed passed in.
type lcgRNG struct {
	state uint64
}

const (
	lcgMultiplier = 6364136223846793005
	lcgIncrement  = 1442695040888963407
)

func newLCG(seed uint64) *lcgRNG {
	return &lcgRNG{state: seed}
}

// next advances the generator and returns the new state.
func (r *lcgRNG) next() uint64 {
	r.state = r.state*lcgMultiplier + lcgIncrement
	return r.state
}

// intn returns a deterministic value in [0, n). Returns 0 for n <= 0.
func (r *lcgRNG) intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.next() % uint64(n))
}

// float64 returns a deterministic value in [0, 1).
func (r *lcgRNG) float64() float64 {
	return float64(r.next()>>11) / float64(1<<53)
}

// bytes fills n deterministic bytes from the stream, used to seed
// uuid.NewSHA1 for the "uuid" format.
func (r *lcgRNG) bytes(n int) []byte {
	out := make([]byte, 0, n)
	for len(out) < n {
		v := r.next()
		for i := 0; i < 8 && len(out) < n; i++ {
			out = append(out, byte(v))
			v >>= 8
		}
	}
	return out
}

var lowerAlphabet = []byte("abcdefghijklmnopqrstuvwxyz")

// randomString synthesizes a deterministic lowercase string of length n.
func (r *lcgRNG) randomString(n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = lowerAlphabet[r.intn(len(lowerAlphabet))]
	}
	return string(out)
}
