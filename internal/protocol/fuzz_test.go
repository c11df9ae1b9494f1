package protocol

import (
	"math/rand"
	"os"
	"strconv"
	"testing"
	"time"
)

// getFuzzRounds returns the number of fuzz rounds from FUZZ_ROUNDS env var, default 1000
func getFuzzRounds() int {
	if envRounds := os.Getenv("FUZZ_ROUNDS"); envRounds != "" {
		if rounds, err := strconv.Atoi(envRounds); err == nil && rounds > 0 {
			return rounds
		}
	}
	return 1000
}

// getFuzzSeed returns the seed from FUZZ_SEED env var, or generates one from current time
func getFuzzSeed() int64 {
	if envSeed := os.Getenv("FUZZ_SEED"); envSeed != "" {
		if seed, err := strconv.ParseInt(envSeed, 10, 64); err == nil {
			return seed
		}
	}
	return time.Now().UnixNano()
}

// newFuzzRng creates a new random number generator and logs the seed for reproducibility
func newFuzzRng(t *testing.T) *rand.Rand {
	seed := getFuzzSeed()
	t.Logf("Seed: %d (reproduce with FUZZ_SEED=%d)", seed, seed)
	return rand.New(rand.NewSource(seed))
}

// TestFuzzParserRecovery feeds randomly generated garbage followed by a
// valid frame through the drop-one-byte resynchronization loop and
// checks the frame always comes back intact.
func TestFuzzParserRecovery(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()

	for round := 0; round < rounds; round++ {
		dest := uint16(rng.Intn(0x10000))
		src := uint16(rng.Intn(0x10000))
		body := make([]byte, rng.Intn(64))
		rng.Read(body)
		valid := EncodeRequest(dest, src, byte(rng.Intn(256)), body)

		garbage := make([]byte, rng.Intn(128))
		rng.Read(garbage)
		buf := append(garbage, valid...)

		recovered := false
		for len(buf) > 0 {
			frame, consumed, status := TryParseFrame(buf)
			switch status {
			case ParseOK:
				// Random garbage can in principle form a valid frame, so
				// only check the intended frame once we reach it.
				if frame.Dest == dest && frame.Src == src && len(buf) == len(valid) {
					recovered = true
				}
				buf = buf[consumed:]
			case ParseInvalid:
				buf = buf[1:]
			case ParseNeedMore:
				// A garbage start marker can declare a length that runs
				// past the end of the finite test buffer. The stream has
				// ended, so skip it like any other bad byte.
				buf = buf[1:]
			}
			if recovered {
				break
			}
		}
		if !recovered {
			t.Fatalf("round %d: valid frame not recovered (dest=%d src=%d)", round, dest, src)
		}
	}
}

// TestFuzzDecoderTotal throws random payloads at the decoder; it must
// either return a fully populated record or nil, and never panic.
func TestFuzzDecoderTotal(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()
	dec := NewDecoder(DefaultTypeTable())

	for round := 0; round < rounds; round++ {
		payload := make([]byte, rng.Intn(96))
		rng.Read(payload)

		rec := dec.Decode(uint16(rng.Intn(0x10000)), uint16(rng.Intn(1000)), payload)
		if rec == nil {
			continue
		}
		if rec.Name == "" || rec.Name == "?" {
			t.Fatalf("round %d: record with unassigned name %q", round, rec.Name)
		}
		if rec.Type == "" {
			t.Fatalf("round %d: record without type name", round)
		}
		if rec.Exponent > 6 || rec.Exponent < -6 {
			t.Fatalf("round %d: exponent %d out of range", round, rec.Exponent)
		}
		if rec.Value == "" {
			t.Fatalf("round %d: empty value string", round)
		}
	}
}
