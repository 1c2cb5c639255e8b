// Package password implements the credential policy used when provisioning
// accounts: strength assessment of a candidate and generation of compliant
// temporary passwords.
package password

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Strength buckets a score into the classes shown to the administrator.
type Strength string

const (
	StrengthWeak   Strength = "weak"
	StrengthMedium Strength = "medium"
	StrengthStrong Strength = "strong"
)

// Checks holds the five independent policy checks.
type Checks struct {
	Length    bool `json:"length"`
	Uppercase bool `json:"uppercase"`
	Lowercase bool `json:"lowercase"`
	Number    bool `json:"number"`
	Special   bool `json:"special"`
}

// Assessment is the result of scoring a candidate credential.
type Assessment struct {
	Checks   Checks   `json:"checks"`
	Score    int      `json:"score"`
	Strength Strength `json:"strength"`
}

// Special characters recognised by the assessment check.
const specialSet = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?"

// Character pools used by the generator. The special pool is narrower than
// the assessment set so generated credentials stay easy to transcribe.
const (
	genUppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	genLowercase = "abcdefghijklmnopqrstuvwxyz"
	genDigits    = "0123456789"
	genSpecial   = "!@#$%^&*_-+="
)

const generatedLength = 12

// Assess scores a candidate credential. It is pure and total over all
// strings: the empty string scores 0 and is weak.
func Assess(candidate string) Assessment {
	checks := Checks{
		Length:    len(candidate) >= 8,
		Uppercase: strings.ContainsAny(candidate, genUppercase),
		Lowercase: strings.ContainsAny(candidate, genLowercase),
		Number:    strings.ContainsAny(candidate, genDigits),
		Special:   strings.ContainsAny(candidate, specialSet),
	}

	score := 0
	for _, ok := range []bool{checks.Length, checks.Uppercase, checks.Lowercase, checks.Number, checks.Special} {
		if ok {
			score++
		}
	}

	strength := StrengthWeak
	switch {
	case score >= 5:
		strength = StrengthStrong
	case score >= 3:
		strength = StrengthMedium
	}

	return Assessment{Checks: checks, Score: score, Strength: strength}
}

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// Generate produces a 12-character credential that satisfies all five
// checks: one character from each pool seeds the result, the remainder is
// drawn from the union of all pools, and the whole sequence is shuffled.
// The seed characters survive shuffling, so Assess(Generate()) is always
// strong.
func Generate() string {
	rngMu.Lock()
	defer rngMu.Unlock()
	return generate(rng)
}

func generate(r *rand.Rand) string {
	all := genUppercase + genLowercase + genDigits + genSpecial

	buf := make([]byte, 0, generatedLength)
	buf = append(buf,
		genUppercase[r.Intn(len(genUppercase))],
		genLowercase[r.Intn(len(genLowercase))],
		genDigits[r.Intn(len(genDigits))],
		genSpecial[r.Intn(len(genSpecial))],
	)
	for len(buf) < generatedLength {
		buf = append(buf, all[r.Intn(len(all))])
	}

	r.Shuffle(len(buf), func(i, j int) {
		buf[i], buf[j] = buf[j], buf[i]
	})

	return string(buf)
}
