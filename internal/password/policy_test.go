package password

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessScoreMatchesChecks(t *testing.T) {
	cases := []struct {
		name      string
		candidate string
		score     int
		strength  Strength
	}{
		{"empty", "", 0, StrengthWeak},
		{"lowercase only", "abc", 1, StrengthWeak},
		{"lower and digit", "abc123", 2, StrengthWeak},
		{"three checks", "abcdefg1", 3, StrengthMedium},
		{"four checks", "Abcdefg1", 4, StrengthMedium},
		{"all checks", "Abcdef1!", 5, StrengthStrong},
		{"long but single class", "aaaaaaaaaa", 2, StrengthWeak},
		{"special only", "!!!", 1, StrengthWeak},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Assess(tc.candidate)
			assert.Equal(t, tc.score, got.Score)
			assert.Equal(t, tc.strength, got.Strength)

			count := 0
			for _, ok := range []bool{got.Checks.Length, got.Checks.Uppercase, got.Checks.Lowercase, got.Checks.Number, got.Checks.Special} {
				if ok {
					count++
				}
			}
			assert.Equal(t, got.Score, count, "score must equal number of satisfied checks")
		})
	}
}

func TestAssessChecksAreIndependent(t *testing.T) {
	got := Assess("A1!")
	assert.False(t, got.Checks.Length)
	assert.True(t, got.Checks.Uppercase)
	assert.False(t, got.Checks.Lowercase)
	assert.True(t, got.Checks.Number)
	assert.True(t, got.Checks.Special)
}

func TestGenerateAlwaysStrong(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		credential := generate(r)
		require.Len(t, credential, 12)
		got := Assess(credential)
		require.Equal(t, StrengthStrong, got.Strength, "credential %q must be strong", credential)
		require.Equal(t, 5, got.Score)
	}
}

func TestGenerateUsesGlobalSource(t *testing.T) {
	credential := Generate()
	assert.Len(t, credential, 12)
	assert.Equal(t, StrengthStrong, Assess(credential).Strength)
}
