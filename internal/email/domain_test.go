package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDomain(t *testing.T) {
	cases := []struct {
		address string
		valid   bool
	}{
		{"a@gmail.com", true},
		{"a@GMAIL.COM", true},
		{"a@rbmi.in", true},
		{"a@Outlook.Com", true},
		{"a@unknown.org", false},
		{"noatsign", false},
		{"", false},
		{"@gmail.com", true},
		{"a@", false},
		{"A@gmail.com", true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.valid, ValidateDomain(tc.address), "address %q", tc.address)
	}
}

func TestSplitUsesFirstAt(t *testing.T) {
	local, domain, ok := Split("a@b@gmail.com")
	assert.True(t, ok)
	assert.Equal(t, "a", local)
	assert.Equal(t, "b@gmail.com", domain)
}

func TestSuggestDomains(t *testing.T) {
	assert.Nil(t, SuggestDomains(""))
	assert.Nil(t, SuggestDomains("john@"))
	assert.Equal(t, []string{"gmail.com", "rbmi.in", "yahoo.com", "outlook.com", "hotmail.com"}, SuggestDomains("john.doe"))
}

func TestAssistTransitions(t *testing.T) {
	var a Assist
	assert.False(t, a.Shown(), "initial state is hidden")

	a.Input("john")
	assert.True(t, a.Shown())
	assert.Equal(t, AllowedDomains, a.Suggestions())

	a.Input("john@")
	assert.False(t, a.Shown(), "typing '@' hides the affordance")
	assert.Nil(t, a.Suggestions())

	a.Input("john")
	composed := a.Choose("rbmi.in")
	assert.Equal(t, "john@rbmi.in", composed)
	assert.False(t, a.Shown(), "choosing a suggestion hides the affordance")

	a.Input("jane")
	a.Dismiss()
	assert.False(t, a.Shown())

	a.Input("")
	assert.False(t, a.Shown(), "empty input stays hidden")
}
