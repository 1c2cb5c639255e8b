// Package email validates provisioning addresses against the platform's
// domain allow-list and drives the assisted-entry affordance shown while an
// administrator types a new address.
package email

import "strings"

// AllowedDomains is the fixed, ordered allow-list for account provisioning.
var AllowedDomains = []string{"gmail.com", "rbmi.in", "yahoo.com", "outlook.com", "hotmail.com"}

var allowedSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(AllowedDomains))
	for _, d := range AllowedDomains {
		set[d] = struct{}{}
	}
	return set
}()

// Split decomposes an address at the first '@'. ok is false when no '@' is
// present.
func Split(address string) (localPart, domain string, ok bool) {
	local, rest, found := strings.Cut(address, "@")
	if !found {
		return address, "", false
	}
	return local, rest, true
}

// ValidateDomain reports whether the address carries an allow-listed domain.
// Matching is case-insensitive on the domain only.
func ValidateDomain(address string) bool {
	_, domain, ok := Split(address)
	if !ok {
		return false
	}
	_, allowed := allowedSet[strings.ToLower(domain)]
	return allowed
}

// SuggestDomains returns the allow-list in declared order whenever the user
// has typed a non-empty local part without an '@' yet; otherwise nil.
func SuggestDomains(localPart string) []string {
	if localPart == "" || strings.Contains(localPart, "@") {
		return nil
	}
	out := make([]string, len(AllowedDomains))
	copy(out, AllowedDomains)
	return out
}

// Assist is the assisted-entry affordance: a two-state machine (hidden or
// shown) fed by raw input events.
type Assist struct {
	localPart string
	shown     bool
}

// Shown reports whether the suggestion affordance is visible.
func (a *Assist) Shown() bool { return a.shown }

// LocalPart returns the local part captured from the last input.
func (a *Assist) LocalPart() string { return a.localPart }

// Input processes an edit of the address field. The affordance shows when
// the input is non-empty and contains no '@', and hides once an '@' is typed.
func (a *Assist) Input(value string) {
	local, _, hasAt := Split(value)
	a.localPart = local
	a.shown = !hasAt && value != ""
}

// Choose composes the full address from the captured local part and the
// selected domain, hiding the affordance.
func (a *Assist) Choose(domain string) string {
	a.shown = false
	return a.localPart + "@" + domain
}

// Dismiss hides the affordance without composing an address.
func (a *Assist) Dismiss() {
	a.shown = false
}

// Suggestions returns the current suggestion list, empty while hidden.
func (a *Assist) Suggestions() []string {
	if !a.shown {
		return nil
	}
	return SuggestDomains(a.localPart)
}
