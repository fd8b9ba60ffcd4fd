package tenant

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	accountRepo "bookable/database/repository/account"

	"github.com/google/uuid"
)

const (
	minLabelLen = 3
	maxLabelLen = 63
	maxSuffix   = 999

	// randomAttempts bounds the fully random fallback; collisions on random
	// labels are vanishingly rare, the bound keeps termination explicit.
	randomAttempts = 5
)

var (
	// Matches characters outside the subdomain alphabet.
	invalidCharRe = regexp.MustCompile(`[^a-z0-9-]`)
	// Matches runs of hyphens.
	multiHyphenRe = regexp.MustCompile(`-{2,}`)
)

// NormalizeLabel turns an arbitrary display name into the subdomain grammar:
// lowercase, strip to [a-z0-9-], collapse repeated hyphens, trim hyphens at
// the edges, truncate to 63 characters. The result may still be too short;
// GenerateUniqueSubdomain substitutes a random label in that case.
func NormalizeLabel(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = strings.ReplaceAll(s, " ", "-")
	s = invalidCharRe.ReplaceAllString(s, "")
	s = multiHyphenRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxLabelLen {
		s = strings.TrimRight(s[:maxLabelLen], "-")
	}
	return s
}

// randomLabel synthesizes a fallback label that always fits the grammar.
func randomLabel() string {
	return "site-" + strings.ReplaceAll(uuid.New().String(), "-", "")[:10]
}

// GenerateUniqueSubdomain normalizes candidateSource into a label, finds a
// free variant, and assigns it to the account. Taken labels get a numbered
// suffix (-2 .. -999, re-truncating the base so the result stays within 63
// characters); exhaustion falls back to a random label. The storage unique
// index is the final arbiter: losing an assignment race means trying the
// next candidate, not failing.
func (r *Resolver) GenerateUniqueSubdomain(accountID, candidateSource string) (string, error) {
	base := NormalizeLabel(candidateSource)
	if len(base) < minLabelLen {
		base = randomLabel()
	}

	if label, ok, err := r.tryAssign(accountID, base); err != nil {
		return "", err
	} else if ok {
		return label, nil
	}

	for i := 2; i <= maxSuffix; i++ {
		candidate := suffixed(base, i)
		label, ok, err := r.tryAssign(accountID, candidate)
		if err != nil {
			return "", err
		}
		if ok {
			return label, nil
		}
	}

	for i := 0; i < randomAttempts; i++ {
		label, ok, err := r.tryAssign(accountID, randomLabel())
		if err != nil {
			return "", err
		}
		if ok {
			return label, nil
		}
	}

	return "", errors.New("could not find a free subdomain label")
}

// tryAssign attempts to claim candidate for the account. Returns ok=false
// when the label is taken, either up front or by losing the unique-index
// race at write time.
func (r *Resolver) tryAssign(accountID, candidate string) (string, bool, error) {
	taken, err := r.Accounts.SubdomainExists(candidate)
	if err != nil {
		return "", false, fmt.Errorf("failed to probe subdomain %s: %w", candidate, err)
	}
	if taken {
		return "", false, nil
	}

	if err := r.Accounts.SetSubdomain(accountID, candidate); err != nil {
		if errors.Is(err, accountRepo.ErrSubdomainTaken) {
			return "", false, nil
		}
		return "", false, err
	}
	return candidate, true, nil
}

// suffixed appends "-n" to base, shortening base so the whole label stays
// within the 63-character limit.
func suffixed(base string, n int) string {
	suffix := fmt.Sprintf("-%d", n)
	maxBase := maxLabelLen - len(suffix)
	if len(base) > maxBase {
		base = strings.TrimRight(base[:maxBase], "-")
	}
	return base + suffix
}
