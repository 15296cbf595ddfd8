package identity

import (
	"strings"
	"unicode"
)

// DefaultPseudoEmailDomain is used for guest bookings that stored a phone-derived
// synthetic email instead of a real one.
const DefaultPseudoEmailDomain = "phone.orderhub.local"

const (
	countryCode    = "234"
	nationalLength = 10
)

// Identity is the caller as resolved from the session.
type Identity struct {
	OwnerID string
	Email   string
	Phone   string
}

// Normalized holds every representation a record may have been stored under.
type Normalized struct {
	OwnerID      string
	Emails       []string
	Phones       []string
	PseudoEmails []string
}

// IsEmpty reports whether nothing about the caller is known.
func (n Normalized) IsEmpty() bool {
	return n.OwnerID == "" && len(n.Emails) == 0 && len(n.Phones) == 0 && len(n.PseudoEmails) == 0
}

// Normalize expands id into its email set, phone variants and pseudo-emails.
func Normalize(id Identity, pseudoDomain string) Normalized {
	phones := PhoneVariants(id.Phone)
	return Normalized{
		OwnerID:      strings.TrimSpace(id.OwnerID),
		Emails:       EmailSet(id.Email),
		Phones:       phones,
		PseudoEmails: PseudoEmails(phones, pseudoDomain),
	}
}

// EmailSet returns the lowercase trimmed email, or nothing when empty.
func EmailSet(raw string) []string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return nil
	}
	return []string{email}
}

// PhoneVariants returns the raw phone, its digits, and for Nigerian numbers the
// 0-prefixed, bare, 234-prefixed and +234-prefixed forms.
func PhoneVariants(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	set := newOrderedSet()
	set.add(raw)

	digits := onlyDigits(raw)
	set.add(digits)

	if national := nationalNumber(digits); national != "" {
		set.add("0" + national)
		set.add(national)
		set.add(countryCode + national)
		set.add("+" + countryCode + national)
	}

	return set.values()
}

// PseudoEmails renders each phone variant as <variant>@<domain>.
func PseudoEmails(phones []string, domain string) []string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		domain = DefaultPseudoEmailDomain
	}
	set := newOrderedSet()
	for _, phone := range phones {
		phone = strings.TrimSpace(phone)
		if phone == "" {
			continue
		}
		set.add(strings.ToLower(phone + "@" + domain))
	}
	return set.values()
}

// nationalNumber strips a leading 0 or 234 and returns the 10-digit subscriber
// number, or "" when the digits are not a recognizable Nigerian number.
func nationalNumber(digits string) string {
	switch {
	case len(digits) == nationalLength+1 && strings.HasPrefix(digits, "0"):
		return digits[1:]
	case len(digits) == nationalLength+len(countryCode) && strings.HasPrefix(digits, countryCode):
		return digits[len(countryCode):]
	case len(digits) == nationalLength && !strings.HasPrefix(digits, "0"):
		return digits
	default:
		return ""
	}
}

func onlyDigits(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: map[string]struct{}{}}
}

func (s *orderedSet) add(value string) {
	if value == "" {
		return
	}
	if _, ok := s.seen[value]; ok {
		return
	}
	s.seen[value] = struct{}{}
	s.items = append(s.items, value)
}

func (s *orderedSet) values() []string {
	if len(s.items) == 0 {
		return nil
	}
	return s.items
}
