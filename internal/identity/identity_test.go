package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhoneVariantsFromLocalNumber(t *testing.T) {
	variants := PhoneVariants("08031234567")

	assert.Subset(t, variants, []string{"08031234567", "8031234567", "2348031234567", "+2348031234567"})
	assert.Len(t, variants, 4)
}

func TestPhoneVariantsFromInternationalNumber(t *testing.T) {
	for _, raw := range []string{"2348031234567", "+2348031234567", "+234 803 123 4567"} {
		variants := PhoneVariants(raw)
		assert.Contains(t, variants, raw)
		assert.Contains(t, variants, "08031234567", raw)
		assert.Contains(t, variants, "+2348031234567", raw)
		assert.Contains(t, variants, "8031234567", raw)
	}
}

func TestPhoneVariantsBareTenDigits(t *testing.T) {
	variants := PhoneVariants("8031234567")
	assert.ElementsMatch(t, []string{"8031234567", "08031234567", "2348031234567", "+2348031234567"}, variants)
}

func TestPhoneVariantsForeignNumberKeepsRawAndDigits(t *testing.T) {
	variants := PhoneVariants("+1 (415) 555-0100")
	assert.Equal(t, []string{"+1 (415) 555-0100", "14155550100"}, variants)
}

func TestEmptyInputsYieldEmptySets(t *testing.T) {
	assert.Empty(t, PhoneVariants("   "))
	assert.Empty(t, EmailSet(""))
	assert.Empty(t, PseudoEmails(nil, "x.test"))

	n := Normalize(Identity{}, "")
	assert.True(t, n.IsEmpty())
}

func TestEmailSetIsSingleLowercaseValue(t *testing.T) {
	assert.Equal(t, []string{"ada@example.com"}, EmailSet("  Ada@Example.COM "))
}

func TestPseudoEmailsUseEveryVariant(t *testing.T) {
	got := PseudoEmails(PhoneVariants("08031234567"), "Guest.Example")
	assert.Equal(t, []string{
		"08031234567@guest.example",
		"8031234567@guest.example",
		"2348031234567@guest.example",
		"+2348031234567@guest.example",
	}, got)
}

func TestNormalizeDefaultsPseudoDomain(t *testing.T) {
	n := Normalize(Identity{OwnerID: " u1 ", Email: "A@B.com", Phone: "08031234567"}, "")

	assert.Equal(t, "u1", n.OwnerID)
	assert.Equal(t, []string{"a@b.com"}, n.Emails)
	assert.Contains(t, n.PseudoEmails, "08031234567@"+DefaultPseudoEmailDomain)
	assert.False(t, n.IsEmpty())
}
