package repository

import (
	"testing"

	"github.com/smallbiznis/orderhub/internal/booking/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmartMatchPredicate(t *testing.T) {
	schema := (*domain.GiftOrder)(nil).Schema()

	where, args, err := SmartMatchPredicate(schema, domain.Match{
		OwnerID:      "u-1",
		Emails:       []string{"a@b.co"},
		Phones:       []string{"0801", "801"},
		PseudoEmails: []string{"0801@phone.orderhub.local"},
	})
	require.NoError(t, err)
	assert.Equal(t,
		"(buyer_id = ? OR LOWER(buyer_email) IN (?) OR contact_phone IN (?,?) OR LOWER(buyer_email) IN (?))",
		where)
	assert.Equal(t, []any{"u-1", "a@b.co", "0801", "801", "0801@phone.orderhub.local"}, args)
}

func TestSmartMatchPredicateEmpty(t *testing.T) {
	schema := (*domain.HotelBooking)(nil).Schema()

	where, args, err := SmartMatchPredicate(schema, domain.Match{})
	require.NoError(t, err)
	assert.Equal(t, matchNothing, where)
	assert.Empty(t, args)
}

func TestFuzzyReferencePredicateEscapesWildcards(t *testing.T) {
	schema := (*domain.GiftOrder)(nil).Schema()

	where, args, err := FuzzyReferencePredicate(schema, " 50%_Off! ")
	require.NoError(t, err)
	assert.Equal(t,
		"(LOWER(payment_reference) LIKE ? ESCAPE '!' OR LOWER(reference) LIKE ? ESCAPE '!')",
		where)
	assert.Equal(t, []any{"%50!%!_off!!%", "%50!%!_off!!%"}, args)
}

func TestExactReferencePredicateWithoutColumns(t *testing.T) {
	where, _, err := ExactReferencePredicate(domain.Schema{}, "REF-1")
	require.NoError(t, err)
	assert.Equal(t, matchNothing, where)
}
