package repository

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/smallbiznis/orderhub/internal/booking/domain"
)

// matchNothing keeps an empty identity from selecting other accounts' records.
const matchNothing = "1 = 0"

// likeEscape is portable across postgres, mysql and sqlite.
const likeEscape = "!"

// SmartMatchPredicate renders the caller's identity as a disjunction over the
// contact columns this store actually has.
func SmartMatchPredicate(schema domain.Schema, match domain.Match) (string, []any, error) {
	if match.IsEmpty() {
		return matchNothing, nil, nil
	}

	or := sq.Or{}
	if match.OwnerID != "" && schema.OwnerColumn != "" {
		or = append(or, sq.Eq{schema.OwnerColumn: match.OwnerID})
	}

	emailColumns := knownColumns(domain.EmailColumns, schema.EmailColumns)
	if len(match.Emails) > 0 {
		for _, column := range emailColumns {
			or = append(or, sq.Eq{lower(column): match.Emails})
		}
	}
	if len(match.Phones) > 0 {
		for _, column := range knownColumns(domain.PhoneColumns, schema.PhoneColumns) {
			or = append(or, sq.Eq{column: match.Phones})
		}
	}
	if len(match.PseudoEmails) > 0 {
		for _, column := range emailColumns {
			or = append(or, sq.Eq{lower(column): match.PseudoEmails})
		}
	}

	if len(or) == 0 {
		return matchNothing, nil, nil
	}
	return or.ToSql()
}

// ExactReferencePredicate matches ref against every reference column the store has.
func ExactReferencePredicate(schema domain.Schema, ref string) (string, []any, error) {
	ref = strings.TrimSpace(ref)
	columns := knownColumns(domain.ReferenceColumns, schema.ReferenceColumns)
	if ref == "" || len(columns) == 0 {
		return matchNothing, nil, nil
	}
	or := sq.Or{}
	for _, column := range columns {
		or = append(or, sq.Eq{column: ref})
	}
	return or.ToSql()
}

// FuzzyReferencePredicate matches records whose fuzzy reference columns contain ref,
// ignoring case.
func FuzzyReferencePredicate(schema domain.Schema, ref string) (string, []any, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	columns := schema.FuzzyColumns()
	if ref == "" || len(columns) == 0 {
		return matchNothing, nil, nil
	}
	pattern := "%" + escapeLike(ref) + "%"
	or := sq.Or{}
	for _, column := range columns {
		or = append(or, sq.Expr(fmt.Sprintf("%s LIKE ? ESCAPE '%s'", lower(column), likeEscape), pattern))
	}
	return or.ToSql()
}

func escapeLike(value string) string {
	return strings.NewReplacer(
		likeEscape, likeEscape+likeEscape,
		"%", likeEscape+"%",
		"_", likeEscape+"_",
	).Replace(value)
}

func lower(column string) string {
	return "LOWER(" + column + ")"
}

// knownColumns keeps the store's columns that belong to the allowed set, so column
// names never come from anywhere but the static schemas.
func knownColumns(allowed, have []string) []string {
	out := make([]string, 0, len(have))
	for _, column := range have {
		for _, a := range allowed {
			if column == a {
				out = append(out, column)
				break
			}
		}
	}
	return out
}
