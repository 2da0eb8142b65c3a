// Package view computes the filtered and sorted projection of the directory
// that the presentation layer renders. Everything here is a pure function of
// its inputs; results are recomputed on every call and never stored.
package view

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/userdir/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortByName    SortKey = "name"
	SortByEmail   SortKey = "email"
	SortByAge     SortKey = "age"
	SortByCountry SortKey = "country"
)

// SortKeys lists the valid keys in display order.
var SortKeys = []SortKey{SortByName, SortByEmail, SortByAge, SortByCountry}

func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortKeys, k) {
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case Asc, Desc:
		return o, nil
	}
	return "", fmt.Errorf("unknown sort order %q", s)
}

// Toggle returns the opposite direction.
func (o SortOrder) Toggle() SortOrder {
	if o == Desc {
		return Asc
	}
	return Desc
}

// Criteria is the search and sort input of the derived view.
type Criteria struct {
	SearchTerm string
	SortBy     SortKey
	SortOrder  SortOrder
}

// FilterAndSort returns a new slice holding the users that match c.SearchTerm,
// ordered by c.SortBy and c.SortOrder. users is never modified.
func FilterAndSort(users []models.User, c Criteria) []models.User {
	out := Filter(users, c.SearchTerm)
	Sort(out, c.SortBy, c.SortOrder)
	return out
}

// Filter keeps users whose "first last" name or email contains term,
// ignoring case. An empty term keeps everyone. The result never aliases users.
func Filter(users []models.User, term string) []models.User {
	out := make([]models.User, 0, len(users))
	if term == "" {
		return append(out, users...)
	}

	fold := cases.Fold()
	needle := fold.String(term)
	for _, u := range users {
		if strings.Contains(fold.String(u.Name.FullName()), needle) ||
			strings.Contains(fold.String(u.Email), needle) {
			out = append(out, u)
		}
	}
	return out
}

// Sort orders users in place. String keys compare case-insensitively; equal
// keys keep their relative order.
func Sort(users []models.User, key SortKey, order SortOrder) {
	cmp := Comparator(key)
	if order == Desc {
		slices.SortStableFunc(users, func(a, b models.User) int { return cmp(b, a) })
		return
	}
	slices.SortStableFunc(users, cmp)
}

// Comparator returns the ascending comparison for key. Unknown keys fall
// back to name.
func Comparator(key SortKey) func(a, b models.User) int {
	switch key {
	case SortByAge:
		return func(a, b models.User) int { return a.DOB.Age - b.DOB.Age }
	case SortByEmail:
		return textComparator(func(u models.User) string { return u.Email })
	case SortByCountry:
		return textComparator(func(u models.User) string { return u.Location.Country })
	default:
		return textComparator(func(u models.User) string { return u.Name.FullName() })
	}
}

// textComparator builds a fresh collator per comparator; collate.Collator is
// not safe for concurrent use.
func textComparator(field func(models.User) string) func(a, b models.User) int {
	col := collate.New(language.Und, collate.IgnoreCase)
	return func(a, b models.User) int {
		return col.CompareString(field(a), field(b))
	}
}
