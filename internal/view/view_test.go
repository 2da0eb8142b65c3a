package view

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/dmitrijs2005/userdir/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mk(id, first, last, email, country string, age int) models.User {
	return models.User{
		ID:       id,
		Name:     models.Name{First: first, Last: last},
		Email:    email,
		Location: models.Location{Country: country},
		DOB:      models.DatedAge{Age: age},
		Login:    models.Login{UUID: id},
	}
}

func fixture() []models.User {
	return []models.User{
		mk("1", "John", "Doe", "john@example.com", "United States", 30),
		mk("2", "jane", "Smith", "JANE@corp.io", "canada", 25),
		mk("3", "Émile", "Zola", "emile@example.fr", "France", 62),
		mk("4", "Bob", "Johnson", "bob@example.com", "Australia", 41),
		mk("5", "alice", "Brown", "alice@EXAMPLE.com", "brazil", 25),
	}
}

func ids(users []models.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}

func TestFilter_EmptyTermReturnsAllInOrder(t *testing.T) {
	users := fixture()
	got := Filter(users, "")
	assert.Equal(t, ids(users), ids(got))
}

func TestFilter_CaseInsensitiveOnNameOrEmail(t *testing.T) {
	users := fixture()

	tests := []struct {
		term string
		want []string
	}{
		{"JOHN", []string{"1", "4"}},
		{"example.com", []string{"1", "4", "5"}},
		{"corp", []string{"2"}},
		{"jane smith", []string{"2"}},
		{"nobody", []string{}},
		// country is not searched
		{"canada", []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.term, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(Filter(users, tc.term)))
		})
	}
}

func TestFilter_OnlyReturnsMatches(t *testing.T) {
	users := fixture()
	for _, term := range []string{"o", "E", "zo", "@", "mith", "xyz", "ALICE"} {
		got := Filter(users, term)
		lower := strings.ToLower(term)
		matches := func(u models.User) bool {
			name := strings.ToLower(u.Name.First + " " + u.Name.Last)
			return strings.Contains(name, lower) || strings.Contains(strings.ToLower(u.Email), lower)
		}
		for _, u := range got {
			require.True(t, matches(u), "user %s does not match %q", u.ID, term)
		}
		// and nothing matching was dropped
		for _, u := range users {
			if matches(u) {
				assert.Contains(t, ids(got), u.ID)
			}
		}
	}
}

func TestSort_MonotonicForEveryKeyAndOrder(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	users := fixture()
	for i := 0; i < 40; i++ {
		users = append(users, mk(fmt.Sprintf("r%d", i),
			fmt.Sprintf("N%c", 'a'+r.Intn(26)), fmt.Sprintf("L%c", 'A'+r.Intn(26)),
			fmt.Sprintf("u%d@x.io", r.Intn(100)), fmt.Sprintf("C%c", 'a'+r.Intn(26)), r.Intn(80)))
	}

	for _, key := range SortKeys {
		for _, order := range []SortOrder{Asc, Desc} {
			t.Run(string(key)+"/"+string(order), func(t *testing.T) {
				got := FilterAndSort(users, Criteria{SortBy: key, SortOrder: order})
				require.Len(t, got, len(users))
				cmpFn := Comparator(key)
				for i := 1; i < len(got); i++ {
					c := cmpFn(got[i-1], got[i])
					if order == Asc {
						require.LessOrEqual(t, c, 0, "not ascending at %d", i)
					} else {
						require.GreaterOrEqual(t, c, 0, "not descending at %d", i)
					}
				}
			})
		}
	}
}

func TestSort_AgeDescIsNonIncreasing(t *testing.T) {
	got := FilterAndSort(fixture(), Criteria{SortBy: SortByAge, SortOrder: Desc})
	for i := 1; i < len(got); i++ {
		require.GreaterOrEqual(t, got[i-1].DOB.Age, got[i].DOB.Age)
	}
	assert.Equal(t, "3", got[0].ID)
}

func TestSort_StringKeysIgnoreCase(t *testing.T) {
	got := FilterAndSort(fixture(), Criteria{SortBy: SortByCountry, SortOrder: Asc})
	assert.Equal(t, []string{"Australia", "brazil", "canada", "France", "United States"},
		[]string{got[0].Location.Country, got[1].Location.Country, got[2].Location.Country,
			got[3].Location.Country, got[4].Location.Country})

	got = FilterAndSort(fixture(), Criteria{SortBy: SortByName, SortOrder: Asc})
	assert.Equal(t, []string{"5", "4", "3", "2", "1"}, ids(got))
}

func TestSort_TiesKeepInputOrder(t *testing.T) {
	got := FilterAndSort(fixture(), Criteria{SortBy: SortByAge, SortOrder: Asc})
	// users 2 and 5 are both 25
	assert.Equal(t, []string{"2", "5"}, ids(got[:2]))
}

func TestFilterAndSort_DoesNotMutateInput(t *testing.T) {
	users := fixture()
	before := append([]models.User(nil), users...)

	_ = FilterAndSort(users, Criteria{SearchTerm: "", SortBy: SortByAge, SortOrder: Desc})
	_ = FilterAndSort(users, Criteria{SearchTerm: "o", SortBy: SortByEmail, SortOrder: Asc})

	if diff := cmp.Diff(before, users); diff != "" {
		t.Fatalf("input mutated (-want +got):\n%s", diff)
	}
}

func TestParseSortKeyAndOrder(t *testing.T) {
	k, err := ParseSortKey(" Age ")
	require.NoError(t, err)
	assert.Equal(t, SortByAge, k)

	_, err = ParseSortKey("height")
	require.Error(t, err)

	o, err := ParseSortOrder("DESC")
	require.NoError(t, err)
	assert.Equal(t, Desc, o)
	assert.Equal(t, Asc, o.Toggle())

	_, err = ParseSortOrder("sideways")
	require.Error(t, err)
}
