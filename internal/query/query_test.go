package query

import (
	"testing"

	"github.com/arajah/artimeline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ev(title, story, start string) domain.Event {
	return domain.Event{ID: title, Title: title, Story: story, StartDate: start}
}

func titles(events []domain.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Title
	}
	return out
}

func TestFilterEmptyCriteriaReturnsAllInOrder(t *testing.T) {
	events := []domain.Event{ev("c", "S1", ""), ev("a", "S2", ""), ev("b", "S1", "")}
	got := Filter(events, Criteria{})
	assert.Equal(t, []string{"c", "a", "b"}, titles(got))
}

func TestFilterIsConjunction(t *testing.T) {
	both := domain.Event{Title: "both", Story: "Overmorrow", Characters: domain.StringList{"Lira"}}
	storyOnly := domain.Event{Title: "story only", Story: "Overmorrow"}
	charOnly := domain.Event{Title: "char only", Story: "Stelo Vienas", Characters: domain.StringList{"Lira"}}

	got := Filter([]domain.Event{both, storyOnly, charOnly}, Criteria{Story: "Overmorrow", Character: "Lira"})
	assert.Equal(t, []string{"both"}, titles(got))
}

func TestFilterStoryExactMatchTrimmed(t *testing.T) {
	events := []domain.Event{
		{Title: "padded", Story: "  Overmorrow  "},
		{Title: "other", Story: "overmorrow"}, // exact match is case-sensitive
	}
	got := Filter(events, Criteria{Story: "Overmorrow"})
	assert.Equal(t, []string{"padded"}, titles(got))
}

func TestFilterMembershipCaseInsensitive(t *testing.T) {
	events := []domain.Event{
		{Title: "hit", Categories: domain.StringList{"Battle", "Politics"}},
		{Title: "miss", Categories: domain.StringList{"Romance"}},
	}
	got := Filter(events, Criteria{Category: "battle"})
	assert.Equal(t, []string{"hit"}, titles(got))
}

func TestFilterKeywordSearchesAllTextFields(t *testing.T) {
	events := []domain.Event{
		{Title: "by note", Notes: "the SIEGE lasted months"},
		{Title: "by character", Characters: domain.StringList{"Siegfried"}},
		{Title: "no match", Notes: "peace talks"},
	}
	got := Filter(events, Criteria{Keyword: "sieg"})
	assert.Equal(t, []string{"by note", "by character"}, titles(got))
}

func TestSortDeterministic(t *testing.T) {
	a := ev("a", "", "1850")
	b := ev("b", "", "")
	c := ev("c", "", "1820-06")

	// Undated events sort last regardless of input order.
	for _, input := range [][]domain.Event{{a, b, c}, {b, c, a}, {c, a, b}} {
		got := Sort(input)
		assert.Equal(t, []string{"c", "a", "b"}, titles(got))
	}
}

func TestSortTieBreakers(t *testing.T) {
	first := domain.Event{Title: "zeta", StartDate: "1850", SortIndex: -1}
	second := domain.Event{Title: "Alpha", StartDate: "1850", SortIndex: 0}
	third := domain.Event{Title: "beta", StartDate: "1850", SortIndex: 0}

	got := Sort([]domain.Event{third, second, first})
	assert.Equal(t, []string{"zeta", "Alpha", "beta"}, titles(got))
}

func TestSortDoesNotMutateInput(t *testing.T) {
	input := []domain.Event{ev("late", "", "1900"), ev("early", "", "1800")}
	Sort(input)
	assert.Equal(t, []string{"late", "early"}, titles(input))
}

func TestSortYearVsYearMonth(t *testing.T) {
	// "1850" parses as 1850-01-01 and therefore precedes "1850-06".
	got := Sort([]domain.Event{ev("june", "", "1850-06"), ev("year", "", "1850")})
	assert.Equal(t, []string{"year", "june"}, titles(got))
}

func TestDistinctValues(t *testing.T) {
	events := []domain.Event{
		{Story: "Overmorrow", Era: "Sepia Age", Characters: domain.StringList{"Lira"}, Categories: domain.StringList{"Battle"}},
		{Story: "Stelo Vienas", Characters: domain.StringList{"Lira", "Tomas"}},
		{Story: "  Overmorrow  ", Era: ""},
	}

	d := DistinctValues(events)
	require.Equal(t, []string{"Overmorrow", "Stelo Vienas"}, d.Stories)
	assert.Equal(t, []string{"Sepia Age"}, d.Eras)
	assert.Equal(t, []string{"Lira", "Tomas"}, d.Characters)
	assert.Equal(t, []string{"Battle"}, d.Categories)
}
