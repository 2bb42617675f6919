package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/codeval/internal/api"
)

func ids(qs []api.Question) []int {
	out := make([]int, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func TestLoadFromService(t *testing.T) {
	mock := api.NewMockBackend()
	mock.Topics = []api.Topic{
		{Name: "while_loop", Questions: []api.Question{{ID: 20, Question: "Count"}}},
		{Name: "for_loop", Questions: []api.Question{{ID: 11, Question: "A"}, {ID: 12, Question: "B"}}},
	}

	c, err := Load(context.Background(), mock)
	require.NoError(t, err)

	assert.Equal(t, []string{"while_loop", "for_loop"}, c.Topics())
	assert.Equal(t, []int{20, 11, 12}, ids(c.All()))

	q, ok := c.Question(12)
	require.True(t, ok)
	assert.Equal(t, "for_loop", q.Topic)
}

func TestLoadFallsBackOnError(t *testing.T) {
	mock := api.NewMockBackend()
	mock.TopicsErr = &api.NetworkError{Endpoint: "/questions", Err: errors.New("connection refused")}

	c, err := Load(context.Background(), mock)
	require.NotNil(t, c)

	var fe *FallbackError
	require.True(t, errors.As(err, &fe))
	var ne *api.NetworkError
	assert.True(t, errors.As(err, &ne), "cause should unwrap")

	assert.Equal(t, []string{"for_loop", "while_loop", "if_else", "nested_if_else"}, c.Topics())
	for _, name := range c.Topics() {
		qs, _ := c.Topic(name)
		assert.GreaterOrEqual(t, len(qs), 2, name)
		assert.LessOrEqual(t, len(qs), 3, name)
	}
}

func TestTopicKeepsOrder(t *testing.T) {
	c := Fallback()
	qs, ok := c.Topic("for_loop")
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, ids(qs))

	_, ok = c.Topic("recursion")
	assert.False(t, ok)
}

func TestLookups(t *testing.T) {
	c := Fallback()
	assert.Equal(t, []int{10}, ids(c.ByDifficulty("HARD")))
	assert.Equal(t, []int{4, 5}, ids(c.ByConcept("while")))
	assert.Equal(t, 10, c.Len())
}

func TestNeighborWraps(t *testing.T) {
	c := Fallback()

	next, ok := c.Neighbor("for_loop", 3, 1)
	require.True(t, ok)
	assert.Equal(t, 1, next.ID, "next from last wraps to first")

	prev, ok := c.Neighbor("for_loop", 1, -1)
	require.True(t, ok)
	assert.Equal(t, 3, prev.ID, "previous from first wraps to last")

	_, ok = c.Neighbor("for_loop", 999, 1)
	assert.False(t, ok)
}

func TestRepeatedIDsStayInTheirTopic(t *testing.T) {
	c := New([]api.Topic{
		{Name: "for_loop", Questions: []api.Question{{ID: 1, Question: "a"}, {ID: 2, Question: "b"}}},
		{Name: "while_loop", Questions: []api.Question{{ID: 1, Question: "c"}, {ID: 7, Question: "d"}}},
	})

	q, ok := c.QuestionIn("while_loop", 1)
	require.True(t, ok)
	assert.Equal(t, "c", q.Question)
	assert.Equal(t, "while_loop", q.Topic)

	next, ok := c.Neighbor("while_loop", 1, 1)
	require.True(t, ok)
	assert.Equal(t, 7, next.ID)

	_, ok = c.QuestionIn("while_loop", 2)
	assert.False(t, ok)
}

func TestDifficultiesFromCatalog(t *testing.T) {
	c := New([]api.Topic{
		{Name: "t", Questions: []api.Question{
			{ID: 1, Difficulty: "hard"},
			{ID: 2, Difficulty: "expert"},
			{ID: 3, Difficulty: "Easy"},
			{ID: 4, Difficulty: "hard"},
		}},
	})
	assert.Equal(t, []string{DifficultyAll, "easy", "hard", "expert"}, c.Difficulties())
}
