package assistant

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultQuotes(t *testing.T) {
	q := DefaultQuotes()
	quotes := q.Quotes()
	require.Len(t, quotes, 4)

	for range 50 {
		assert.Contains(t, quotes, q.Pick())
	}
}

func TestNewRandomQuotes(t *testing.T) {
	t.Run("rejects empty list", func(t *testing.T) {
		_, err := NewRandomQuotes(nil)
		assert.ErrorIs(t, err, ErrNoQuotes)
	})

	t.Run("drops blank entries", func(t *testing.T) {
		_, err := NewRandomQuotes([]string{" ", ""})
		assert.ErrorIs(t, err, ErrNoQuotes)

		q, err := NewRandomQuotes([]string{"", "only"})
		require.NoError(t, err)
		assert.Equal(t, "only", q.Pick())
	})
}

func TestLoadQuotes(t *testing.T) {
	q, err := LoadQuotes(strings.NewReader("quotes:\n  - first\n  - second\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, q.Quotes())

	_, err = LoadQuotes(strings.NewReader("quotes: ["))
	assert.Error(t, err)
}

func TestFixedQuote(t *testing.T) {
	assert.Equal(t, "steady", FixedQuote("steady").Pick())
}

func TestNewRandomQuotes_Dedupes(t *testing.T) {
	q, err := NewRandomQuotes([]string{" same ", "same", "other"})
	require.NoError(t, err)
	assert.Equal(t, []string{"same", "other"}, q.Quotes())
}

func TestRandomQuotes_ConcurrentPick(t *testing.T) {
	q := DefaultQuotes()
	quotes := q.Quotes()

	var wg sync.WaitGroup
	picked := make(chan string, 8*100)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				picked <- q.Pick()
			}
		}()
	}
	wg.Wait()
	close(picked)

	for quote := range picked {
		assert.Contains(t, quotes, quote)
	}
	assert.Equal(t, quotes, q.Quotes(), "picking never mutates the list")
}
