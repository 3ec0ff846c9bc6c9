package mystore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectPages(t *testing.T) {

	fetcher := func(total int, pageSize int, calls *int) func(start *int) ([]int, int, error) {
		return func(start *int) ([]int, int, error) {
			*calls++
			from := 0
			if start != nil {
				from = *start
			}
			to := min(from+pageSize, total)
			page := []int{}
			for i := from; i < to; i++ {
				page = append(page, i)
			}
			return page, to, nil
		}
	}

	t.Run("More than one page", func(t *testing.T) {
		calls := 0

		// when
		result, err := collectPages(500, fetcher(1234, 500, &calls))

		// then
		assert.NoError(t, err)
		assert.Len(t, result, 1234)
		assert.Equal(t, 1233, result[1233])
		assert.Equal(t, 3, calls)
	})

	t.Run("Exact multiple of the page size", func(t *testing.T) {
		calls := 0

		result, err := collectPages(500, fetcher(1000, 500, &calls))

		assert.NoError(t, err)
		assert.Len(t, result, 1000)
		assert.Equal(t, 3, calls)
	})

	t.Run("Empty", func(t *testing.T) {
		calls := 0

		result, err := collectPages(500, fetcher(0, 500, &calls))

		assert.NoError(t, err)
		assert.Empty(t, result)
		assert.Equal(t, 1, calls)
	})

	t.Run("Failing page", func(t *testing.T) {
		// given
		calls := 0
		failing := func(start *int) ([]int, int, error) {
			calls++
			if start != nil {
				return nil, 0, assert.AnError
			}
			return make([]int, 500), 500, nil
		}

		// when
		_, err := collectPages(500, failing)

		// then
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, 2, calls)
	})
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, "envelope", kindOf[envelope]())
	assert.Equal(t, "string", kindOf[string]())
}
