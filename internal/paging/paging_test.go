package paging

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect(t *testing.T) {
	// Three full-ish pages followed by the empty terminator.
	sizes := []int{100, 100, 37}

	var calls int

	items, err := Collect(context.Background(), func(_ context.Context, page int) ([]int, error) {
		calls++

		assert.Equal(t, calls, page, "pages must be fetched in order")

		if page > len(sizes) {
			return nil, nil
		}

		out := make([]int, sizes[page-1])
		for i := range out {
			out[i] = (page-1)*100 + i
		}

		return out, nil
	})
	require.NoError(t, err)

	assert.Len(t, items, 237)
	assert.Equal(t, 4, calls, "the empty page terminates the walk")
	assert.Equal(t, 0, items[0])
	assert.Equal(t, 236, items[236], "concatenation preserves page order")
}

func TestCollect_EmptyFirstPage(t *testing.T) {
	var calls int

	items, err := Collect(context.Background(), func(context.Context, int) ([]string, error) {
		calls++

		return nil, nil
	})
	require.NoError(t, err)

	assert.Empty(t, items)
	assert.Equal(t, 1, calls)
}

func TestCollect_Error(t *testing.T) {
	boom := errors.New("boom")

	items, err := Collect(context.Background(), func(_ context.Context, page int) ([]int, error) {
		if page == 2 {
			return nil, boom
		}

		return []int{page}, nil
	})
	require.ErrorIs(t, err, boom)
	assert.Nil(t, items)
}

func TestCollectIndexed(t *testing.T) {
	pages := map[int][]string{
		1: {"a", "b"},
		2: {"c"},
	}

	var calls int

	items, err := CollectIndexed(context.Background(), func(_ context.Context, index int) ([]string, Meta, error) {
		calls++

		return pages[index], Meta{PageCount: 2, PageNext: 2}, nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, items)
	assert.Equal(t, 2, calls, "pageNext equal to the current index stops the walk")
}

func TestCollectIndexed_ZeroPageCount(t *testing.T) {
	var calls int

	items, err := CollectIndexed(context.Background(), func(context.Context, int) ([]int, Meta, error) {
		calls++

		return []int{1}, Meta{}, nil
	})
	require.NoError(t, err)

	assert.Equal(t, []int{1}, items, "the terminating page's items are kept")
	assert.Equal(t, 1, calls)
}

func TestCollectIndexed_Error(t *testing.T) {
	boom := errors.New("boom")

	_, err := CollectIndexed(context.Background(), func(context.Context, int) ([]int, Meta, error) {
		return nil, Meta{}, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestBatch(t *testing.T) {
	tests := []struct {
		name  string
		count int
		size  int
		want  []int // batch lengths
	}{
		{"exact multiple", 20, 10, []int{10, 10}},
		{"remainder", 25, 10, []int{10, 10, 5}},
		{"single partial", 3, 10, []int{3}},
		{"size one", 3, 1, []int{1, 1, 1}},
		{"empty", 0, 10, nil},
		{"zero size", 5, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]int, tt.count)
			for i := range items {
				items[i] = i
			}

			batches := Batch(items, tt.size)
			require.Len(t, batches, len(tt.want))

			next := 0

			for i, batch := range batches {
				assert.Len(t, batch, tt.want[i])

				for _, item := range batch {
					assert.Equal(t, next, item, fmt.Sprintf("batch %d must preserve input order", i))
					next++
				}
			}
		})
	}
}
