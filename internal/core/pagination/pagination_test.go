package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestPaginate_PageSizes(t *testing.T) {
	for _, n := range []int{0, 1, 8, 9, 10, 18, 20, 27, 100} {
		items := seq(n)
		for page := 1; page <= TotalPages(n)+1; page++ {
			got := Paginate(items, page)
			want := min(PageSize, max(0, n-(page-1)*PageSize))
			assert.Lenf(t, got, want, "n=%d page=%d", n, page)
		}
	}
}

func TestPaginate_ConcatenationRebuildsCollection(t *testing.T) {
	items := seq(20)

	var rebuilt []int
	for page := 1; page <= TotalPages(len(items)); page++ {
		rebuilt = append(rebuilt, Paginate(items, page)...)
	}

	assert.Equal(t, items, rebuilt)
}

func TestPaginate_OutOfRange(t *testing.T) {
	assert.Empty(t, Paginate(seq(5), 0))
	assert.Empty(t, Paginate(seq(5), -3))
	assert.Empty(t, Paginate(seq(5), 2))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0))
	assert.Equal(t, 1, TotalPages(9))
	assert.Equal(t, 2, TotalPages(10))
	assert.Equal(t, 3, TotalPages(20))
}

func TestButtons_SinglePage(t *testing.T) {
	buttons := Buttons(1, 1)

	require.Len(t, buttons, 1)
	assert.Equal(t, "1", buttons[0].Label)
	assert.Equal(t, 1, buttons[0].Value)
	assert.True(t, buttons[0].Active)
}

func TestButtons_ThreePages(t *testing.T) {
	tests := []struct {
		name         string
		current      int
		prevDisabled bool
		nextDisabled bool
	}{
		{name: "first page", current: 1, prevDisabled: true, nextDisabled: false},
		{name: "middle page", current: 2, prevDisabled: false, nextDisabled: false},
		{name: "last page", current: 3, prevDisabled: false, nextDisabled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buttons := Buttons(tt.current, 3)
			require.Len(t, buttons, 5)

			prev, next := buttons[0], buttons[4]
			assert.True(t, prev.IsPrev)
			assert.Equal(t, tt.current-1, prev.Value)
			assert.Equal(t, tt.prevDisabled, prev.Disabled)

			assert.True(t, next.IsNext)
			assert.Equal(t, tt.current+1, next.Value)
			assert.Equal(t, tt.nextDisabled, next.Disabled)

			for i, b := range buttons[1:4] {
				assert.True(t, b.IsNumber)
				assert.Equal(t, i+1, b.Value)
				assert.Equal(t, i+1 == tt.current, b.Active)
			}
		})
	}
}

func TestIsValidPageChange(t *testing.T) {
	assert.True(t, IsValidPageChange(2, 1, 3))
	assert.False(t, IsValidPageChange(1, 1, 3))
	assert.False(t, IsValidPageChange(0, 1, 3))
	assert.False(t, IsValidPageChange(4, 1, 3))
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 3))
	assert.Equal(t, 3, ClampPage(5, 3))
	assert.Equal(t, 2, ClampPage(2, 3))
	assert.Equal(t, 1, ClampPage(4, 0))
}
