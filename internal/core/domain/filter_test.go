package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestWithMinPrice_ClampsToMax(t *testing.T) {
	f := DefaultFilterCriteria()
	f.MaxPrice = 200000

	got := f.WithMinPrice(300000)

	assert.Equal(t, 200000, got.MinPrice)
	assert.LessOrEqual(t, got.MinPrice, got.MaxPrice)
}

func TestWithMaxPrice_ClampsToMin(t *testing.T) {
	f := DefaultFilterCriteria()
	f.MinPrice = 50000

	got := f.WithMaxPrice(1000)

	assert.Equal(t, 50000, got.MaxPrice)
}

func TestWithPrice_WithinRangeUnchanged(t *testing.T) {
	f := DefaultFilterCriteria()

	assert.Equal(t, 20000, f.WithMinPrice(20000).MinPrice)
	assert.Equal(t, 90000, f.WithMaxPrice(90000).MaxPrice)
}

func TestApply(t *testing.T) {
	base := DefaultFilterCriteria()

	tests := []struct {
		name    string
		change  FilterChange
		check   func(t *testing.T, f FilterCriteria)
		wantErr bool
	}{
		{
			name:   "property type",
			change: FilterChange{Field: FilterFieldPropertyType, Value: "House"},
			check:  func(t *testing.T, f FilterCriteria) { assert.Equal(t, "House", f.PropertyType) },
		},
		{
			name:    "unknown property type",
			change:  FilterChange{Field: FilterFieldPropertyType, Value: "Castle"},
			wantErr: true,
		},
		{
			name:   "bedrooms",
			change: FilterChange{Field: FilterFieldBedrooms, Value: "3+"},
			check:  func(t *testing.T, f FilterCriteria) { assert.Equal(t, "3+", f.Bedrooms) },
		},
		{
			name:   "sort",
			change: FilterChange{Field: FilterFieldSortBy, Value: SortPriceAsc},
			check:  func(t *testing.T, f FilterCriteria) { assert.Equal(t, SortPriceAsc, f.SortBy) },
		},
		{
			name:    "unknown sort",
			change:  FilterChange{Field: FilterFieldSortBy, Value: "random"},
			wantErr: true,
		},
		{
			name:   "single feature is wrapped",
			change: FilterChange{Field: FilterFieldOtherFeatures, Value: "Pool"},
			check:  func(t *testing.T, f FilterCriteria) { assert.Equal(t, []string{"Pool"}, f.OtherFeatures) },
		},
		{
			name:   "feature list",
			change: FilterChange{Field: FilterFieldOtherFeatures, Values: []string{"Pool", "Garage"}},
			check: func(t *testing.T, f FilterCriteria) {
				assert.Equal(t, []string{"Pool", "Garage"}, f.OtherFeatures)
			},
		},
		{
			name:    "unknown feature",
			change:  FilterChange{Field: FilterFieldOtherFeatures, Values: []string{"Pool", "Helipad"}},
			wantErr: true,
		},
		{
			name:    "unknown single feature value",
			change:  FilterChange{Field: FilterFieldOtherFeatures, Value: "Helipad"},
			wantErr: true,
		},
		{
			name:   "min price above max clamps",
			change: FilterChange{Field: FilterFieldMinPrice, IntValue: intPtr(DefaultMaxPrice + 1)},
			check:  func(t *testing.T, f FilterCriteria) { assert.Equal(t, DefaultMaxPrice, f.MinPrice) },
		},
		{
			name:    "min price without value",
			change:  FilterChange{Field: FilterFieldMinPrice},
			wantErr: true,
		},
		{
			name:    "unknown field",
			change:  FilterChange{Field: "color", Value: "red"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := base.Apply(tt.change)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidFilter))
				assert.Equal(t, base, got)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestApply_DoesNotShareFeatureSlice(t *testing.T) {
	base := DefaultFilterCriteria()
	features := []string{"Pool"}

	next, err := base.Apply(FilterChange{Field: FilterFieldOtherFeatures, Values: features})
	require.NoError(t, err)

	features[0] = "Garage"
	assert.Equal(t, []string{"Pool"}, next.OtherFeatures)
}

func TestIdentity_IsAuthenticated(t *testing.T) {
	assert.False(t, AnonymousIdentity().IsAuthenticated())
	assert.False(t, Identity{}.IsAuthenticated())
	assert.True(t, Identity{ID: "005abc"}.IsAuthenticated())
}

func TestCarousel_Wraps(t *testing.T) {
	c := NewCarousel([]ImageRef{"a", "b", "c"})

	assert.Equal(t, ImageRef("a"), c.Current())
	assert.Equal(t, 1, c.DisplayIndex())

	c = c.Previous()
	assert.Equal(t, 2, c.Index)

	c = c.Next()
	assert.Equal(t, 0, c.Index)

	c = c.Next().Next().Next()
	assert.Equal(t, 0, c.Index)
}

func TestCarousel_EmptyUsesFallback(t *testing.T) {
	c := NewCarousel(nil)

	require.Len(t, c.Images, 1)
	assert.Equal(t, ImageRef(DefaultPropertyImage), c.Current())
	assert.Equal(t, 0, c.Next().Index)
}

func TestCarousel_WithFallback(t *testing.T) {
	c := NewCarousel([]ImageRef{"a", "b"}).Next().WithFallback()

	assert.Equal(t, []ImageRef{DefaultPropertyImage}, c.Images)
	assert.Equal(t, 0, c.Index)
}

func TestNewToast_Defaults(t *testing.T) {
	toast := NewToast("hello", "")

	assert.Equal(t, ToastSuccess, toast.Variant)
	assert.False(t, toast.AutoClose)
	assert.NotEmpty(t, toast.ID)

	closing := toast.WithAutoClose()
	assert.True(t, closing.AutoClose)
	assert.Equal(t, ToastAutoCloseDelay, closing.DismissAfter)
	assert.True(t, SuccessToast("ok").AutoClose)
	assert.Equal(t, ToastInfo, InfoToast("note").Variant)
}

func TestUserMessage(t *testing.T) {
	remote := &RemoteError{Operation: "toggle", StatusCode: 500, Message: "Record locked"}

	assert.Equal(t, "Record locked", UserMessage(remote, "fallback"))
	assert.Equal(t, "fallback", UserMessage(errors.New("boom"), "fallback"))
	assert.Equal(t, "fallback", UserMessage(&RemoteError{StatusCode: 502}, "fallback"))
}
