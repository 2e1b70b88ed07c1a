package usecase

import (
	"context"
	"errors"
	"testing"

	"rentwise-portal-service/internal/core/domain"
	"rentwise-portal-service/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFavorite_AnonymousUser(t *testing.T) {
	tests := []struct {
		name       string
		origin     domain.FavoriteOrigin
		wantPrompt string
	}{
		{name: "from card", origin: domain.FavoriteOriginCard, wantPrompt: domain.MsgLoginToSaveFavorites},
		{name: "from detail page", origin: domain.FavoriteOriginDetail, wantPrompt: domain.MsgLoginToSave},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			favorites := newFakeFavorites()
			publisher := &fakePublisher{}
			uc := NewToggleFavoriteUseCase(favorites, newFakeStatusSource(favorites), publisher)

			result, err := uc.Execute(guestCtx(), "a0B5f000001", tt.origin)

			require.ErrorIs(t, err, domain.ErrLoginRequired)
			assert.Equal(t, tt.wantPrompt, result.Toast.Message)
			assert.Equal(t, domain.ToastInfo, result.Toast.Variant)
			assert.Zero(t, favorites.toggleCalls)
			assert.Empty(t, publisher.changes)
		})
	}
}

func TestToggleFavorite_MissingIdentityTreatedAsGuest(t *testing.T) {
	favorites := newFakeFavorites()
	uc := NewToggleFavoriteUseCase(favorites, newFakeStatusSource(favorites), &fakePublisher{})

	_, err := uc.Execute(context.Background(), "a0B5f000001", domain.FavoriteOriginCard)

	require.ErrorIs(t, err, domain.ErrLoginRequired)
	assert.Zero(t, favorites.toggleCalls)
}

func TestToggleFavorite_Success(t *testing.T) {
	favorites := newFakeFavorites()
	status := newFakeStatusSource(favorites)
	publisher := &fakePublisher{}
	uc := NewToggleFavoriteUseCase(favorites, status, publisher)
	ctx := userCtx("0055f00000AbCdE")

	result, err := uc.Execute(ctx, "a0B5f000001", domain.FavoriteOriginDetail)
	require.NoError(t, err)
	assert.True(t, result.IsFavorite)
	assert.Equal(t, domain.MsgAddedToFavorites, result.Toast.Message)
	assert.True(t, result.Toast.AutoClose)

	cached, ok := status.cached("0055f00000AbCdE", "a0B5f000001")
	require.True(t, ok)
	assert.True(t, cached)

	require.Len(t, publisher.changes, 1)
	change := publisher.changes[0]
	assert.Equal(t, "0055f00000AbCdE", change.UserID)
	assert.Equal(t, "a0B5f000001", change.PropertyID)
	assert.True(t, change.IsFavorite)
	assert.NotEmpty(t, change.EventID)
	assert.False(t, change.OccurredAt.IsZero())

	result, err = uc.Execute(ctx, "a0B5f000001", domain.FavoriteOriginDetail)
	require.NoError(t, err)
	assert.False(t, result.IsFavorite)
	assert.Equal(t, domain.MsgRemovedFromFavorites, result.Toast.Message)
	assert.Len(t, publisher.changes, 2)
}

func TestToggleFavorite_PlatformFailureKeepsState(t *testing.T) {
	favorites := newFakeFavorites()
	favorites.toggleErr = &domain.RemoteError{Operation: "ToggleFavoriteProperty", StatusCode: 500, Message: "Insufficient access"}
	status := newFakeStatusSource(favorites)
	status.Set("0055f00000AbCdE", "a0B5f000001", false)
	publisher := &fakePublisher{}
	uc := NewToggleFavoriteUseCase(favorites, status, publisher)

	result, err := uc.Execute(userCtx("0055f00000AbCdE"), "a0B5f000001", domain.FavoriteOriginCard)

	require.Error(t, err)
	assert.Equal(t, "Insufficient access", result.Toast.Message)
	assert.Equal(t, domain.ToastError, result.Toast.Variant)
	assert.False(t, result.Toast.AutoClose)
	cached, _ := status.cached("0055f00000AbCdE", "a0B5f000001")
	assert.False(t, cached)
	assert.Empty(t, publisher.changes)
}

func TestToggleFavorite_PublishFailureIsNotFatal(t *testing.T) {
	favorites := newFakeFavorites()
	uc := NewToggleFavoriteUseCase(favorites, newFakeStatusSource(favorites), &fakePublisher{err: errors.New("broker down")})

	result, err := uc.Execute(userCtx("0055f00000AbCdE"), "a0B5f000001", domain.FavoriteOriginCard)

	require.NoError(t, err)
	assert.True(t, result.IsFavorite)
}

func TestGetFavoriteStatus(t *testing.T) {
	favorites := newFakeFavorites()
	favorites.state["a0B5f000001"] = true
	uc := NewGetFavoriteStatusUseCase(newFakeStatusSource(favorites))

	isFavorite, err := uc.Execute(guestCtx(), "a0B5f000001")
	require.NoError(t, err)
	assert.False(t, isFavorite)
	assert.Zero(t, favorites.isFavCalls)

	isFavorite, err = uc.Execute(userCtx("0055f00000AbCdE"), "a0B5f000001")
	require.NoError(t, err)
	assert.True(t, isFavorite)

	_, err = uc.Execute(userCtx("0055f00000AbCdE"), "a0B5f000001")
	require.NoError(t, err)
	assert.Equal(t, 1, favorites.isFavCalls)
}

func TestApplyFavoriteChange(t *testing.T) {
	favorites := newFakeFavorites()
	status := newFakeStatusSource(favorites)
	notifier := &fakeNotifier{}
	uc := NewApplyFavoriteChangeUseCase(status, notifier)

	err := uc.Execute(context.Background(), domain.FavoriteChange{
		EventID:    "evt-1",
		UserID:     "0055f00000AbCdE",
		PropertyID: "a0B5f000001",
		IsFavorite: true,
	})
	require.NoError(t, err)

	cached, ok := status.cached("0055f00000AbCdE", "a0B5f000001")
	require.True(t, ok)
	assert.True(t, cached)

	require.Len(t, notifier.events, 2)
	assert.Equal(t, port.EventFavoriteChange, notifier.events[0].Type)
	assert.Equal(t, "0055f00000AbCdE", notifier.events[0].UserID)
	assert.Equal(t, port.FavoriteChangePayload{PropertyID: "a0B5f000001", IsFavorite: true}, notifier.events[0].Data)

	assert.Equal(t, port.EventToast, notifier.events[1].Type)
	toast, ok := notifier.events[1].Data.(port.ToastPayload)
	require.True(t, ok)
	assert.Equal(t, domain.MsgSavedToFavorites, toast.Message)
}

func TestApplyFavoriteChange_RejectsIncompleteEvent(t *testing.T) {
	notifier := &fakeNotifier{}
	uc := NewApplyFavoriteChangeUseCase(newFakeStatusSource(newFakeFavorites()), notifier)

	err := uc.Execute(context.Background(), domain.FavoriteChange{EventID: "evt-2", PropertyID: "a0B5f000001"})

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Empty(t, notifier.events)
}
