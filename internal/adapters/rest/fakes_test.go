package rest

import (
	"context"
	"errors"
	"sync"

	"rentwise-portal-service/internal/contextkeys"
	"rentwise-portal-service/internal/core/domain"
	"rentwise-portal-service/internal/core/port"
)

type nopLogger struct{}

func (nopLogger) Info(string, port.Fields)         {}
func (nopLogger) Warn(string, port.Fields)         {}
func (nopLogger) Error(string, error, port.Fields) {}
func (nopLogger) Debug(string, port.Fields)        {}
func (l nopLogger) WithFields(port.Fields) port.LoggerPort {
	return l
}

// fakeTokens принимает токены вида "user:<id>".
type fakeTokens struct{}

func (fakeTokens) Parse(_ context.Context, token string) (domain.Identity, error) {
	if len(token) > 5 && token[:5] == "user:" {
		return domain.Identity{ID: token[5:], Name: "Jane Doe", Token: token}, nil
	}
	return domain.Identity{}, errors.New("token is invalid")
}

type fakeListingSessions struct {
	openView   domain.ListingView
	openErr    error
	updateView domain.ListingView
	updateErr  error
	lastChange domain.FilterChange
	lastPage   int
	closed     []string
}

func (f *fakeListingSessions) Open(context.Context) (domain.ListingView, error) {
	return f.openView, f.openErr
}

func (f *fakeListingSessions) Get(_ context.Context, sessionID string) (domain.ListingView, error) {
	if sessionID != f.openView.SessionID {
		return domain.ListingView{}, domain.ErrSessionNotFound
	}
	return f.openView, nil
}

func (f *fakeListingSessions) UpdateFilter(_ context.Context, _ string, change domain.FilterChange) (domain.ListingView, error) {
	f.lastChange = change
	return f.updateView, f.updateErr
}

func (f *fakeListingSessions) ChangePage(_ context.Context, sessionID string, page int) (domain.ListingView, error) {
	f.lastPage = page
	return f.Get(context.Background(), sessionID)
}

func (f *fakeListingSessions) Close(_ context.Context, sessionID string) error {
	if sessionID != f.openView.SessionID {
		return domain.ErrSessionNotFound
	}
	f.closed = append(f.closed, sessionID)
	return nil
}

type fakeFeatured struct {
	view domain.FeaturedView
	err  error
}

func (f *fakeFeatured) Execute(context.Context) (domain.FeaturedView, error) { return f.view, f.err }

type fakeSearch struct{ view domain.SearchView }

func (f *fakeSearch) Execute(_ context.Context, address string) (domain.SearchView, error) {
	v := f.view
	v.Query = address
	return v, nil
}

type fakeDetail struct {
	view      domain.PropertyDetailView
	err       error
	sessionID string
}

func (f *fakeDetail) Execute(_ context.Context, sessionID, _ string) (domain.PropertyDetailView, error) {
	f.sessionID = sessionID
	return f.view, f.err
}

type fakeCarousel struct{ carousel domain.Carousel }

func (f *fakeCarousel) Navigate(_ context.Context, sessionID, _ string, direction domain.CarouselDirection) (domain.Carousel, error) {
	if sessionID == "" {
		return domain.Carousel{}, &domain.ValidationError{Field: "X-Session-ID", Message: "session id is required"}
	}
	if direction != domain.CarouselNext && direction != domain.CarouselPrevious {
		return domain.Carousel{}, &domain.ValidationError{Field: "direction", Message: "unknown direction"}
	}
	f.carousel = f.carousel.Next()
	return f.carousel, nil
}

func (f *fakeCarousel) ReportImageError(context.Context, string, string) (domain.Carousel, error) {
	return f.carousel.WithFallback(), nil
}

type fakeImages struct{}

func (fakeImages) Execute(context.Context, string) ([]domain.ImageRef, error) {
	return []domain.ImageRef{domain.PlaceholderImage}, nil
}

type fakeToggle struct {
	mu     sync.Mutex
	calls  int
	origin domain.FavoriteOrigin
}

func (f *fakeToggle) Execute(ctx context.Context, propertyID string, origin domain.FavoriteOrigin) (domain.FavoriteToggleResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.origin = origin
	if !contextkeys.IdentityFromContext(ctx).IsAuthenticated() {
		return domain.FavoriteToggleResult{PropertyID: propertyID, Toast: domain.InfoToast(origin.LoginPrompt())}, domain.ErrLoginRequired
	}
	f.calls++
	return domain.FavoriteToggleResult{PropertyID: propertyID, IsFavorite: true, Toast: domain.SuccessToast(domain.MsgAddedToFavorites)}, nil
}

type fakeStatus struct{}

func (fakeStatus) Execute(ctx context.Context, _ string) (bool, error) {
	return contextkeys.IdentityFromContext(ctx).IsAuthenticated(), nil
}

type fakeContact struct {
	mu    sync.Mutex
	forms []domain.ContactForm
}

func (f *fakeContact) Execute(_ context.Context, propertyID string, form domain.ContactForm) (domain.Toast, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if form.LastName == "" {
		return domain.ErrorToast(domain.MsgLastNameRequired), &domain.ValidationError{Field: "LastName", Message: domain.MsgLastNameRequired}
	}
	form.PropertyID = propertyID
	f.forms = append(f.forms, form)
	return domain.SuccessToast(domain.MsgContactSent), nil
}

type fakeAccount struct{ view domain.AccountView }

func (f *fakeAccount) Execute(ctx context.Context) (domain.AccountView, error) {
	if !contextkeys.IdentityFromContext(ctx).IsAuthenticated() {
		return domain.AccountView{}, domain.ErrLoginRequired
	}
	return f.view, nil
}

type fakeUnsave struct{}

func (fakeUnsave) Execute(ctx context.Context, _ string) (domain.AccountView, domain.Toast, error) {
	return domain.AccountView{UserName: "Jane Doe"}, domain.SuccessToast(domain.MsgRemovedFromFavorites), nil
}

type fakeSubscriber struct {
	mu      sync.Mutex
	clients map[string]chan []byte
	removed chan string
}

func newFakeSubscriber() *fakeSubscriber {
	return &fakeSubscriber{clients: map[string]chan []byte{}, removed: make(chan string, 1)}
}

func (f *fakeSubscriber) AddClient(userID string) chan []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan []byte, 4)
	f.clients[userID] = ch
	return ch
}

func (f *fakeSubscriber) RemoveClient(userID string, _ chan []byte) {
	f.mu.Lock()
	delete(f.clients, userID)
	f.mu.Unlock()
	f.removed <- userID
}

func (f *fakeSubscriber) client(userID string) (chan []byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.clients[userID]
	return ch, ok
}
