package usecase

import (
	"context"
	"fmt"
	"sync"

	"rentwise-portal-service/internal/contextkeys"
	"rentwise-portal-service/internal/core/domain"
	"rentwise-portal-service/internal/core/port"
)

func userCtx(userID string) context.Context {
	return contextkeys.ContextWithIdentity(context.Background(), domain.Identity{ID: userID, Name: "Jane Doe", Email: "jane@example.com"})
}

func guestCtx() context.Context {
	return contextkeys.ContextWithIdentity(context.Background(), domain.AnonymousIdentity())
}

func ptr[T any](v T) *T { return &v }

// fakeCatalog - каталог в памяти.
type fakeCatalog struct {
	mu sync.Mutex

	filtered    func(criteria domain.FilterCriteria) ([]domain.PropertyListing, error)
	featured    []domain.PropertyListing
	featuredErr error
	search      []domain.PropertyListing
	searchErr   error
	byID        map[string]domain.PropertyListing
	images      map[string][]domain.ImageRef
	imagesErr   map[string]error

	filteredCalls []domain.FilterCriteria
	searchCalls   int
}

func (f *fakeCatalog) GetFilteredProperties(ctx context.Context, criteria domain.FilterCriteria) ([]domain.PropertyListing, error) {
	f.mu.Lock()
	f.filteredCalls = append(f.filteredCalls, criteria)
	fn := f.filtered
	f.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(criteria)
}

func (f *fakeCatalog) GetFeaturedListings(ctx context.Context) ([]domain.PropertyListing, error) {
	return f.featured, f.featuredErr
}

func (f *fakeCatalog) SearchProperties(ctx context.Context, addressQuery string) ([]domain.PropertyListing, error) {
	f.mu.Lock()
	f.searchCalls++
	f.mu.Unlock()
	return f.search, f.searchErr
}

func (f *fakeCatalog) GetPropertyByID(ctx context.Context, propertyID string) (domain.PropertyListing, error) {
	listing, ok := f.byID[propertyID]
	if !ok {
		return domain.PropertyListing{}, domain.ErrPropertyNotFound
	}
	return listing, nil
}

func (f *fakeCatalog) GetPropertyImages(ctx context.Context, propertyID string) ([]domain.ImageRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := f.imagesErr[propertyID]; ok {
		return nil, err
	}
	return f.images[propertyID], nil
}

func (f *fakeCatalog) filteredCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.filteredCalls)
}

// fakeSessionStore - хранилище сессий в памяти.
type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*port.ListingSession
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*port.ListingSession)}
}

func (s *fakeSessionStore) Save(session *port.ListingSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
}

func (s *fakeSessionStore) Get(sessionID string) (*port.ListingSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	return session, ok
}

func (s *fakeSessionStore) Delete(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	return ok
}

// fakeFavorites - избранное платформы в памяти.
type fakeFavorites struct {
	mu        sync.Mutex
	state     map[string]bool
	toggleErr error
	saved     []domain.PropertyListing

	// beforeToggle меняет состояние платформы перед переключением, как параллельный запрос.
	beforeToggle func(state map[string]bool)

	toggleCalls int
	isFavCalls  int
}

func newFakeFavorites() *fakeFavorites {
	return &fakeFavorites{state: make(map[string]bool)}
}

func (f *fakeFavorites) IsPropertyFavorite(ctx context.Context, propertyID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.isFavCalls++
	return f.state[propertyID], nil
}

func (f *fakeFavorites) ToggleFavoriteProperty(ctx context.Context, propertyID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toggleCalls++
	if f.beforeToggle != nil {
		f.beforeToggle(f.state)
		f.beforeToggle = nil
	}
	if f.toggleErr != nil {
		return false, f.toggleErr
	}
	f.state[propertyID] = !f.state[propertyID]
	return f.state[propertyID], nil
}

func (f *fakeFavorites) GetSavedProperties(ctx context.Context) ([]domain.PropertyListing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saved, nil
}

// fakeStatusSource - кеш статуса поверх fakeFavorites.
type fakeStatusSource struct {
	mu        sync.Mutex
	favorites port.FavoritesServicePort
	values    map[string]bool
}

func newFakeStatusSource(favorites port.FavoritesServicePort) *fakeStatusSource {
	return &fakeStatusSource{favorites: favorites, values: make(map[string]bool)}
}

func (s *fakeStatusSource) key(userID, propertyID string) string {
	return userID + ":" + propertyID
}

func (s *fakeStatusSource) Get(ctx context.Context, userID, propertyID string) (bool, error) {
	s.mu.Lock()
	v, ok := s.values[s.key(userID, propertyID)]
	s.mu.Unlock()
	if ok {
		return v, nil
	}
	return s.Refresh(ctx, userID, propertyID)
}

func (s *fakeStatusSource) Set(userID, propertyID string, isFavorite bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[s.key(userID, propertyID)] = isFavorite
}

func (s *fakeStatusSource) Refresh(ctx context.Context, userID, propertyID string) (bool, error) {
	v, err := s.favorites.IsPropertyFavorite(ctx, propertyID)
	if err != nil {
		return false, err
	}
	s.Set(userID, propertyID, v)
	return v, nil
}

func (s *fakeStatusSource) cached(userID, propertyID string) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[s.key(userID, propertyID)]
	return v, ok
}

type fakePublisher struct {
	mu      sync.Mutex
	changes []domain.FavoriteChange
	err     error
}

func (p *fakePublisher) PublishFavoriteChange(ctx context.Context, change domain.FavoriteChange) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.changes = append(p.changes, change)
	return nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []port.PortalEvent
}

func (n *fakeNotifier) Notify(ctx context.Context, event port.PortalEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

type fakeMaps struct {
	markers []domain.MapMarker
	err     error
	calls   int
}

func (m *fakeMaps) GetMapMarkers(ctx context.Context, address, label string) ([]domain.MapMarker, error) {
	m.calls++
	return m.markers, m.err
}

type fakeCarouselStore struct {
	mu    sync.Mutex
	items map[string]domain.Carousel
}

func newFakeCarouselStore() *fakeCarouselStore {
	return &fakeCarouselStore{items: make(map[string]domain.Carousel)}
}

func (s *fakeCarouselStore) Get(sessionID, propertyID string) (domain.Carousel, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.items[sessionID+":"+propertyID]
	return c, ok
}

func (s *fakeCarouselStore) Save(sessionID, propertyID string, carousel domain.Carousel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[sessionID+":"+propertyID] = carousel
}

type fakeContacts struct {
	sent  bool
	err   error
	forms []domain.ContactForm
}

func (c *fakeContacts) SubmitContactRequest(ctx context.Context, form domain.ContactForm) (bool, error) {
	c.forms = append(c.forms, form)
	return c.sent, c.err
}

type fakeIdentities struct {
	identity domain.Identity
	err      error
}

func (i *fakeIdentities) GetCurrentUserIdentity(ctx context.Context) (domain.Identity, error) {
	return i.identity, i.err
}

func listings(n int) []domain.PropertyListing {
	result := make([]domain.PropertyListing, n)
	for i := range result {
		result[i] = domain.PropertyListing{
			ID:    fmt.Sprintf("p%02d", i),
			Name:  fmt.Sprintf("Property %d", i),
			Price: ptr(float64(1000 * (i + 1))),
		}
	}
	return result
}
