package cache

import (
	"time"

	"rentwise-portal-service/internal/core/domain"
	"rentwise-portal-service/internal/core/port"

	"github.com/karlseguin/ccache/v3"
)

const (
	sessionMaxSize    = 5000
	defaultSessionTTL = 30 * time.Minute
)

// ListingSessionStore хранит сессии страницы со списком. Каждое обращение
// продлевает жизнь сессии на ttl, брошенные вкладки вытесняются сами.
type ListingSessionStore struct {
	cache *ccache.Cache[*port.ListingSession]
	ttl   time.Duration
}

func NewListingSessionStore(ttl time.Duration) *ListingSessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &ListingSessionStore{
		cache: ccache.New(ccache.Configure[*port.ListingSession]().MaxSize(sessionMaxSize)),
		ttl:   ttl,
	}
}

func (s *ListingSessionStore) Save(session *port.ListingSession) {
	s.cache.Set(session.ID, session, s.ttl)
}

func (s *ListingSessionStore) Get(sessionID string) (*port.ListingSession, bool) {
	item := s.cache.Get(sessionID)
	if item == nil || item.Expired() {
		return nil, false
	}
	item.Extend(s.ttl)
	return item.Value(), true
}

func (s *ListingSessionStore) Delete(sessionID string) bool {
	return s.cache.Delete(sessionID)
}

func (s *ListingSessionStore) Stop() {
	s.cache.Stop()
}

// CarouselStore - положение галереи по паре (вкладка, объект).
type CarouselStore struct {
	cache *ccache.Cache[domain.Carousel]
	ttl   time.Duration
}

func NewCarouselStore(ttl time.Duration) *CarouselStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &CarouselStore{
		cache: ccache.New(ccache.Configure[domain.Carousel]().MaxSize(sessionMaxSize)),
		ttl:   ttl,
	}
}

func carouselKey(sessionID, propertyID string) string {
	return sessionID + ":" + propertyID
}

func (s *CarouselStore) Get(sessionID, propertyID string) (domain.Carousel, bool) {
	item := s.cache.Get(carouselKey(sessionID, propertyID))
	if item == nil || item.Expired() {
		return domain.Carousel{}, false
	}
	return item.Value(), true
}

func (s *CarouselStore) Save(sessionID, propertyID string, carousel domain.Carousel) {
	s.cache.Set(carouselKey(sessionID, propertyID), carousel, s.ttl)
}

func (s *CarouselStore) Stop() {
	s.cache.Stop()
}
