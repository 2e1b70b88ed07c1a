package rest

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"rentwise-portal-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router     http.Handler
	listing    *fakeListingSessions
	featured   *fakeFeatured
	detail     *fakeDetail
	toggle     *fakeToggle
	contact    *fakeContact
	subscriber *fakeSubscriber
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		listing: &fakeListingSessions{
			openView: domain.ListingView{
				SessionID:   "sess-1",
				Filters:     domain.DefaultFilterCriteria(),
				CurrentPage: 1,
				TotalPages:  1,
				Buttons:     []domain.PageButton{{Label: "1", Value: 1, Active: true, IsNumber: true}},
			},
		},
		featured:   &fakeFeatured{},
		detail:     &fakeDetail{},
		toggle:     &fakeToggle{},
		contact:    &fakeContact{},
		subscriber: newFakeSubscriber(),
	}
	handlers := Handlers{
		Home:     NewHomeHandler(env.featured, &fakeSearch{}),
		Listing:  NewListingHandler(env.listing),
		Property: NewPropertyHandler(env.detail, &fakeCarousel{carousel: domain.NewCarousel([]domain.ImageRef{"/a.jpg", "/b.jpg"})}, fakeImages{}, env.toggle, fakeStatus{}, env.contact),
		Account:  NewAccountHandler(&fakeAccount{view: domain.AccountView{UserName: "Jane Doe", UserEmail: "jane@example.com"}}, fakeUnsave{}),
		Events:   NewEventsHandler(env.subscriber),
	}
	contactLimiter := NewPerMinuteLimiter(2)
	t.Cleanup(contactLimiter.Stop)
	env.router = NewRouter(ServerOptions{AllowedOrigins: []string{"http://localhost:5173"}}, handlers, fakeTokens{}, contactLimiter, nopLogger{})
	return env
}

func (e *testEnv) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

var asUser = map[string]string{"Authorization": "Bearer user:0055f00000AbCdE"}

func TestListingRoutes(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/v1/listings/sessions", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/v1/listings/sessions/sess-1", rec.Header().Get("Location"))
	body := decode(t, rec)
	assert.Equal(t, "sess-1", body["sessionId"])
	assert.Equal(t, "date_desc", body["filters"].(map[string]interface{})["sortBy"])

	rec = env.do(http.MethodGet, "/api/v1/listings/sessions/sess-1", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, "/api/v1/listings/sessions/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodPut, "/api/v1/listings/sessions/sess-1/page", `{"page":2}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, env.listing.lastPage)

	rec = env.do(http.MethodDelete, "/api/v1/listings/sessions/sess-1", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"sess-1"}, env.listing.closed)
}

func TestListingRoutes_FilterErrors(t *testing.T) {
	env := newTestEnv(t)

	t.Run("invalid body", func(t *testing.T) {
		rec := env.do(http.MethodPatch, "/api/v1/listings/sessions/sess-1/filters", "{", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid filter keeps view", func(t *testing.T) {
		toast := domain.ErrorToast("invalid filter: unknown sort order")
		view := env.listing.openView
		view.Toast = &toast
		env.listing.updateView = view
		env.listing.updateErr = fmt.Errorf("%w: unknown sort order", domain.ErrInvalidFilter)

		rec := env.do(http.MethodPatch, "/api/v1/listings/sessions/sess-1/filters", `{"field":"sortBy","value":"random"}`, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, domain.FilterChange{Field: "sortBy", Value: "random"}, env.listing.lastChange)
		body := decode(t, rec)
		assert.Equal(t, "error", body["toast"].(map[string]interface{})["variant"])
		assert.Equal(t, "sess-1", body["view"].(map[string]interface{})["sessionId"])
	})

	t.Run("platform failure is bad gateway", func(t *testing.T) {
		env.listing.updateErr = &domain.RemoteError{Operation: "GetFilteredProperties", StatusCode: 500, Message: "Query timeout"}

		rec := env.do(http.MethodPatch, "/api/v1/listings/sessions/sess-1/filters", `{"field":"minPrice","intValue":1000}`, nil)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		require.NotNil(t, env.listing.lastChange.IntValue)
		assert.Equal(t, 1000, *env.listing.lastChange.IntValue)
	})
}

func TestFilterOptions(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/v1/listings/options", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp FilterOptionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.SortOptions, resp.SortOptions)
	assert.Equal(t, domain.DefaultMaxPrice, resp.Defaults.MaxPrice)
	assert.Equal(t, domain.PriceStep, resp.PriceStep)
}

func TestFeatured_FailureReturnsToast(t *testing.T) {
	env := newTestEnv(t)
	toast := domain.ErrorToast(domain.MsgErrorFeatured)
	env.featured.view = domain.FeaturedView{Toast: &toast}
	env.featured.err = errors.New("connection reset")

	rec := env.do(http.MethodGet, "/api/v1/home/featured", "", nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, domain.MsgErrorFeatured, body["toast"].(map[string]interface{})["message"])
}

func TestPropertyDetail_SessionHeaderAndNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.detail.view = domain.PropertyDetailView{
		Property: domain.ListingCard{Listing: domain.PropertyListing{ID: "a0B1"}, FormattedPrice: "$425,000"},
		Carousel: domain.NewCarousel(nil),
	}

	rec := env.do(http.MethodGet, "/api/v1/properties/a0B1", "", map[string]string{headerSessionID: "tab-1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tab-1", env.detail.sessionID)
	body := decode(t, rec)
	assert.Equal(t, domain.DefaultPropertyImage, body["carousel"].(map[string]interface{})["currentImage"])

	env.detail.err = fmt.Errorf("%w: a0B9", domain.ErrPropertyNotFound)
	rec = env.do(http.MethodGet, "/api/v1/properties/a0B9", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCarouselRoutes(t *testing.T) {
	env := newTestEnv(t)
	session := map[string]string{headerSessionID: "tab-1"}

	rec := env.do(http.MethodPost, "/api/v1/properties/a0B1/carousel/next", "", session)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decode(t, rec)["displayIndex"])

	rec = env.do(http.MethodPost, "/api/v1/properties/a0B1/carousel/sideways", "", session)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/properties/a0B1/carousel/next", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/properties/a0B1/images/error", "", session)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.DefaultPropertyImage, decode(t, rec)["currentImage"])
}

func TestToggleFavorite(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/v1/properties/a0B1/favorite/toggle?origin=card", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decode(t, rec)
	toast := body["toast"].(map[string]interface{})
	assert.Equal(t, domain.MsgLoginToSaveFavorites, toast["message"])
	assert.Equal(t, "info", toast["variant"])
	assert.Zero(t, env.toggle.calls)

	rec = env.do(http.MethodPost, "/api/v1/properties/a0B1/favorite/toggle", "", asUser)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.FavoriteOriginDetail, env.toggle.origin)
	body = decode(t, rec)
	assert.Equal(t, true, body["isFavorite"])
	assert.Equal(t, true, body["toast"].(map[string]interface{})["autoClose"])
}

func TestIdentity_BadTokenIsGuest(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/v1/me", "", map[string]string{"Authorization": "Bearer forged"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["isLoggedIn"])

	rec = env.do(http.MethodGet, "/api/v1/me", "", asUser)
	body := decode(t, rec)
	assert.Equal(t, true, body["isLoggedIn"])
	assert.Equal(t, "0055f00000AbCdE", body["userId"])

	rec = env.do(http.MethodGet, "/api/v1/properties/a0B1/favorite?token=user:0055f00000AbCdE", "", nil)
	assert.Equal(t, true, decode(t, rec)["isFavorite"])
}

func TestAccountRoutes(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/v1/account", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodGet, "/api/v1/account", "", asUser)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jane@example.com", decode(t, rec)["userEmail"])

	rec = env.do(http.MethodDelete, "/api/v1/account/favorites/a0B1", "", asUser)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.MsgRemovedFromFavorites, decode(t, rec)["toast"].(map[string]interface{})["message"])
}

func TestContact_ValidationAndRateLimit(t *testing.T) {
	env := newTestEnv(t)
	ip := map[string]string{"X-Real-IP": "203.0.113.7"}

	rec := env.do(http.MethodPost, "/api/v1/properties/a0B1/contact", `{"firstName":"Jane"}`, ip)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, domain.MsgLastNameRequired, decode(t, rec)["toast"].(map[string]interface{})["message"])

	rec = env.do(http.MethodPost, "/api/v1/properties/a0B1/contact", `{"lastName":"Doe"}`, ip)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, env.contact.forms, 1)
	assert.Equal(t, "a0B1", env.contact.forms[0].PropertyID)

	rec = env.do(http.MethodPost, "/api/v1/properties/a0B1/contact", `{"lastName":"Doe"}`, ip)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// Другой клиент не затронут.
	rec = env.do(http.MethodPost, "/api/v1/properties/a0B1/contact", `{"lastName":"Doe"}`, map[string]string{"X-Real-IP": "198.51.100.1"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTraceIDHeader(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/v1/me", "", map[string]string{headerTraceID: "4f6c1a3e-2d3b-4c55-9b1a-0c8e5e2f7d10"})
	assert.Equal(t, "4f6c1a3e-2d3b-4c55-9b1a-0c8e5e2f7d10", rec.Header().Get(headerTraceID))

	rec = env.do(http.MethodGet, "/api/v1/me", "", map[string]string{headerTraceID: "not-a-uuid"})
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(headerTraceID))
	assert.NotEmpty(t, rec.Header().Get(headerTraceID))
}

func TestSubscribe(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/v1/events/subscribe", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	srv := httptest.NewServer(env.router)
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/events/subscribe?token=user:0055f00000AbCdE", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: connected\n", line)

	var ch chan []byte
	require.Eventually(t, func() bool {
		var ok bool
		ch, ok = env.subscriber.client("0055f00000AbCdE")
		return ok
	}, time.Second, 10*time.Millisecond)
	ch <- []byte("event: toast\ndata: {\"message\":\"hi\"}\n\n")

	for {
		line, err = reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "event: toast") {
			break
		}
	}

	resp.Body.Close()
	select {
	case userID := <-env.subscriber.removed:
		assert.Equal(t, "0055f00000AbCdE", userID)
	case <-time.After(2 * time.Second):
		t.Fatal("client was not removed after disconnect")
	}
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrLoginRequired, http.StatusUnauthorized},
		{fmt.Errorf("wrap: %w", domain.ErrSessionNotFound), http.StatusNotFound},
		{domain.ErrPropertyNotFound, http.StatusNotFound},
		{&domain.ValidationError{Field: "f", Message: "m"}, http.StatusBadRequest},
		{domain.ErrInvalidFilter, http.StatusBadRequest},
		{domain.ErrRateLimited, http.StatusTooManyRequests},
		{&domain.RemoteError{Operation: "op", StatusCode: 500}, http.StatusBadGateway},
		{errors.New("dial tcp: connection refused"), http.StatusBadGateway},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusForError(tt.err), tt.err.Error())
	}
}
