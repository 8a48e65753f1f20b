package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hivoyage/backend/internal/domain"
	"github.com/hivoyage/backend/internal/handler"
)

type mockItineraryServicer struct {
	addItem    func(ctx context.Context, tripID uuid.UUID, owner domain.Owner, day int, title, location, description string) (domain.Trip, error)
	deleteDay  func(ctx context.Context, tripID uuid.UUID, owner domain.Owner, day int) (domain.Trip, error)
	deleteItem func(ctx context.Context, tripID uuid.UUID, owner domain.Owner, day int, title, location, description string) (domain.Trip, error)
}

func (m *mockItineraryServicer) AddItem(ctx context.Context, tripID uuid.UUID, owner domain.Owner, day int, title, location, description string) (domain.Trip, error) {
	return m.addItem(ctx, tripID, owner, day, title, location, description)
}
func (m *mockItineraryServicer) DeleteDay(ctx context.Context, tripID uuid.UUID, owner domain.Owner, day int) (domain.Trip, error) {
	return m.deleteDay(ctx, tripID, owner, day)
}
func (m *mockItineraryServicer) DeleteItem(ctx context.Context, tripID uuid.UUID, owner domain.Owner, day int, title, location, description string) (domain.Trip, error) {
	return m.deleteItem(ctx, tripID, owner, day, title, location, description)
}

var _ handler.ItineraryServicer = (*mockItineraryServicer)(nil)

func TestAddItineraryItem_201(t *testing.T) {
	fixture := tripFixture()
	fixture.Itinerary = []domain.ItineraryItem{
		{Day: 1, Title: "Louvre", Location: "Paris", Description: "morning visit"},
	}

	svc := &mockItineraryServicer{
		addItem: func(_ context.Context, tripID uuid.UUID, owner domain.Owner, day int, title, location, description string) (domain.Trip, error) {
			assert.Equal(t, fixture.ID, tripID)
			assert.Equal(t, testOwner, owner)
			assert.Equal(t, 1, day)
			assert.Equal(t, "Louvre", title)
			assert.Equal(t, "Paris", location)
			assert.Equal(t, "morning visit", description)
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"day":         1,
		"title":       "Louvre",
		"location":    "Paris",
		"description": "morning visit",
	})
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, svc, nil).ServeHTTP(rec,
		authedRequest(http.MethodPost, "/trips/"+fixture.ID.String()+"/itinerary", body))

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeBody(t, rec)
	items := resp["itinerary"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Louvre", items[0].(map[string]any)["title"])
}

func TestAddItineraryItem_422_InvalidDay(t *testing.T) {
	svc := &mockItineraryServicer{
		addItem: func(_ context.Context, _ uuid.UUID, _ domain.Owner, _ int, _, _, _ string) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrValidation
		},
	}

	body := jsonBody(t, map[string]any{"day": 0, "title": "Louvre"})
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, svc, nil).ServeHTTP(rec,
		authedRequest(http.MethodPost, "/trips/"+uuid.NewString()+"/itinerary", body))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDeleteItineraryDay_200(t *testing.T) {
	fixture := tripFixture()
	fixture.Itinerary = []domain.ItineraryItem{
		{Day: 1, Title: "Louvre"},
		{Day: 2, Title: "Versailles"},
	}

	svc := &mockItineraryServicer{
		deleteDay: func(_ context.Context, tripID uuid.UUID, _ domain.Owner, day int) (domain.Trip, error) {
			assert.Equal(t, fixture.ID, tripID)
			assert.Equal(t, 2, day)
			return fixture, nil
		},
	}

	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc, nil).ServeHTTP(rec,
		authedRequest(http.MethodDelete, "/trips/"+fixture.ID.String()+"/itinerary/days/2", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteItineraryDay_400_NonNumericDay(t *testing.T) {
	svc := &mockItineraryServicer{}

	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc, nil).ServeHTTP(rec,
		authedRequest(http.MethodDelete, "/trips/"+uuid.NewString()+"/itinerary/days/two", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "bad_request", resp["error"].(map[string]any)["code"])
}

func TestDeleteItineraryDay_400_ZeroDay(t *testing.T) {
	svc := &mockItineraryServicer{}

	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc, nil).ServeHTTP(rec,
		authedRequest(http.MethodDelete, "/trips/"+uuid.NewString()+"/itinerary/days/0", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteItineraryItem_200(t *testing.T) {
	fixture := tripFixture()

	svc := &mockItineraryServicer{
		deleteItem: func(_ context.Context, tripID uuid.UUID, _ domain.Owner, day int, title, location, description string) (domain.Trip, error) {
			assert.Equal(t, fixture.ID, tripID)
			assert.Equal(t, 1, day)
			assert.Equal(t, "Louvre", title)
			assert.Equal(t, "Paris", location)
			assert.Equal(t, "morning visit", description)
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"day":         1,
		"title":       "Louvre",
		"location":    "Paris",
		"description": "morning visit",
	})
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, svc, nil).ServeHTTP(rec,
		authedRequest(http.MethodPost, "/trips/"+fixture.ID.String()+"/itinerary/delete", body))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteItineraryItem_404_NoMatch(t *testing.T) {
	svc := &mockItineraryServicer{
		deleteItem: func(_ context.Context, _ uuid.UUID, _ domain.Owner, _ int, _, _, _ string) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}

	body := jsonBody(t, map[string]any{"day": 9, "title": "nope"})
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, svc, nil).ServeHTTP(rec,
		authedRequest(http.MethodPost, "/trips/"+uuid.NewString()+"/itinerary/delete", body))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
