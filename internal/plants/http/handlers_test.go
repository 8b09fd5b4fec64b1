package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantkeeper/plantkeeper-backend/internal/auth"
	"github.com/plantkeeper/plantkeeper-backend/internal/plants/domain"
)

type fakeService struct {
	plants  []domain.Plant
	created *domain.Plant
	listErr error
}

func (f *fakeService) List(context.Context) ([]domain.Plant, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.plants, nil
}

func (f *fakeService) ListByOwner(_ context.Context, email string) ([]domain.Plant, error) {
	out := []domain.Plant{}
	for _, p := range f.plants {
		if p.OwnerEmail == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeService) Get(_ context.Context, id string) (*domain.Plant, error) {
	for i := range f.plants {
		if f.plants[i].ID == id {
			return &f.plants[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeService) Create(_ context.Context, p domain.Plant, ownerEmail, ownerName string) (string, error) {
	p.OwnerEmail = ownerEmail
	p.OwnerName = ownerName
	if err := p.Validate(); err != nil {
		return "", err
	}
	f.created = &p
	return "new-id", nil
}

func (f *fakeService) Update(_ context.Context, id string, p domain.Plant, callerEmail string) (int64, error) {
	existing, err := f.Get(context.Background(), id)
	if err != nil {
		return 0, err
	}
	if existing.OwnerEmail != callerEmail {
		return 0, domain.ErrForbidden
	}
	if err := p.Validate(); err != nil {
		return 0, err
	}
	return 1, nil
}

func (f *fakeService) Delete(_ context.Context, id string, callerEmail string) (int64, error) {
	existing, err := f.Get(context.Background(), id)
	if err != nil {
		return 0, err
	}
	if existing.OwnerEmail != callerEmail {
		return 0, domain.ErrForbidden
	}
	return 1, nil
}

func testUser(email, name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(auth.CtxUID, "uid-1")
		c.Set(auth.CtxEmail, email)
		c.Set(auth.CtxName, name)
		c.Next()
	}
}

func testRouter(svc PlantService, email string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(svc).Register(r, testUser(email, "Ada"))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func catalog(n int) []domain.Plant {
	out := make([]domain.Plant, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Plant{
			ID:       fmt.Sprintf("p-%02d", i),
			Name:     fmt.Sprintf("plant-%02d", i),
			Category: domain.CategoryFern,
		})
	}
	return out
}

func TestList_ReturnsRawArray(t *testing.T) {
	svc := &fakeService{plants: catalog(3)}
	w := doJSON(t, testRouter(svc, "a@x.com"), http.MethodGet, "/plants", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var got []domain.Plant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 3)
}

func TestView_WindowsAndClampsPage(t *testing.T) {
	svc := &fakeService{plants: catalog(23)}
	r := testRouter(svc, "a@x.com")

	w := doJSON(t, r, http.MethodGet, "/plants/view?page=5", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got viewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 23, got.TotalMatched)
	assert.Equal(t, 3, got.TotalPages)
	assert.Equal(t, 3, got.EffectivePage)
	assert.Len(t, got.Items, 3)
}

func TestView_SearchFiltersResults(t *testing.T) {
	svc := &fakeService{plants: []domain.Plant{
		{ID: "p-1", Name: "Snake Plant", Category: "succulent"},
		{ID: "p-2", Name: "Boston Fern", Category: "fern"},
	}}
	w := doJSON(t, testRouter(svc, "a@x.com"), http.MethodGet, "/plants/view?q=snake", nil)

	var got viewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Snake Plant", got.Items[0].Name)
}

func TestGet_NotFound(t *testing.T) {
	svc := &fakeService{}
	w := doJSON(t, testRouter(svc, "a@x.com"), http.MethodGet, "/plants/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreate_ReturnsInsertedID(t *testing.T) {
	svc := &fakeService{}
	w := doJSON(t, testRouter(svc, "a@x.com"), http.MethodPost, "/plants", plantPayload{
		Name:              "Snake Plant",
		Category:          domain.CategorySucculent,
		CareLevel:         domain.CareLevelEasy,
		WateringFrequency: "every 2 weeks",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"insertedId":"new-id"}`, w.Body.String())
	require.NotNil(t, svc.created)
	assert.Equal(t, "a@x.com", svc.created.OwnerEmail)
}

func TestCreate_DateOrderValidationRejectedBeforeStorage(t *testing.T) {
	svc := &fakeService{}
	w := doJSON(t, testRouter(svc, "a@x.com"), http.MethodPost, "/plants", plantPayload{
		Name:              "Snake Plant",
		Category:          domain.CategorySucculent,
		CareLevel:         domain.CareLevelEasy,
		WateringFrequency: "every 2 weeks",
		LastWatered:       "2024-01-10",
		NextWatering:      "2024-01-05",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.created, "invalid plant must not be submitted")
}

func TestUpdate_ReturnsModifiedCount(t *testing.T) {
	svc := &fakeService{plants: []domain.Plant{{ID: "p-1", OwnerEmail: "a@x.com"}}}
	w := doJSON(t, testRouter(svc, "a@x.com"), http.MethodPut, "/plants/p-1", plantPayload{
		Name:              "Snake Plant",
		Category:          domain.CategorySucculent,
		CareLevel:         domain.CareLevelModerate,
		WateringFrequency: "weekly",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"modifiedCount":1}`, w.Body.String())
}

func TestUpdate_ForeignPlantIsForbidden(t *testing.T) {
	svc := &fakeService{plants: []domain.Plant{{ID: "p-1", OwnerEmail: "b@x.com"}}}
	w := doJSON(t, testRouter(svc, "a@x.com"), http.MethodPut, "/plants/p-1", plantPayload{
		Name:              "Snake Plant",
		Category:          domain.CategorySucculent,
		CareLevel:         domain.CareLevelEasy,
		WateringFrequency: "weekly",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDelete_ReturnsDeletedCount(t *testing.T) {
	svc := &fakeService{plants: []domain.Plant{{ID: "p-1", OwnerEmail: "a@x.com"}}}
	w := doJSON(t, testRouter(svc, "a@x.com"), http.MethodDelete, "/plants/p-1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deletedCount":1}`, w.Body.String())
}

func TestMyPlants_ScopedToCaller(t *testing.T) {
	svc := &fakeService{plants: []domain.Plant{
		{ID: "p-1", Name: "one", Category: "fern", OwnerEmail: "a@x.com"},
		{ID: "p-2", Name: "two", Category: "fern", OwnerEmail: "b@x.com"},
		{ID: "p-3", Name: "three", Category: "fern", OwnerEmail: "a@x.com"},
	}}
	w := doJSON(t, testRouter(svc, "a@x.com"), http.MethodGet, "/my-plants", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var got []domain.Plant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestMyPlantsView_HealthStatusIsSearchable(t *testing.T) {
	svc := &fakeService{plants: []domain.Plant{
		{ID: "p-1", Name: "one", Category: "fern", HealthStatus: "thriving", OwnerEmail: "a@x.com"},
		{ID: "p-2", Name: "two", Category: "fern", HealthStatus: "droopy", OwnerEmail: "a@x.com"},
	}}
	w := doJSON(t, testRouter(svc, "a@x.com"), http.MethodGet, "/my-plants/view?q=droopy", nil)

	var got viewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "two", got.Items[0].Name)
}
