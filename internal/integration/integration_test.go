package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/myplate-diets/backend/config"
	"github.com/pageza/myplate-diets/backend/internal/api"
	"github.com/pageza/myplate-diets/backend/internal/model"
	"github.com/pageza/myplate-diets/backend/internal/server"
	"github.com/pageza/myplate-diets/backend/internal/service"
	"github.com/pageza/myplate-diets/backend/internal/testhelpers"
)

const jwtSecret = "integration-secret"

type testServer struct {
	handler http.Handler
	token   string
}

func setupServer(t *testing.T) (*testServer, func() int64) {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)
	rdb := testhelpers.SetupRedis(t)

	cfg := &config.Config{
		Environment: config.Test,
		JWTSecret:   jwtSecret,
	}
	srv := server.New(cfg, db, testhelpers.Reference(), rdb)

	token, err := service.NewTokenService(jwtSecret).GenerateToken("integration")
	require.NoError(t, err)

	cacheSize := func() int64 {
		keys, err := rdb.Keys(context.Background(), "classification:*").Result()
		require.NoError(t, err)
		return int64(len(keys))
	}
	return &testServer{handler: srv.Handler(), token: token}, cacheSize
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, auth bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

var ketoNutrition = map[string]string{
	"Total Calories": "2000",
	"Total Fat":      "160 g",
	"Protein":        "100 g",
	"Carbohydrates":  "20 g",
	"Dietary Fiber":  "6 g",
	"Saturated Fat":  "4 g",
}

func TestRecipeLifecycle(t *testing.T) {
	s, _ := setupServer(t)

	recipes := []api.CreateRecipeRequest{
		{
			Title:         "Salmon Salad",
			RecipeURL:     "https://example.com/recipe/salmon-salad",
			Ingredients:   []string{"4 oz salmon", "2 cups spinach", "1 tbsp olive oil"},
			NutritionInfo: ketoNutrition,
			Courses:       []string{"Salads"},
		},
		{
			Title:       "Peanut Noodles",
			RecipeURL:   "https://example.com/recipe/peanut-noodles",
			Ingredients: []string{"8 oz pasta", "2 tbsp peanut butter"},
			Courses:     []string{"Main Dishes"},
			Cuisines:    []string{"Asian&Pacific_Islander"},
		},
	}
	ids := make([]string, 0, len(recipes))
	for _, r := range recipes {
		w := s.do(t, http.MethodPost, "/api/v1/recipes", r, true)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created struct {
			Recipe model.Recipe `json:"recipe"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		ids = append(ids, created.Recipe.ID.String())
	}

	list := func(query string) []string {
		w := s.do(t, http.MethodGet, "/api/v1/recipes"+query, nil, false)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp struct {
			Recipes []model.Recipe `json:"recipes"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		titles := make([]string, len(resp.Recipes))
		for i, r := range resp.Recipes {
			titles[i] = r.Title
		}
		return titles
	}

	assert.Equal(t, []string{"Peanut Noodles", "Salmon Salad"}, list(""))
	assert.Equal(t, []string{"Salmon Salad"}, list("?diet=keto"))
	assert.Equal(t, []string{"Salmon Salad"}, list("?diet=gluten_free"))
	assert.Equal(t, []string{"Peanut Noodles"}, list("?diet=vegan"))
	assert.Equal(t, []string{"Salmon Salad"}, list("?meets_requirements=true"))
	assert.Equal(t, []string{"Peanut Noodles"}, list("?cuisine="+url.QueryEscape("Asian&Pacific_Islander")))
	assert.Empty(t, list("?cuisine=Asian"))
	assert.Empty(t, list("?diet="+url.QueryEscape("%")))
	assert.Empty(t, list("?course=Desserts"))

	w := s.do(t, http.MethodDelete, "/api/v1/recipes/"+ids[1], nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodDelete, "/api/v1/recipes/"+ids[1], nil, true)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"Salmon Salad"}, list(""))

	w = s.do(t, http.MethodGet, "/api/v1/recipes/"+ids[1], nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/recipes/reclassify", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"updated":0}`, w.Body.String())
}

func TestClassifyIsCached(t *testing.T) {
	s, cacheSize := setupServer(t)

	body := api.ClassifyRequest{
		Ingredients:   []string{"2 Eggs", "1 cup Spinach"},
		NutritionInfo: ketoNutrition,
	}
	w := s.do(t, http.MethodPost, "/api/v1/classify", body, false)
	require.Equal(t, http.StatusOK, w.Code)

	var first api.ClassifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.Contains(t, first.Diets, "keto")
	assert.NotContains(t, first.Diets, "vegan")
	assert.Equal(t, int64(1), cacheSize())

	// case and order of the lines do not change the cache entry
	body.Ingredients = []string{"1 cup spinach", "2 eggs"}
	w = s.do(t, http.MethodPost, "/api/v1/classify", body, false)
	require.Equal(t, http.StatusOK, w.Code)

	var second api.ClassifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), cacheSize())
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Remaining"))

	// results with nutrition errors are not cached
	w = s.do(t, http.MethodPost, "/api/v1/classify", api.ClassifyRequest{Ingredients: []string{"rice"}}, false)
	require.Equal(t, http.StatusOK, w.Code)
	var missing api.ClassifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &missing))
	assert.NotEmpty(t, missing.Errors)
	assert.Equal(t, int64(1), cacheSize())
}
