package recommendations

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"admissions-backend/internal/profiles"
)

func setupRecommendationRouter(t *testing.T) (*gin.Engine, *profiles.MemoryRepo, *MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	school := &stubAgent{category: CategorySchool, recs: []GeneratedRecommendation{
		{Category: CategorySchool, Title: "Rice University", Priority: PriorityHigh},
	}}
	svc, profileRepo, recRepo := newTestService(t, []Agent{school}, consolidatorReturning("Plan testing"))

	router := gin.New()
	api := router.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)
	return router, profileRepo, recRepo
}

func TestGenerateEndpointUnknownProfile(t *testing.T) {
	router, _, _ := setupRecommendationRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/profiles/missing/recommendations/generate", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Code != "not_found" {
		t.Fatalf("expected not_found code, got %q", body.Error.Code)
	}
}

func TestGenerateEndpointReturnsRunResult(t *testing.T) {
	router, profileRepo, _ := setupRecommendationRouter(t)
	seedProfile(profileRepo, "p1", juniorGradYear())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/profiles/p1/recommendations/generate", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var result RunResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Stage.Stage != "junior_fall" {
		t.Fatalf("expected junior_fall stage, got %q", result.Stage.Stage)
	}
	if len(result.Recommendations) == 0 || result.SavedCount != len(result.Recommendations) {
		t.Fatalf("unexpected result: %d recommendations, savedCount %d", len(result.Recommendations), result.SavedCount)
	}
}

func TestGenerateEndpointGradeOverride(t *testing.T) {
	router, profileRepo, _ := setupRecommendationRouter(t)
	seedProfile(profileRepo, "p1", juniorGradYear())

	payload, _ := json.Marshal(map[string]string{"gradeOverride": "9th"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/profiles/p1/recommendations/generate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var result RunResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Stage.Stage != "freshman_fall" {
		t.Fatalf("expected override to yield freshman_fall, got %q", result.Stage.Stage)
	}
}

func TestListEndpoint(t *testing.T) {
	router, profileRepo, recRepo := setupRecommendationRouter(t)
	seedProfile(profileRepo, "p1", juniorGradYear())

	// Empty list comes back as an empty array, not null.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/profiles/p1/recommendations", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !bytes.Contains(resp.Body.Bytes(), []byte(`"recommendations":[]`)) {
		t.Fatalf("expected empty array, got %s", resp.Body.String())
	}

	rows, err := recRepo.ReplaceActive(req.Context(), "p1", "v1", []GeneratedRecommendation{
		{Category: CategoryGeneral, Title: "Advice"},
	})
	if err != nil {
		t.Fatalf("seed rows: %v", err)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/profiles/p1/recommendations", nil))
	var body struct {
		Recommendations []Recommendation `json:"recommendations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Recommendations) != 1 || body.Recommendations[0].ID != rows[0].ID {
		t.Fatalf("unexpected list: %+v", body.Recommendations)
	}
}

func TestStatusEndpoints(t *testing.T) {
	router, _, recRepo := setupRecommendationRouter(t)

	rows, err := recRepo.ReplaceActive(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "p1", "v1", []GeneratedRecommendation{
		{Category: CategoryGeneral, Title: "A"},
		{Category: CategoryGeneral, Title: "B"},
		{Category: CategoryGeneral, Title: "C"},
	})
	if err != nil {
		t.Fatalf("seed rows: %v", err)
	}

	feedback, _ := json.Marshal(map[string]string{"feedback": "not for me"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations/"+rows[0].ID+"/dismiss", bytes.NewReader(feedback))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("dismiss: expected 200, got %d", resp.Code)
	}
	dismissed, _ := recRepo.Get(rows[0].ID)
	if dismissed.Status != StatusDismissed || dismissed.Feedback != "not for me" {
		t.Fatalf("unexpected dismissed row: %+v", dismissed)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/recommendations/"+rows[1].ID+"/save", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("save: expected 200, got %d", resp.Code)
	}
	saved, _ := recRepo.Get(rows[1].ID)
	if saved.Status != StatusSaved {
		t.Fatalf("expected saved, got %q", saved.Status)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/recommendations/"+rows[2].ID+"/acted-upon", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("acted-upon: expected 200, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/recommendations/missing/save", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("unknown id: expected 404, got %d", resp.Code)
	}
}
