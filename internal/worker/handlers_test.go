// Package worker provides the recommendation worker service for brandmatch.
package worker

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/suite"

	"github.com/Maiuran1404/brandmatch/internal/config"
	"github.com/Maiuran1404/brandmatch/internal/db/sqlite"
	"github.com/Maiuran1404/brandmatch/internal/taxonomy"
	"github.com/Maiuran1404/brandmatch/pkg/models"
)

// HandlerSuite tests the HTTP surface against an in-memory store.
type HandlerSuite struct {
	suite.Suite
	svc   *Service
	store *sqlite.Store
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	store, err := sqlite.NewStore(sqlite.StoreConfig{Path: ":memory:", MaxConns: 1})
	s.Require().NoError(err)
	s.store = store

	ctx, cancel := context.WithCancel(context.Background())
	svc := &Service{
		version:   "test-version",
		config:    config.Default(),
		store:     store,
		router:    chi.NewRouter(),
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
		metrics:   newMetrics(),
	}
	svc.buildServicesLocked(store, taxonomy.Default())
	svc.setupRoutes()
	svc.ready.Store(true)

	s.svc = svc
}

func (s *HandlerSuite) TearDownTest() {
	s.svc.cancel()
	s.NoError(s.store.Close())
}

func (s *HandlerSuite) do(method, target string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	s.svc.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) decode(rec *httptest.ResponseRecorder, out interface{}) {
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(out))
}

func (s *HandlerSuite) seedStyle(id, axis string) {
	s.Require().NoError(s.store.UpsertStyleReference(context.Background(), &models.StyleReference{
		ID:              id,
		Name:            id,
		DeliverableType: models.DeliverableInstagramPost,
		StyleAxis:       axis,
		IsActive:        true,
	}))
}

func (s *HandlerSuite) seedCompany(userID string) {
	s.Require().NoError(s.store.UpsertCompany(context.Background(), &models.Company{
		Name:         "Acme Cloud",
		PrimaryColor: "#1a73e8",
		Industry:     "technology",
		OwnerUserID:  userID,
	}))
}

// TestHealth tests the always-on health endpoint.
func (s *HandlerSuite) TestHealth() {
	for _, path := range []string{"/health", "/api/health"} {
		rec := s.do(http.MethodGet, path, nil)
		s.Equal(http.StatusOK, rec.Code)

		var body map[string]interface{}
		s.decode(rec, &body)
		s.Equal("ready", body["status"])
		s.Equal("test-version", body["version"])
	}
}

// TestVersion tests the version endpoint.
func (s *HandlerSuite) TestVersion() {
	rec := s.do(http.MethodGet, "/api/version", nil)
	s.Equal(http.StatusOK, rec.Code)

	var body map[string]string
	s.decode(rec, &body)
	s.Equal("test-version", body["version"])
}

// TestReady tests readiness gating.
func (s *HandlerSuite) TestReady() {
	rec := s.do(http.MethodGet, "/api/ready", nil)
	s.Equal(http.StatusOK, rec.Code)

	s.svc.ready.Store(false)
	rec = s.do(http.MethodGet, "/api/ready", nil)
	s.Equal(http.StatusServiceUnavailable, rec.Code)

	// Gated routes refuse too while initializing.
	rec = s.do(http.MethodGet, "/api/styles?deliverable_type=instagram_post", nil)
	s.Equal(http.StatusServiceUnavailable, rec.Code)
}

// TestGetStyles tests the ranked styles endpoint.
func (s *HandlerSuite) TestGetStyles() {
	s.seedCompany("user-1")
	s.seedStyle("st-1", "tech")
	s.seedStyle("st-2", "playful")

	rec := s.do(http.MethodGet, "/api/styles?deliverable_type=instagram_post&user_id=user-1", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var body struct {
		Styles []models.ScoredStyle `json:"styles"`
		Count  int                  `json:"count"`
	}
	s.decode(rec, &body)
	s.Equal(2, body.Count)
	s.Equal("tech", body.Styles[0].StyleAxis)
	s.Greater(body.Styles[0].BrandMatchScore, body.Styles[1].BrandMatchScore)
}

// TestGetStylesRequiresDeliverableType tests parameter validation.
func (s *HandlerSuite) TestGetStylesRequiresDeliverableType() {
	rec := s.do(http.MethodGet, "/api/styles", nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

// TestGetStylesByAxis tests the single-axis endpoint.
func (s *HandlerSuite) TestGetStylesByAxis() {
	s.seedCompany("user-1")
	s.seedStyle("st-1", "tech")
	s.seedStyle("st-2", "tech")
	s.seedStyle("st-3", "bold")

	rec := s.do(http.MethodGet, "/api/styles/axis/tech?deliverable_type=instagram_post&user_id=user-1", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var body struct {
		Styles []models.ScoredStyle `json:"styles"`
		Axis   string               `json:"axis"`
	}
	s.decode(rec, &body)
	s.Equal("tech", body.Axis)
	s.Len(body.Styles, 2)
}

// TestUpsertStyle tests the admin create endpoint.
func (s *HandlerSuite) TestUpsertStyle() {
	rec := s.do(http.MethodPost, "/api/styles", map[string]interface{}{
		"name":            "clean grid",
		"deliverableType": "instagram_post",
		"styleAxis":       "minimal",
	})
	s.Require().Equal(http.StatusCreated, rec.Code)
	s.Equal("application/json", rec.Header().Get("Content-Type"))

	var created models.StyleReference
	s.decode(rec, &created)
	s.NotEmpty(created.ID)

	// Missing fields are rejected.
	rec = s.do(http.MethodPost, "/api/styles", map[string]interface{}{"name": "incomplete"})
	s.Equal(http.StatusBadRequest, rec.Code)
}

// TestSelectStyle tests selection recording end to end.
func (s *HandlerSuite) TestSelectStyle() {
	s.seedStyle("st-1", "tech")

	rec := s.do(http.MethodPost, "/api/styles/st-1/select", map[string]string{"userId": "user-1"})
	s.Require().Equal(http.StatusOK, rec.Code)

	var body map[string]interface{}
	s.decode(rec, &body)
	s.Equal(true, body["recorded"])
	s.Equal("tech", body["styleAxis"])

	counts, err := s.store.AxisSelectionCounts(context.Background(), "user-1", models.DeliverableInstagramPost)
	s.Require().NoError(err)
	s.Require().Len(counts, 1)
	s.Equal("tech", counts[0].StyleAxis)

	ref, err := s.store.GetStyleReferenceByID(context.Background(), "st-1")
	s.Require().NoError(err)
	s.Equal(1, ref.UsageCount)
}

// TestSelectStyleMissing tests unknown style and missing user handling.
func (s *HandlerSuite) TestSelectStyleMissing() {
	rec := s.do(http.MethodPost, "/api/styles/nope/select", map[string]string{"userId": "user-1"})
	s.Equal(http.StatusNotFound, rec.Code)

	s.seedStyle("st-1", "tech")
	rec = s.do(http.MethodPost, "/api/styles/st-1/select", map[string]string{})
	s.Equal(http.StatusBadRequest, rec.Code)
}

// TestVideoReferencesForChat tests the chat-driven video endpoint.
func (s *HandlerSuite) TestVideoReferencesForChat() {
	s.Require().NoError(s.store.UpsertVideoReference(context.Background(), &models.VideoReference{
		Title:     "launch teaser",
		StyleAxis: "tech",
		Intents:   models.JSONStringArray{"product launch"},
		Platforms: models.JSONStringArray{"instagram"},
		IsActive:  true,
	}))

	rec := s.do(http.MethodPost, "/api/video-references/chat", map[string]interface{}{
		"userId":   "user-1",
		"intent":   "product launch",
		"platform": "instagram",
	})
	s.Require().Equal(http.StatusOK, rec.Code)

	var body struct {
		References []models.ScoredVideoReference `json:"references"`
		Count      int                           `json:"count"`
	}
	s.decode(rec, &body)
	s.Require().Equal(1, body.Count)
	s.Equal(60, body.References[0].MatchScore)
}

// TestGetTaxonomy tests taxonomy introspection.
func (s *HandlerSuite) TestGetTaxonomy() {
	rec := s.do(http.MethodGet, "/api/taxonomy", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var body struct {
		Axes     []string                           `json:"axes"`
		Taxonomy map[string]taxonomy.Characteristic `json:"taxonomy"`
	}
	s.decode(rec, &body)
	s.Len(body.Axes, 8)
	s.Contains(body.Taxonomy, "tech")
}

// TestConfiguredLimitFallbacks tests that requests without an explicit limit
// fall back to the configured result limits.
func (s *HandlerSuite) TestConfiguredLimitFallbacks() {
	s.svc.config.StyleLimit = 2
	s.svc.config.VideoLimit = 1

	s.seedStyle("st-1", "tech")
	s.seedStyle("st-2", "minimal")
	s.seedStyle("st-3", "bold")

	rec := s.do(http.MethodGet, "/api/styles?deliverable_type=instagram_post", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var styleBody struct {
		Count int `json:"count"`
	}
	s.decode(rec, &styleBody)
	s.Equal(2, styleBody.Count)

	// An explicit limit wins over the configured fallback.
	rec = s.do(http.MethodGet, "/api/styles?deliverable_type=instagram_post&limit=3", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &styleBody)
	s.Equal(3, styleBody.Count)

	for _, title := range []string{"teaser one", "teaser two"} {
		s.Require().NoError(s.store.UpsertVideoReference(context.Background(), &models.VideoReference{
			Title:     title,
			StyleAxis: "tech",
			Intents:   models.JSONStringArray{"product launch"},
			IsActive:  true,
		}))
	}

	rec = s.do(http.MethodPost, "/api/video-references/chat", map[string]interface{}{
		"userId": "user-1",
		"intent": "product launch",
	})
	s.Require().Equal(http.StatusOK, rec.Code)

	var videoBody struct {
		Count int `json:"count"`
	}
	s.decode(rec, &videoBody)
	s.Equal(1, videoBody.Count)
}
