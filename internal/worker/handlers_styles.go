package worker

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/Maiuran1404/brandmatch/internal/styles"
	"github.com/Maiuran1404/brandmatch/pkg/models"
)

// handleGetStyles returns brand-aware ranked styles for a user.
// Query: deliverable_type (required), user_id, limit, include_all_axes.
func (s *Service) handleGetStyles(w http.ResponseWriter, r *http.Request) {
	deliverableType := models.DeliverableType(r.URL.Query().Get("deliverable_type"))
	if deliverableType == "" {
		http.Error(w, "deliverable_type is required", http.StatusBadRequest)
		return
	}
	userID := r.URL.Query().Get("user_id")

	opts := styles.Options{
		Limit:          parseIntParam(r, "limit", s.config.StyleLimit),
		IncludeAllAxes: parseBoolParam(r, "include_all_axes", false),
	}

	svc, _, _ := s.services()
	scored, err := svc.GetBrandAwareStyles(r.Context(), deliverableType, userID, opts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.metrics.recordRequest(r.Context(), "styles")
	s.metrics.recordStylesScored(r.Context(), len(scored))

	writeJSON(w, map[string]interface{}{
		"styles": scored,
		"count":  len(scored),
	})
}

// handleGetStylesByAxis returns ranked styles of a single axis with paging.
// Query: deliverable_type (required), user_id, offset, limit.
func (s *Service) handleGetStylesByAxis(w http.ResponseWriter, r *http.Request) {
	axis := chi.URLParam(r, "axis")
	deliverableType := models.DeliverableType(r.URL.Query().Get("deliverable_type"))
	if deliverableType == "" {
		http.Error(w, "deliverable_type is required", http.StatusBadRequest)
		return
	}
	userID := r.URL.Query().Get("user_id")
	offset := parseIntParam(r, "offset", 0)
	limit := parseIntParam(r, "limit", 0)

	svc, _, _ := s.services()
	scored, err := svc.GetBrandAwareStylesOfAxis(r.Context(), deliverableType, axis, userID, offset, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.metrics.recordRequest(r.Context(), "styles_axis")
	s.metrics.recordStylesScored(r.Context(), len(scored))

	writeJSON(w, map[string]interface{}{
		"styles": scored,
		"axis":   axis,
		"count":  len(scored),
	})
}

// handleUpsertStyle creates or updates a catalog style reference.
func (s *Service) handleUpsertStyle(w http.ResponseWriter, r *http.Request) {
	var ref models.StyleReference
	if err := json.NewDecoder(r.Body).Decode(&ref); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if ref.Name == "" || ref.DeliverableType == "" || ref.StyleAxis == "" {
		http.Error(w, "name, deliverableType and styleAxis are required", http.StatusBadRequest)
		return
	}

	_, _, store := s.services()
	if err := store.UpsertStyleReference(r.Context(), &ref); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, ref)
}

// SelectStyleRequest is the request body for recording a style selection.
type SelectStyleRequest struct {
	UserID string `json:"userId"`
}

// handleSelectStyle records that a user picked a style. The selection feeds
// future history boosts and bumps the style's usage counter.
func (s *Service) handleSelectStyle(w http.ResponseWriter, r *http.Request) {
	styleID := chi.URLParam(r, "id")

	var req SelectStyleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	_, _, store := s.services()

	ref, err := store.GetStyleReferenceByID(r.Context(), styleID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if ref == nil {
		http.Error(w, "style not found", http.StatusNotFound)
		return
	}

	sel := &models.StyleSelection{
		UserID:          req.UserID,
		StyleID:         ref.ID,
		StyleAxis:       ref.StyleAxis,
		DeliverableType: ref.DeliverableType,
		SelectedAtEpoch: time.Now().UnixMilli(),
	}
	if err := store.RecordSelection(r.Context(), sel); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := store.IncrementUsageCount(r.Context(), ref.ID); err != nil {
		log.Warn().Err(err).Str("styleId", ref.ID).Msg("Failed to bump usage count")
	}

	s.metrics.recordSelection(r.Context(), ref.StyleAxis)

	writeJSON(w, map[string]interface{}{
		"recorded":  true,
		"styleAxis": ref.StyleAxis,
	})
}

// handleGetTaxonomy returns the active style axis taxonomy.
func (s *Service) handleGetTaxonomy(w http.ResponseWriter, r *http.Request) {
	s.initMu.RLock()
	table := s.table
	s.initMu.RUnlock()

	writeJSON(w, map[string]interface{}{
		"axes":     table.Axes(),
		"taxonomy": table,
	})
}
