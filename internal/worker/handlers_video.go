package worker

import (
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/Maiuran1404/brandmatch/internal/video"
)

// VideoReferencesRequest is the request body for chat-driven video lookup.
type VideoReferencesRequest struct {
	video.ChatContext
	Limit int `json:"limit,omitempty"`
}

// handleVideoReferencesForChat scores the video catalog against a chat
// context and returns a diversity-capped shortlist.
func (s *Service) handleVideoReferencesForChat(w http.ResponseWriter, r *http.Request) {
	var req VideoReferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.config.VideoLimit
	}

	_, svc, _ := s.services()
	refs, err := svc.ReferencesForChat(r.Context(), req.ChatContext, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.metrics.recordRequest(r.Context(), "video_references")

	writeJSON(w, map[string]interface{}{
		"references": refs,
		"count":      len(refs),
	})
}
