package api

import (
	"encoding/json"
	"net/http"
	"strings"

	respond "github.com/studysmarter/studysmarter/internal/api/respond"
	"github.com/studysmarter/studysmarter/internal/concepts"
)

type ExpandHandler struct {
	expander concepts.Expander
}

func NewExpandHandler(expander concepts.Expander) *ExpandHandler {
	return &ExpandHandler{expander: expander}
}

// HandleExpand POST /api/expand
//
// Upstream failure maps to 502: the expansion backend is an external
// dependency and its absence is not this service's fault.
func (h *ExpandHandler) HandleExpand(w http.ResponseWriter, r *http.Request) {
	var in concepts.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if strings.TrimSpace(in.Concept) == "" {
		respond.WriteBadRequest(w, "concept is required")
		return
	}
	out, err := h.expander.Expand(r.Context(), in)
	if err != nil {
		respond.WriteBadGateway(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}
