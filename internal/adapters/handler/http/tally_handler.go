package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vncsmyrnk/motionvote/internal/core/domain"
	"github.com/vncsmyrnk/motionvote/internal/core/ports"
)

type TallyHandler struct {
	service ports.TallyService
	logger  *slog.Logger
}

func NewTallyHandler(service ports.TallyService, logger *slog.Logger) *TallyHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TallyHandler{
		service: service,
		logger:  logger,
	}
}

// GetTally computes the motion's result from the votes cast so far.
//
// @Summary      Live tally of a preference motion
// @Description  Runs instant-runoff over the ballots currently stored for the motion and returns the raw result with a labelled report. Nothing is persisted.
// @Tags         tally
// @Produce      json
// @Param        id   path      int  true  "Motion ID"
// @Success      200  {object}  ports.TallyOutput
// @Failure      400
// @Failure      404
// @Router       /motions/{id}/tally [get]
func (h *TallyHandler) GetTally(w http.ResponseWriter, r *http.Request) {
	motionID, err := motionIDParam(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	out, err := h.service.Tally(r.Context(), motionID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// @Summary      Latest stored result
// @Description  Returns the most recently computed tally snapshot of the motion, with the hash of the ballots it was computed from.
// @Tags         tally
// @Produce      json
// @Param        id   path      int  true  "Motion ID"
// @Success      200  {object}  domain.TallySnapshot
// @Failure      400
// @Failure      404
// @Router       /motions/{id}/results [get]
func (h *TallyHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	motionID, err := motionIDParam(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	snapshot, err := h.service.Latest(r.Context(), motionID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

// @Summary      Recompute and store a result
// @Description  Tallies the motion again and stores a new snapshot. Requires an access token with the admin role, either in the `access_token` cookie or as a bearer token.
// @Tags         tally
// @Produce      json
// @Param        id   path      int  true  "Motion ID"
// @Success      201  {object}  domain.TallySnapshot
// @Failure      400
// @Failure      401
// @Failure      403
// @Failure      404
// @Router       /motions/{id}/results [post]
func (h *TallyHandler) RecomputeResults(w http.ResponseWriter, r *http.Request) {
	motionID, err := motionIDParam(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	snapshot, err := h.service.Recompute(r.Context(), motionID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if userID, ok := r.Context().Value(UserIDKey).(string); ok {
		h.logger.Info("tally result recomputed", "motion_id", motionID, "requested_by", userID)
	}
	writeJSON(w, http.StatusCreated, snapshot)
}

func motionIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidMotionID
	}
	return id, nil
}

func (h *TallyHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidMotionID), errors.Is(err, domain.ErrNotPreferenceMotion):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrMotionNotFound), errors.Is(err, domain.ErrResultNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		h.logger.Error("failed to handle tally request", "error", err)
		http.Error(w, domain.ErrInternal.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
