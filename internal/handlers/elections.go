package handlers

import (
	"net/http"

	"github.com/abrezinsky/evote/internal/services"
)

func (h *Handlers) handleListElections(w http.ResponseWriter, r *http.Request) {
	elections, err := h.Elections.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, elections)
}

func (h *Handlers) handleListActiveElections(w http.ResponseWriter, r *http.Request) {
	elections, err := h.Elections.ListActive(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, elections)
}

func (h *Handlers) handleGetElection(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	detail, err := h.Elections.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, detail)
}

func (h *Handlers) handleElectionResults(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	result, err := h.Results.ElectionResult(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, result)
}

func (h *Handlers) handleCreateElection(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req ElectionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	view, err := h.Elections.Create(r.Context(), services.ElectionInput{
		Title:       req.Title,
		Description: req.Description,
	}, p.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, view)
}

func (h *Handlers) handleUpdateElection(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req ElectionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	view, err := h.Elections.Update(r.Context(), id, services.ElectionInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, view)
}

// handleActivateElection starts an election. The body is optional.
func (h *Handlers) handleActivateElection(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req ActivateRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	start, err := optionalTime(req.StartTime, "startTime")
	if err != nil {
		respondError(w, err)
		return
	}

	view, err := h.Elections.Activate(r.Context(), id, start)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, view)
}

// handleEndElection ends an election. The body is optional.
func (h *Handlers) handleEndElection(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req EndRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	end, err := optionalTime(req.EndTime, "endTime")
	if err != nil {
		respondError(w, err)
		return
	}

	view, err := h.Elections.End(r.Context(), id, end)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, view)
}

// handleScheduleClose sets the automatic close time; an empty closesAt cancels it
func (h *Handlers) handleScheduleClose(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req ScheduleCloseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	closesAt, err := optionalTime(req.ClosesAt, "closesAt")
	if err != nil {
		respondError(w, err)
		return
	}

	view, err := h.Elections.ScheduleClose(r.Context(), id, closesAt)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, view)
}

func (h *Handlers) handleDeleteElection(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.Elections.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Election deleted")
}
