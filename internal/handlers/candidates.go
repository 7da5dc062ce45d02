package handlers

import (
	"net/http"

	"github.com/abrezinsky/evote/internal/services"
)

func (h *Handlers) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.Candidates.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, candidates)
}

func (h *Handlers) handleListElectionCandidates(w http.ResponseWriter, r *http.Request) {
	electionID, err := pathParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	candidates, err := h.Candidates.ListByElection(r.Context(), electionID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, candidates)
}

func (h *Handlers) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	var req CandidateCreateRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	candidate, err := h.Candidates.Create(r.Context(), services.CandidateInput{
		ElectionID: req.ElectionID,
		Name:       req.Name,
		Party:      req.Party,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, candidate)
}

func (h *Handlers) handleUpdateCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req CandidateUpdateRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	candidate, err := h.Candidates.Update(r.Context(), id, services.CandidateInput{
		Name:  req.Name,
		Party: req.Party,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, candidate)
}

func (h *Handlers) handleDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.Candidates.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Candidate deleted")
}
