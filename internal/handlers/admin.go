package handlers

import (
	"fmt"
	"net/http"
)

// ==================== Users ====================

func (h *Handlers) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.ListUsers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, users)
}

func (h *Handlers) handleUpdateVoter(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req VoterUpdateRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := h.Users.UpdateVoter(r.Context(), id, req.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, user)
}

func (h *Handlers) handleDeleteVoter(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.Users.DeleteVoter(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Voter deleted")
}

// ==================== Access Codes ====================

func (h *Handlers) handleGenerateAccessCodes(w http.ResponseWriter, r *http.Request) {
	var req AccessCodesRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	codes, err := h.Users.GenerateAccessCodes(r.Context(), req.VoterIDs)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, AccessCodesResponse{
		Message: fmt.Sprintf("Generated access codes for %d voter(s)", len(codes)),
		Codes:   codes,
	})
}

func (h *Handlers) handleAccessCodeQR(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	png, err := h.Users.AccessCodeQR(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(png)
}

// ==================== Monitor & Results ====================

func (h *Handlers) handleMonitor(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Results.Monitor(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, stats)
}

func (h *Handlers) handleResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.Results.Results(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, results)
}

// ==================== Settings ====================

func (h *Handlers) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	baseURL, err := h.Settings.GetBaseURL(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, SettingsResponse{BaseURL: baseURL})
}

func (h *Handlers) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsUpdateRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Settings.SetBaseURL(r.Context(), req.BaseURL); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Settings updated")
}
