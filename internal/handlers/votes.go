package handlers

import "net/http"

func (h *Handlers) handleCastVote(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req VoteRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	receipt, err := h.Voting.CastVote(r.Context(), p.UserID, req.ElectionID, req.CandidateID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, VoteResponse{Message: "Vote cast successfully", Vote: receipt})
}

func (h *Handlers) handleMyVotes(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		respondError(w, err)
		return
	}

	votes, err := h.Voting.MyVotes(r.Context(), p.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, votes)
}

func (h *Handlers) handleVoteConfirmation(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		respondError(w, err)
		return
	}

	vote, err := h.Voting.Confirmation(r.Context(), p.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, vote)
}
