package models

import (
	"time"

	"github.com/abrezinsky/evote/internal/election"
)

// Roles
const (
	RoleAdmin    = "admin"
	RoleChairman = "chairman"
	RoleVoter    = "voter"
)

// ValidRole reports whether role is one of the known roles
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleChairman, RoleVoter:
		return true
	}
	return false
}

// User is an account: voters sign in with an access code, staff with a password
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	AccessCode   string    `json:"accessCode,omitempty"`
	PasswordHash string    `json:"-"`
	HasVoted     bool      `json:"hasVoted"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Election is a stored election. Status is derived from StartTime and EndTime.
type Election struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	ClosesAt    *time.Time `json:"closesAt,omitempty"`
	CreatedBy   string     `json:"createdBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Status derives the lifecycle status from the stored timestamps
func (e Election) Status() election.Status {
	return election.ClassifyTimes(e.StartTime, e.EndTime)
}

// Candidate is an entrant in exactly one election
type Candidate struct {
	ID         string `json:"_id"`
	ElectionID string `json:"electionId"`
	Name       string `json:"name"`
	Party      string `json:"party"`
	Votes      int    `json:"votes"`
}

// Ranked converts the candidate to the engine's view
func (c Candidate) Ranked() election.Candidate {
	return election.Candidate{ID: c.ID, Name: c.Name, Party: c.Party, Votes: c.Votes}
}

// Vote is one voter's ballot in one election
type Vote struct {
	ID          string    `json:"_id"`
	Receipt     string    `json:"receipt"`
	UserID      string    `json:"userId"`
	ElectionID  string    `json:"electionId"`
	CandidateID string    `json:"candidateId"`
	CreatedAt   time.Time `json:"timestamp"`
}

// VoteDetail is a vote joined with its election and candidate
type VoteDetail struct {
	Vote      Vote
	Election  Election
	Candidate Candidate
}

// ElectionVoteCount is the number of votes cast in one election
type ElectionVoteCount struct {
	ElectionID    string `json:"electionId"`
	ElectionTitle string `json:"electionTitle"`
	Votes         int    `json:"votes"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
