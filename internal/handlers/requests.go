package handlers

// RegisterRequest represents a request to create an account
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
	Role     string `json:"role" validate:"omitempty,oneof=admin chairman voter"`
}

// LoginRequest represents a staff login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VoterLoginRequest represents a voter signing in with an access code
type VoterLoginRequest struct {
	AccessCode string `json:"accessCode" validate:"required"`
}

// ElectionRequest represents a request to create or update an election
type ElectionRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// ActivateRequest optionally backdates or postdates the start time
type ActivateRequest struct {
	StartTime string `json:"startTime"`
}

// EndRequest optionally sets the end time
type EndRequest struct {
	EndTime string `json:"endTime"`
}

// ScheduleCloseRequest sets or clears the scheduled close time
type ScheduleCloseRequest struct {
	ClosesAt string `json:"closesAt"`
}

// CandidateCreateRequest represents a request to add a candidate
type CandidateCreateRequest struct {
	ElectionID string `json:"electionId" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Party      string `json:"party"`
}

// CandidateUpdateRequest represents a request to edit a candidate
type CandidateUpdateRequest struct {
	Name  string `json:"name" validate:"required"`
	Party string `json:"party"`
}

// VoteRequest represents a ballot submission
type VoteRequest struct {
	ElectionID  string `json:"electionId" validate:"required"`
	CandidateID string `json:"candidateId" validate:"required"`
}

// VoterUpdateRequest represents a request to rename a voter
type VoterUpdateRequest struct {
	Name string `json:"name" validate:"required"`
}

// AccessCodesRequest selects the voters that receive new access codes
type AccessCodesRequest struct {
	VoterIDs []string `json:"voterIds" validate:"required,min=1,dive,required"`
}

// SettingsUpdateRequest represents a request to update settings
type SettingsUpdateRequest struct {
	BaseURL string `json:"base_url" validate:"required,url"`
}
