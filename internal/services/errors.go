package services

import "fmt"

// Service errors
var (
	ErrElectionNotActive      = &ServiceError{Message: "election is not active"}
	ErrElectionAlreadyStarted = &ServiceError{Message: "election has already been activated"}
	ErrElectionEnded          = &ServiceError{Message: "election has ended and can no longer be changed"}
	ErrEndBeforeStart         = &ServiceError{Message: "end time cannot be before the start time"}
	ErrCloseTimeInPast        = &ServiceError{Message: "scheduled close time must be in the future"}
	ErrElectionStateChanged   = &ServiceError{Message: "election status changed, please reload and try again"}
	ErrAlreadyVoted           = &ServiceError{Message: "you have already voted in this election"}
	ErrCandidateNotInElection = &ServiceError{Message: "candidate does not belong to this election"}
	ErrInvalidCredentials     = &ServiceError{Message: "invalid email or password"}
	ErrInvalidAccessCode      = &ServiceError{Message: "invalid access code"}
	ErrPasswordRequired       = &ServiceError{Message: "password is required for admin and chairman accounts"}
	ErrEmailTaken             = &ServiceError{Message: "email is already registered"}
	ErrAdminRegistration      = &ServiceError{Message: "only an admin can register another admin"}
	ErrNotAVoter              = &ServiceError{Message: "user is not a voter"}
	ErrNoVotersSelected       = &ServiceError{Message: "no voters selected"}
	ErrNoAccessCode           = &ServiceError{Message: "voter has no access code yet"}
	ErrBaseURLNotConfigured   = &ServiceError{Message: "base_url not configured"}
)

// ServiceError represents a service-level error
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// InvalidRoleError represents an unknown role name
type InvalidRoleError struct {
	Role string
}

func (e *InvalidRoleError) Error() string {
	return fmt.Sprintf("invalid role: %s", e.Role)
}
