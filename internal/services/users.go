package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/skip2/go-qrcode"
	"golang.org/x/crypto/bcrypt"

	"github.com/abrezinsky/evote/internal/errors"
	"github.com/abrezinsky/evote/internal/logger"
	"github.com/abrezinsky/evote/internal/models"
	"github.com/abrezinsky/evote/internal/repository"
)

// maxCodeAttempts bounds retries when a generated access code is already taken
const maxCodeAttempts = 10

// UserService handles accounts, sign-in and voter access codes
type UserService struct {
	log        logger.Logger
	repo       repository.UserRepository
	settings   SettingsServicer
	randReader io.Reader // for testing: defaults to crypto/rand.Reader
	hashCost   int
}

// NewUserService creates a new UserService
func NewUserService(log logger.Logger, repo repository.UserRepository, settings SettingsServicer) *UserService {
	return &UserService{
		log:        log,
		repo:       repo,
		settings:   settings,
		randReader: rand.Reader,
		hashCost:   bcrypt.DefaultCost,
	}
}

// SetRandReader sets a custom random reader (for testing)
func (s *UserService) SetRandReader(reader io.Reader) {
	s.randReader = reader
}

// SetHashCost sets the bcrypt cost (for testing)
func (s *UserService) SetHashCost(cost int) {
	s.hashCost = cost
}

// RegisterInput holds the fields of a new account
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AccessCodeAssignment is a voter's newly generated access code
type AccessCodeAssignment struct {
	VoterID    string `json:"voterId"`
	Name       string `json:"name"`
	AccessCode string `json:"accessCode"`
}

// Register creates an account. Voters sign in with an access code and need
// no password; admins and chairmen need one. Only an admin (actorRole) may
// create another admin.
func (s *UserService) Register(ctx context.Context, in RegisterInput, actorRole string) (*models.User, error) {
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		role = models.RoleVoter
	}
	if !models.ValidRole(role) {
		return nil, &InvalidRoleError{Role: in.Role}
	}
	if role == models.RoleAdmin && actorRole != models.RoleAdmin {
		return nil, ErrAdminRegistration
	}
	if role != models.RoleVoter && in.Password == "" {
		return nil, ErrPasswordRequired
	}

	u := &models.User{
		Name:  strings.TrimSpace(in.Name),
		Email: strings.ToLower(strings.TrimSpace(in.Email)),
		Role:  role,
	}
	if u.Name == "" || u.Email == "" {
		return nil, errors.Validation("name and email are required")
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInvalidInput, "password cannot be used")
		}
		u.PasswordHash = string(hash)
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		if err == repository.ErrDuplicate {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.log.Info("User registered", "id", u.ID, "email", u.Email, "role", u.Role)
	return u, nil
}

// Login verifies staff credentials
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.repo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err == repository.ErrNotFound {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if u.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.log.Debug("Failed login", "email", email)
		return nil, ErrInvalidCredentials
	}
	s.log.Info("User logged in", "id", u.ID, "role", u.Role)
	return u, nil
}

// VoterLogin signs a voter in by access code
func (s *UserService) VoterLogin(ctx context.Context, accessCode string) (*models.User, error) {
	code := normalizeCode(accessCode)
	if code == "" {
		return nil, ErrInvalidAccessCode
	}
	u, err := s.repo.GetUserByAccessCode(ctx, code)
	if err == repository.ErrNotFound {
		return nil, ErrInvalidAccessCode
	}
	if err != nil {
		return nil, err
	}
	if u.Role != models.RoleVoter {
		return nil, ErrInvalidAccessCode
	}
	s.log.Info("Voter logged in", "id", u.ID)
	return u, nil
}

// Me returns the signed-in user
func (s *UserService) Me(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.repo.GetUser(ctx, userID)
	if err == repository.ErrNotFound {
		return nil, errors.Unauthorized("session user no longer exists")
	}
	return u, err
}

// ListUsers returns every account with its has-voted flag
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.ListUsers(ctx)
}

// UpdateVoter renames a voter
func (s *UserService) UpdateVoter(ctx context.Context, id, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Validation("name is required")
	}
	u, err := s.voter(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateUserName(ctx, id, name); err != nil {
		return nil, err
	}
	u.Name = name
	s.log.Info("Voter updated", "id", id, "name", name)
	return u, nil
}

// DeleteVoter removes a voter and withdraws their votes
func (s *UserService) DeleteVoter(ctx context.Context, id string) error {
	if _, err := s.voter(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return errors.NotFound("voter not found")
		}
		return err
	}
	s.log.Info("Voter deleted", "id", id)
	return nil
}

// GenerateAccessCodes assigns a fresh access code to each listed voter.
// Unknown IDs and non-voters are skipped and logged.
func (s *UserService) GenerateAccessCodes(ctx context.Context, voterIDs []string) ([]AccessCodeAssignment, error) {
	if len(voterIDs) == 0 {
		return nil, ErrNoVotersSelected
	}

	assigned := []AccessCodeAssignment{}
	for _, id := range voterIDs {
		u, err := s.voter(ctx, id)
		if err != nil {
			if errors.Is(err, errors.ErrNotFound) || err == ErrNotAVoter {
				s.log.Warn("Skipping access code", "id", id, "error", err)
				continue
			}
			return nil, err
		}

		code, err := s.assignCode(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		assigned = append(assigned, AccessCodeAssignment{VoterID: u.ID, Name: u.Name, AccessCode: code})
	}

	s.log.Info("Access codes generated", "requested", len(voterIDs), "generated", len(assigned))
	return assigned, nil
}

func (s *UserService) assignCode(ctx context.Context, id string) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		seed := make([]byte, 16)
		if _, err := io.ReadFull(s.randReader, seed); err != nil {
			return "", fmt.Errorf("failed to generate random code: %w", err)
		}
		code := GenerateReadableCode(id + hex.EncodeToString(seed))

		err := s.repo.SetAccessCode(ctx, id, code)
		if err == nil {
			return code, nil
		}
		if err != repository.ErrDuplicate {
			return "", err
		}
		s.log.Debug("Generated code already exists, retrying", "code", code, "attempt", i+1)
	}
	return "", fmt.Errorf("failed to generate unique code after %d attempts", maxCodeAttempts)
}

// AccessCodeQR renders a PNG QR code linking to the voter login page with the
// voter's access code filled in
func (s *UserService) AccessCodeQR(ctx context.Context, voterID string) ([]byte, error) {
	u, err := s.voter(ctx, voterID)
	if err != nil {
		return nil, err
	}
	if u.AccessCode == "" {
		return nil, ErrNoAccessCode
	}

	baseURL, err := s.settings.GetBaseURL(ctx)
	if err != nil {
		return nil, err
	}
	if baseURL == "" {
		return nil, ErrBaseURLNotConfigured
	}
	loginURL := fmt.Sprintf("%s/voter-login?code=%s", strings.TrimSuffix(baseURL, "/"), u.AccessCode)
	return qrcode.Encode(loginURL, qrcode.Medium, 256)
}

// EnsureAdmin creates the bootstrap admin account unless the email is
// already registered. Reports whether an account was created.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	_, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if err != repository.ErrNotFound {
		return false, err
	}

	_, err = s.Register(ctx, RegisterInput{
		Name:     "Administrator",
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
	}, models.RoleAdmin)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *UserService) voter(ctx context.Context, id string) (*models.User, error) {
	u, err := s.repo.GetUser(ctx, id)
	if err == repository.ErrNotFound {
		return nil, errors.NotFound("voter not found")
	}
	if err != nil {
		return nil, err
	}
	if u.Role != models.RoleVoter {
		return nil, ErrNotAVoter
	}
	return u, nil
}

// GenerateReadableCode creates a short, readable code from input data
// Uses only clear characters (no O/0/I/1/L) - format: XX-YYY
func GenerateReadableCode(seed string) string {
	const chars = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

	hash := sha256.Sum256([]byte(seed))
	num := binary.BigEndian.Uint64(hash[:8])

	code := make([]byte, 5)
	for i := 0; i < 5; i++ {
		code[i] = chars[num%uint64(len(chars))]
		num /= uint64(len(chars))
	}

	return fmt.Sprintf("%s-%s", string(code[:2]), string(code[2:]))
}

// normalizeCode accepts codes typed in lower case or without the dash
func normalizeCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) == 5 && !strings.Contains(code, "-") {
		code = code[:2] + "-" + code[2:]
	}
	return code
}
