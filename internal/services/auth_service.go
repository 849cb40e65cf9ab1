package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/LuthandoGubevu/tutorhub/internal/models"
	"github.com/LuthandoGubevu/tutorhub/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthEventType classifies provider-issued credential events
type AuthEventType string

const (
	EventSignedIn     AuthEventType = "signed_in"
	EventSignedOut    AuthEventType = "signed_out"
	EventTokenRefresh AuthEventType = "token_refresh"
)

// AuthEvent is a provider-issued credential event. UserID, Email and
// DisplayName are the provider-asserted fields.
type AuthEvent struct {
	Type        AuthEventType
	UserID      uuid.UUID
	Email       string
	DisplayName string
}

// ResolutionState tracks one identity resolution pass
type ResolutionState string

const (
	StateUnresolved       ResolutionState = "unresolved"
	StateResolving        ResolutionState = "resolving"
	StateResolved         ResolutionState = "resolved"
	StateResolvedDegraded ResolutionState = "resolved_degraded"
)

// AuthResult is returned to callers of Register and Login
type AuthResult struct {
	Identity  *models.Identity `json:"identity"`
	Token     string           `json:"token"`
	IsNewUser bool             `json:"is_new_user"`
}

// AuthService resolves authentication events to application identities and
// issues session tokens
type AuthService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
	tutorEmails   map[string]struct{}
}

// NewAuthService creates a new auth service. tutorEmails is the allow-list of
// addresses that always resolve to the tutor role.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiration time.Duration, tutorEmails []string) *AuthService {
	allowed := make(map[string]struct{}, len(tutorEmails))
	for _, email := range tutorEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			allowed[email] = struct{}{}
		}
	}
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		tutorEmails:   allowed,
	}
}

// IsReservedTutorEmail reports whether the address is on the tutor allow-list
func (s *AuthService) IsReservedTutorEmail(email string) bool {
	_, ok := s.tutorEmails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// Register creates a new identity record and signs the user in
func (s *AuthService) Register(email, password, displayName string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, NewValidationError("email is required")
	}
	if len(password) < 6 {
		return nil, NewValidationError("password must be at least 6 characters")
	}

	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, NewValidationError("email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := models.RoleStudent
	if s.IsReservedTutorEmail(email) {
		role = models.RoleTutor
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(displayName),
		Role:         role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	identity, _ := s.ResolveIdentity(AuthEvent{
		Type:        EventSignedIn,
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}, nil)

	token, err := s.generateJWT(identity)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResult{Identity: identity, Token: token, IsNewUser: true}, nil
}

// Login verifies credentials and resolves the identity
func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	identity, resolveErr := s.ResolveIdentity(AuthEvent{
		Type:        EventSignedIn,
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}, nil)
	if resolveErr != nil {
		// Degraded resolution still yields a usable identity.
		log.Printf("identity resolution degraded for %s: %v", user.Email, resolveErr)
	}

	token, err := s.generateJWT(identity)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResult{Identity: identity, Token: token}, nil
}

// ResolveIdentity turns a credential event into an application identity.
//
// A signed-out event resolves to nil with no store access. For signed-in and
// refresh events the role always comes from the store record, with one
// exception: an allow-listed tutor email forces the tutor role and the record
// is healed to match so future reads agree.
//
// The pass always completes: if the store cannot be reached the identity
// degrades to the student role built from provider-asserted fields, and the
// error is returned alongside it for logging. observe, when non-nil, receives
// each state transition of the pass.
func (s *AuthService) ResolveIdentity(event AuthEvent, observe func(ResolutionState)) (*models.Identity, error) {
	notify := func(state ResolutionState) {
		if observe != nil {
			observe(state)
		}
	}

	if event.Type == EventSignedOut {
		notify(StateUnresolved)
		return nil, nil
	}

	notify(StateResolving)

	identity, err := s.resolveFromStore(event)
	if err != nil {
		degraded := &models.Identity{
			ID:          event.UserID,
			Email:       event.Email,
			DisplayName: event.DisplayName,
			Role:        models.RoleStudent,
		}
		if degraded.DisplayName == "" {
			degraded.DisplayName = "Student User"
		}
		notify(StateResolvedDegraded)
		return degraded, err
	}

	notify(StateResolved)
	return identity, nil
}

func (s *AuthService) resolveFromStore(event AuthEvent) (*models.Identity, error) {
	record, err := s.userRepo.GetByID(event.UserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load identity record: %w", err)
	}
	exists := err == nil

	if s.IsReservedTutorEmail(event.Email) {
		displayName := firstNonEmpty(event.DisplayName, recordDisplayName(record), "Tutor User")
		if !exists {
			created := &models.User{
				ID:          event.UserID,
				Email:       event.Email,
				DisplayName: displayName,
				Role:        models.RoleTutor,
			}
			if err := s.userRepo.Create(created); err != nil {
				return nil, fmt.Errorf("failed to create tutor record: %w", err)
			}
		} else if record.Role != models.RoleTutor {
			// Heal the record so future reads agree without the special case.
			if err := s.userRepo.Merge(record.ID, map[string]interface{}{"role": models.RoleTutor}); err != nil {
				return nil, fmt.Errorf("failed to heal tutor record: %w", err)
			}
		}
		return &models.Identity{
			ID:          event.UserID,
			Email:       event.Email,
			DisplayName: displayName,
			Role:        models.RoleTutor,
		}, nil
	}

	if exists {
		role := record.Role
		if role == "" {
			// Malformed or legacy record; default and repair.
			role = models.RoleStudent
			if err := s.userRepo.Merge(record.ID, map[string]interface{}{"role": models.RoleStudent}); err != nil {
				return nil, fmt.Errorf("failed to repair identity record: %w", err)
			}
		}
		return &models.Identity{
			ID:          event.UserID,
			Email:       event.Email,
			DisplayName: firstNonEmpty(event.DisplayName, record.DisplayName, record.FullName, "Student User"),
			Role:        role,
		}, nil
	}

	displayName := firstNonEmpty(event.DisplayName, "New Student")
	created := &models.User{
		ID:          event.UserID,
		Email:       event.Email,
		DisplayName: displayName,
		Role:        models.RoleStudent,
	}
	if err := s.userRepo.Create(created); err != nil {
		return nil, fmt.Errorf("failed to create identity record: %w", err)
	}

	return &models.Identity{
		ID:          event.UserID,
		Email:       event.Email,
		DisplayName: displayName,
		Role:        models.RoleStudent,
	}, nil
}

// ValidateToken parses a session token and resolves the identity it names
func (s *AuthService) ValidateToken(tokenString string) (*models.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token: %w", err)
	}
	email, _ := claims["email"].(string)
	displayName, _ := claims["display_name"].(string)

	identity, resolveErr := s.ResolveIdentity(AuthEvent{
		Type:        EventTokenRefresh,
		UserID:      userID,
		Email:       email,
		DisplayName: displayName,
	}, nil)
	if identity == nil {
		return nil, fmt.Errorf("failed to resolve identity: %w", resolveErr)
	}

	return identity, nil
}

// generateJWT issues a session token for the identity
func (s *AuthService) generateJWT(identity *models.Identity) (string, error) {
	claims := jwt.MapClaims{
		"user_id":      identity.ID.String(),
		"email":        identity.Email,
		"display_name": identity.DisplayName,
		"role":         identity.Role,
		"exp":          time.Now().Add(s.jwtExpiration).Unix(),
		"iat":          time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func recordDisplayName(record *models.User) string {
	if record == nil {
		return ""
	}
	return firstNonEmpty(record.DisplayName, record.FullName)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
