package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"cueclub/internal/model"
	"cueclub/internal/repository"
)

// ErrInvalidCredentials is returned when no user matches the supplied
// identifier, credential, and role.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService resolves credentials to a role and yields an explicit
// AuthSession value; there is no module-level current user. Credentials
// are stored and compared in plain text: owners authenticate with a
// password, staff with a PIN, players with mobile number plus PIN.
type AuthService struct {
	userRepo *repository.UserRepository
	clubRepo *repository.ClubRepository
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(userRepo *repository.UserRepository, clubRepo *repository.ClubRepository) *AuthService {
	return &AuthService{userRepo: userRepo, clubRepo: clubRepo}
}

// Login authenticates a user and returns a fresh session. identifier is
// the user's name, except for players who log in by mobile number.
func (s *AuthService) Login(ctx context.Context, identifier, credential, role string) (*model.AuthSession, error) {
	users, err := s.userRepo.All(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Role != role {
			continue
		}
		var ok bool
		switch role {
		case model.RoleOwner:
			ok = u.Name == identifier && u.Password != "" && u.Password == credential
		case model.RoleStaff:
			ok = u.Name == identifier && u.PIN != "" && u.PIN == credential
		case model.RolePlayer:
			ok = u.Mobile == identifier && u.PIN != "" && u.PIN == credential
		}
		if ok {
			log.Info().Str("user_id", u.ID).Str("role", u.Role).Msg("User logged in")
			return &model.AuthSession{
				UserID:     u.ID,
				Name:       u.Name,
				Role:       u.Role,
				LoggedInAt: time.Now(),
			}, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// Register adds a user. Missing IDs are assigned.
func (s *AuthService) Register(ctx context.Context, user model.User) (*model.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	if err := s.userRepo.Insert(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser returns a user by ID.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// AvailableClubs resolves which clubs a session may operate on: owners
// see their own clubs, staff their assigned clubs, players none.
func (s *AuthService) AvailableClubs(ctx context.Context, session *model.AuthSession) ([]model.Club, error) {
	switch session.Role {
	case model.RoleOwner:
		return s.clubRepo.ListForOwner(ctx, session.UserID)
	case model.RoleStaff:
		user, err := s.userRepo.GetByID(ctx, session.UserID)
		if err != nil {
			return nil, err
		}
		var clubs []model.Club
		for _, clubID := range user.AssignedClubs {
			club, err := s.clubRepo.GetByID(ctx, clubID)
			if err != nil {
				continue // stale assignment
			}
			clubs = append(clubs, *club)
		}
		return clubs, nil
	default:
		return nil, nil
	}
}

// SelectClub pins a club on the session after checking access.
func (s *AuthService) SelectClub(ctx context.Context, session *model.AuthSession, clubID string) error {
	clubs, err := s.AvailableClubs(ctx, session)
	if err != nil {
		return err
	}
	for _, c := range clubs {
		if c.ID == clubID {
			session.SelectedClubID = clubID
			return nil
		}
	}
	return ErrInvalidCredentials
}
