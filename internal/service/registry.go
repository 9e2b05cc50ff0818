// Package service provides business logic implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"cueclub/internal/apperr"
	"cueclub/internal/model"
	"cueclub/internal/repository"
)

var validate = validator.New()

// translateValidation converts a validator error into the service error
// taxonomy so callers see a ValidationError, not library internals.
func translateValidation(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		return apperr.Validation(f.Field(), "failed rule "+f.Tag())
	}
	return apperr.Validation("", err.Error())
}

// RegistryService manages the club registry: clubs and their embedded
// tables, menu, and staff. Clubs are never deleted.
type RegistryService struct {
	clubRepo    *repository.ClubRepository
	sessionRepo *repository.SessionRepository
}

// NewRegistryService creates a new RegistryService instance.
func NewRegistryService(clubRepo *repository.ClubRepository, sessionRepo *repository.SessionRepository) *RegistryService {
	return &RegistryService{clubRepo: clubRepo, sessionRepo: sessionRepo}
}

// CreateClubInput is the payload for CreateClub. Tables are generated
// from a count and a uniform hourly rate, numbered from 1.
type CreateClubInput struct {
	Name        string `validate:"required,min=1,max=100"`
	Address     string `validate:"required"`
	Phone       string `validate:"required"`
	Email       string `validate:"omitempty,email"`
	Plan        string `validate:"omitempty"`
	OwnerID     string `validate:"required"`
	TableCount  int    `validate:"required,min=1,max=100"`
	RatePerHour int64  `validate:"min=0"`
}

// CreateClub registers a new club with generated tables and default
// settings.
func (s *RegistryService) CreateClub(ctx context.Context, in CreateClubInput) (*model.Club, error) {
	if err := validate.Struct(in); err != nil {
		return nil, translateValidation(err)
	}

	now := time.Now()
	club := model.Club{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Address:     in.Address,
		ContactInfo: model.ContactInfo{Phone: in.Phone, Email: in.Email},
		Plan:        in.Plan,
		OwnerID:     in.OwnerID,
		CreatedAt:   now,
		Settings:    model.DefaultSettings(),
	}
	if club.Plan == "" {
		club.Plan = "basic"
	}
	for n := 1; n <= in.TableCount; n++ {
		club.Tables = append(club.Tables, model.Table{
			ID:          uuid.NewString(),
			Number:      n,
			RatePerHour: in.RatePerHour,
			IsActive:    true,
		})
	}

	if err := s.clubRepo.Insert(ctx, club); err != nil {
		return nil, fmt.Errorf("failed to create club: %w", err)
	}

	log.Info().
		Str("club_id", club.ID).
		Str("owner_id", club.OwnerID).
		Int("tables", len(club.Tables)).
		Msg("Club created")

	return &club, nil
}

// ClubUpdate holds the updatable club fields. Nil fields are left as-is.
type ClubUpdate struct {
	Name     *string
	Address  *string
	Phone    *string
	Email    *string
	Plan     *string
	Settings *model.ClubSettings
}

// UpdateClub applies a partial update to a club.
func (s *RegistryService) UpdateClub(ctx context.Context, clubID string, upd ClubUpdate) (*model.Club, error) {
	return s.clubRepo.Mutate(ctx, clubID, func(c *model.Club) error {
		if upd.Name != nil {
			if *upd.Name == "" {
				return apperr.Validation("name", "must not be empty")
			}
			c.Name = *upd.Name
		}
		if upd.Address != nil {
			c.Address = *upd.Address
		}
		if upd.Phone != nil {
			c.ContactInfo.Phone = *upd.Phone
		}
		if upd.Email != nil {
			c.ContactInfo.Email = *upd.Email
		}
		if upd.Plan != nil {
			c.Plan = *upd.Plan
		}
		if upd.Settings != nil {
			c.Settings = *upd.Settings
		}
		return nil
	})
}

// GetClub returns a club by ID. A missing club is a NotFoundError, never
// a silent nil.
func (s *RegistryService) GetClub(ctx context.Context, clubID string) (*model.Club, error) {
	return s.clubRepo.GetByID(ctx, clubID)
}

// ListClubsForOwner returns all clubs owned by ownerID.
func (s *RegistryService) ListClubsForOwner(ctx context.Context, ownerID string) ([]model.Club, error) {
	return s.clubRepo.ListForOwner(ctx, ownerID)
}

// ListClubsForStaff returns all clubs the staff member is assigned to.
func (s *RegistryService) ListClubsForStaff(ctx context.Context, staffID string) ([]model.Club, error) {
	return s.clubRepo.ListForStaff(ctx, staffID)
}

// AddTable appends a table to a club, enforcing number uniqueness within
// the club.
func (s *RegistryService) AddTable(ctx context.Context, clubID string, number int, ratePerHour int64, description string) (*model.Club, error) {
	if number < 1 {
		return nil, apperr.Validation("number", "must be positive")
	}
	if ratePerHour < 0 {
		return nil, apperr.Validation("ratePerHour", "must not be negative")
	}
	return s.clubRepo.Mutate(ctx, clubID, func(c *model.Club) error {
		if c.TableByNumber(number) != nil {
			return apperr.Validation("number", fmt.Sprintf("table %d already exists", number))
		}
		c.Tables = append(c.Tables, model.Table{
			ID:          uuid.NewString(),
			Number:      number,
			RatePerHour: ratePerHour,
			IsActive:    true,
			Description: description,
		})
		return nil
	})
}

// DeactivateTable marks a table inactive. Refused while the table has an
// open session; tables are never removed from the club.
func (s *RegistryService) DeactivateTable(ctx context.Context, clubID, tableID string) (*model.Club, error) {
	open, err := s.sessionRepo.OpenForTable(ctx, clubID, tableID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, apperr.Conflict(model.ConflictTableUnavailable,
			"table has an open session", nil)
	}
	return s.clubRepo.Mutate(ctx, clubID, func(c *model.Club) error {
		tbl := c.TableByID(tableID)
		if tbl == nil {
			return apperr.NotFound("table", tableID)
		}
		tbl.IsActive = false
		return nil
	})
}

// MenuItemInput is the payload for AddMenuItem.
type MenuItemInput struct {
	Name        string `validate:"required,min=1,max=100"`
	Price       int64  `validate:"min=0"`
	Category    string `validate:"required,oneof=food beverage"`
	Description string
}

// AddMenuItem appends an item to the club's menu.
func (s *RegistryService) AddMenuItem(ctx context.Context, clubID string, in MenuItemInput) (*model.Club, error) {
	if err := validate.Struct(in); err != nil {
		return nil, translateValidation(err)
	}
	return s.clubRepo.Mutate(ctx, clubID, func(c *model.Club) error {
		c.Menu = append(c.Menu, model.MenuItem{
			ID:          uuid.NewString(),
			Name:        in.Name,
			Price:       in.Price,
			Category:    in.Category,
			Description: in.Description,
			IsAvailable: true,
		})
		return nil
	})
}

// MenuItemUpdate holds the updatable menu item fields. Nil fields are
// left as-is.
type MenuItemUpdate struct {
	Name        *string
	Price       *int64
	Description *string
}

// UpdateMenuItem applies a partial update to a menu item.
func (s *RegistryService) UpdateMenuItem(ctx context.Context, clubID, itemID string, upd MenuItemUpdate) (*model.Club, error) {
	return s.clubRepo.Mutate(ctx, clubID, func(c *model.Club) error {
		item := c.MenuItemByID(itemID)
		if item == nil {
			return apperr.NotFound("menu item", itemID)
		}
		if upd.Name != nil {
			if *upd.Name == "" {
				return apperr.Validation("name", "must not be empty")
			}
			item.Name = *upd.Name
		}
		if upd.Price != nil {
			if *upd.Price < 0 {
				return apperr.Validation("price", "must not be negative")
			}
			item.Price = *upd.Price
		}
		if upd.Description != nil {
			item.Description = *upd.Description
		}
		return nil
	})
}

// SetMenuItemAvailability flips a menu item's availability.
func (s *RegistryService) SetMenuItemAvailability(ctx context.Context, clubID, itemID string, available bool) (*model.Club, error) {
	return s.clubRepo.Mutate(ctx, clubID, func(c *model.Club) error {
		item := c.MenuItemByID(itemID)
		if item == nil {
			return apperr.NotFound("menu item", itemID)
		}
		item.IsAvailable = available
		return nil
	})
}

// AddStaff attaches a staff member to a club.
func (s *RegistryService) AddStaff(ctx context.Context, clubID string, member model.StaffMember) (*model.Club, error) {
	if member.Name == "" {
		return nil, apperr.Validation("name", "required")
	}
	if member.Role != "staff" && member.Role != "manager" {
		return nil, apperr.Validation("role", "must be staff or manager")
	}
	return s.clubRepo.Mutate(ctx, clubID, func(c *model.Club) error {
		if member.ID == "" {
			member.ID = uuid.NewString()
		}
		member.CreatedAt = time.Now()
		member.IsActive = true
		member.AssignedClubs = append(member.AssignedClubs, clubID)
		c.Staff = append(c.Staff, member)
		return nil
	})
}

// AssignStaffClub adds a club to a staff member's assignment list. The
// assignment lives on the staff record inside the club that employs them.
func (s *RegistryService) AssignStaffClub(ctx context.Context, clubID, staffID, assignClubID string) (*model.Club, error) {
	if _, err := s.clubRepo.GetByID(ctx, assignClubID); err != nil {
		return nil, err
	}
	return s.clubRepo.Mutate(ctx, clubID, func(c *model.Club) error {
		for i := range c.Staff {
			if c.Staff[i].ID != staffID {
				continue
			}
			for _, id := range c.Staff[i].AssignedClubs {
				if id == assignClubID {
					return nil
				}
			}
			c.Staff[i].AssignedClubs = append(c.Staff[i].AssignedClubs, assignClubID)
			return nil
		}
		return apperr.NotFound("staff member", staffID)
	})
}
