// Package model defines the data models for the club management system.
package model

import "time"

// Club is the tenant entity. It owns its tables, menu, and staff as
// embedded collections; bookings and sessions reference it by ID only.
type Club struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Address     string        `json:"address"`
	ContactInfo ContactInfo   `json:"contactInfo"`
	Tables      []Table       `json:"tables"`
	Menu        []MenuItem    `json:"menu"`
	Staff       []StaffMember `json:"staff"`
	Plan        string        `json:"plan"`
	OwnerID     string        `json:"ownerId"`
	CreatedAt   time.Time     `json:"createdAt"`
	Settings    ClubSettings  `json:"settings"`
}

// ContactInfo holds a club's contact details.
type ContactInfo struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Table is a playable table owned by a club. Table IDs and numbers are
// unique within their club. Tables are deactivated, never deleted, while
// referenced by bookings or sessions.
type Table struct {
	ID          string `json:"id"`
	Number      int    `json:"number"`
	RatePerHour int64  `json:"ratePerHour"`
	IsActive    bool   `json:"isActive"`
	Description string `json:"description,omitempty"`
}

// Menu item categories.
const (
	MenuCategoryFood     = "food"
	MenuCategoryBeverage = "beverage"
)

// MenuItem is a food or beverage item on a club's menu.
type MenuItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	IsAvailable bool   `json:"isAvailable"`
}

// StaffMember is a staff or manager account attached to a club.
type StaffMember struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Role          string           `json:"role"` // staff or manager
	PIN           string           `json:"pin"`
	AssignedClubs []string         `json:"assignedClubs"`
	Permissions   StaffPermissions `json:"permissions"`
	CreatedAt     time.Time        `json:"createdAt"`
	IsActive      bool             `json:"isActive"`
}

// StaffPermissions controls which operations a staff member may perform.
type StaffPermissions struct {
	CanCreateBookings  bool `json:"canCreateBookings"`
	CanCancelBookings  bool `json:"canCancelBookings"`
	CanManagePayments  bool `json:"canManagePayments"`
	CanViewReports     bool `json:"canViewReports"`
	CanManageMenu      bool `json:"canManageMenu"`
	CanManageInventory bool `json:"canManageInventory"`
}

// ClubSettings holds per-club policy configuration.
type ClubSettings struct {
	BookingSettings BookingSettings         `json:"bookingSettings"`
	OperatingHours  map[string]OperatingDay `json:"operatingHours"`
}

// BookingSettings holds a club's reservation policy.
type BookingSettings struct {
	AdvanceBookingDays     int    `json:"advanceBookingDays"`
	CancellationPolicy     string `json:"cancellationPolicy"`
	RequireDeposit         bool   `json:"requireDeposit"`
	DepositAmount          int64  `json:"depositAmount"`
	AllowRecurringBookings bool   `json:"allowRecurringBookings"`
}

// OperatingDay describes opening hours for one day of the week.
type OperatingDay struct {
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// TableByID returns the club's table with the given ID, or nil.
func (c *Club) TableByID(tableID string) *Table {
	for i := range c.Tables {
		if c.Tables[i].ID == tableID {
			return &c.Tables[i]
		}
	}
	return nil
}

// TableByNumber returns the club's table with the given number, or nil.
func (c *Club) TableByNumber(number int) *Table {
	for i := range c.Tables {
		if c.Tables[i].Number == number {
			return &c.Tables[i]
		}
	}
	return nil
}

// MenuItemByID returns the club's menu item with the given ID, or nil.
func (c *Club) MenuItemByID(itemID string) *MenuItem {
	for i := range c.Menu {
		if c.Menu[i].ID == itemID {
			return &c.Menu[i]
		}
	}
	return nil
}

// StaffByID returns the club's staff member with the given ID, or nil.
func (c *Club) StaffByID(staffID string) *StaffMember {
	for i := range c.Staff {
		if c.Staff[i].ID == staffID {
			return &c.Staff[i]
		}
	}
	return nil
}

// DefaultSettings returns the settings applied to a newly created club:
// open every day with a 7-day booking window and no deposit requirement.
func DefaultSettings() ClubSettings {
	hours := make(map[string]OperatingDay, 7)
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"} {
		hours[day] = OperatingDay{IsOpen: true, OpenTime: "10:00", CloseTime: "23:00"}
	}
	return ClubSettings{
		BookingSettings: BookingSettings{
			AdvanceBookingDays:     7,
			CancellationPolicy:     "flexible",
			AllowRecurringBookings: true,
		},
		OperatingHours: hours,
	}
}
