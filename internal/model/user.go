package model

import "time"

// User roles.
const (
	RoleOwner  = "owner"
	RoleStaff  = "staff"
	RolePlayer = "player"
)

// User is a registered account: an owner, a staff member, or a player.
// Credential fields are role-dependent: owners log in with a password,
// staff with a PIN, players with mobile number plus PIN.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	Password      string    `json:"password,omitempty"`
	PIN           string    `json:"pin,omitempty"`
	Mobile        string    `json:"mobile,omitempty"`
	AssignedClubs []string  `json:"assignedClubs,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// AuthSession is the explicit logged-in context passed to operations that
// need to know who is acting. There is no module-level current user.
type AuthSession struct {
	UserID         string    `json:"userId"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	SelectedClubID string    `json:"selectedClubId,omitempty"`
	LoggedInAt     time.Time `json:"loggedInAt"`
}
