package types

import "time"

const (
	UserStatusActive  = "active"
	UserStatusBlocked = "blocked"

	RoleDonor     = "donor"
	RoleVolunteer = "volunteer"
	RoleAdmin     = "admin"
)

// BloodGroups lists the accepted ABO/Rh blood group labels.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// IsBloodGroup reports whether value is one of BloodGroups.
func IsBloodGroup(value string) bool {
	for _, group := range BloodGroups {
		if group == value {
			return true
		}
	}
	return false
}

// User represents a registered donor, volunteer or administrator.
type User struct {
	// ID is the unique identifier of the user document.
	ID string `json:"_id,omitempty" db:"id"`

	// Email is the unique lookup key for the user. The front end
	// identifies accounts by email, never by ID.
	Email string `json:"email" db:"email"`

	// Name is the user's display name.
	Name string `json:"name" db:"name"`

	// Photo is the URL of the user's avatar.
	Photo string `json:"photo" db:"photo"`

	// BloodGroup is one of BloodGroups, or empty when unknown.
	BloodGroup string `json:"bloodGroup" db:"blood_group"`

	// District is the name of the user's home district.
	District string `json:"district" db:"district"`

	// Upazila is the name of the user's home sub-district.
	Upazila string `json:"upazila" db:"upazila"`

	// Status is either UserStatusActive or UserStatusBlocked.
	Status string `json:"status" db:"status"`

	// Role is the user's authorization level (donor, volunteer, admin).
	Role string `json:"role" db:"role"`

	// CreatedAt is the timestamp when the user registered.
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// UserProfile holds the profile fields a user may edit on their own account.
type UserProfile struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	BloodGroup string `json:"bloodGroup"`
	Photo      string `json:"photo"`
	Upazila    string `json:"upazila"`
	District   string `json:"district"`
}

// UserSearch filters users by location and blood group. Empty fields
// match any value.
type UserSearch struct {
	BloodGroup string
	District   string
	Upazila    string
}
