package models

import "time"

// User represents an account entity exposed by the accounts API.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the internal unique identifier of the user,
	// assigned by the persistence layer.
	ID int64 `json:"id"`

	// Name is the unique login identifier of the user.
	// Used both for display and during authentication.
	Name string `json:"name"`

	// Email is the contact e-mail address of the user.
	Email string `json:"email"`

	// Phone is an optional contact phone number.
	Phone string `json:"phone,omitempty"`

	// Locked marks an account that is not allowed to log in.
	// Locked users still appear in listings.
	Locked bool `json:"locked"`

	// PasswordHash stores the PBKDF2-SHA256 encoding of the user's
	// password, or the empty string for accounts without credentials.
	// It MUST never be serialized to JSON.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"create_time"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserPatch describes a partial update of a user record. Nil fields are
// left untouched; non-nil fields replace the stored value.
type UserPatch struct {
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
	Locked   *bool   `json:"locked"`
}

// IsEmpty reports whether the patch carries no changes at all.
func (p UserPatch) IsEmpty() bool {
	return p.Email == nil && p.Phone == nil && p.Password == nil && p.Locked == nil
}
