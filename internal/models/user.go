package models

// UserDB represents a user record in the database
type UserDB struct {
	UserID    int64  `json:"id" db:"id"`                 // Primary key
	Name      string `json:"name" db:"name"`             // Display name
	Email     string `json:"email" db:"email"`           // Unique email
	Password  string `json:"-" db:"password"`            // Bcrypt hash, never serialized
	CreatedAt string `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt string `json:"updated_at" db:"updated_at"` // Last update timestamp
}

// PublicUser is the user shape returned to clients after register/login.
type PublicUser struct {
	UserID int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Public strips the credential fields from a user row.
func (u *UserDB) Public() PublicUser {
	return PublicUser{
		UserID: u.UserID,
		Name:   u.Name,
		Email:  u.Email,
	}
}
