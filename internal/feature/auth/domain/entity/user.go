// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
// Besides the authentication credentials it carries the investment profile
// collected at signup, used to personalize content elsewhere in the app.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// Plaintext passwords are never stored.
	Password string `gorm:"size:255;not null"`

	// FullName is the display name collected at signup.
	FullName string `gorm:"size:255;not null"`

	// Investment profile fields collected at signup, all optional.
	Country           string `gorm:"size:100"`
	InvestmentGoals   string `gorm:"size:100"`
	RiskTolerance     string `gorm:"size:50"`
	PreferredIndustry string `gorm:"size:100"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
