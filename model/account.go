package model

// Account is an administrator login. Metadata plays the part of the auth
// provider's user metadata and is merged with the profiles row on read.
type Account struct {
	DTO
	Username string            `gorm:"uniqueIndex;not null" json:"username"`
	Password string            `gorm:"not null" json:"-"`
	Email    string            `gorm:"size:255" json:"email"`
	Active   bool              `gorm:"not null;default:true" json:"active"`
	Role     string            `gorm:"size:20;not null" json:"role"`
	Metadata map[string]string `gorm:"serializer:json;type:text" json:"metadata"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
	RepeatPassword  string `json:"repeatPassword" validate:"required,eqfield=NewPassword"`
}
