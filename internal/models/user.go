package model

import "time"

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"size:320;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FullName     *string   `json:"full_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) Metadata() map[string]any {
	var fullName any
	if u.FullName != nil {
		fullName = *u.FullName
	}
	return map[string]any{"full_name": fullName}
}

// All lists every model the store migrates.
func All() []any {
	return []any{&User{}, &Task{}, &Offer{}}
}
