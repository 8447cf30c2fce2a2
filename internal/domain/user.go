package domain

import "time"

// User описывает зарегистрированного покупателя
type User struct {
	ID           int64
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	CreatedAt    time.Time
}

func NewUser(username, email, firstName, lastName, passwordHash string) *User {
	return &User{
		Username:     username,
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: passwordHash,
	}
}
