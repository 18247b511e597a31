// Package user holds the minimal user projection the conversation subsystem
// needs: display names for message lists and an address for reply
// notifications. Account management lives elsewhere.
package user

import (
	"fmt"

	"helpdesk/internal/shared/authorization"
)

type User struct {
	id       uint
	username string
	email    string
	role     authorization.UserRole
}

func ReconstructUser(id uint, username, email string, role authorization.UserRole) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	return &User{
		id:       id,
		username: username,
		email:    email,
		role:     role,
	}, nil
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) Username() string {
	return u.username
}

func (u *User) Email() string {
	return u.email
}

func (u *User) Role() authorization.UserRole {
	return u.role
}
