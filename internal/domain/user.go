package domain

import (
	"regexp"
	"time"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail is the loose address check used by every form.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// Public returns a copy of the user without the stored password.
func (u User) Public() User {
	u.Password = ""
	return u
}

type Session struct {
	Token           string    `json:"token"`
	User            User      `json:"user"`
	IsAuthenticated bool      `json:"isAuthenticated"`
	SessionTimeout  time.Time `json:"sessionTimeout"`
}

type Contact struct {
	ID        string  `json:"id"`
	UserID    *string `json:"userId"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Subject   string  `json:"subject"`
	Message   string  `json:"message"`
	Timestamp string  `json:"timestamp"`
}
