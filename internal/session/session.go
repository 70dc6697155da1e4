// Package session carries who is making a request. It is resolved once per
// request by middleware and passed explicitly to the code that needs it.
package session

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const contextKey = "session"

type Session struct {
	UserID   uint   `json:"userId,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	LoggedIn bool   `json:"loggedIn"`
}

func Guest() Session {
	return Session{}
}

func ForUser(id uint, name, email string) Session {
	return Session{UserID: id, Name: name, Email: email, LoggedIn: true}
}

// FirstName is used for greetings. It falls back to the email local part.
func (s Session) FirstName() string {
	if f := strings.Fields(s.Name); len(f) > 0 {
		return f[0]
	}
	if at := strings.IndexByte(s.Email, '@'); at > 0 {
		return s.Email[:at]
	}
	return ""
}

// Initials are the first letters of each name part, as shown in the avatar.
func (s Session) Initials() string {
	var b strings.Builder
	for _, part := range strings.Fields(s.Name) {
		b.WriteString(strings.ToUpper(string([]rune(part)[:1])))
	}
	return b.String()
}

// OwnerID is the user id for logged in sessions and 0 for guests.
func (s Session) OwnerID() uint {
	if !s.LoggedIn {
		return 0
	}
	return s.UserID
}

func Set(c *gin.Context, s Session) {
	c.Set(contextKey, s)
}

// FromContext returns the request session, or a guest session when none
// was set.
func FromContext(c *gin.Context) Session {
	v, ok := c.Get(contextKey)
	if !ok {
		return Guest()
	}
	s, ok := v.(Session)
	if !ok {
		return Guest()
	}
	return s
}
