package models

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SessionUser is the locally logged-in user. It is never validated against a server.
type SessionUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DemoUser is the identity used by the login affordance when none is configured.
var DemoUser = SessionUser{ID: "6969", Name: "Dekay"}

// Initial returns the upper-cased first letter of Name, or "U" when Name is empty.
func (u SessionUser) Initial() string {
	name := strings.TrimSpace(u.Name)
	if name == "" {
		return "U"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r))
}
