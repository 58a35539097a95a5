package model

import (
	"math/rand"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Palette holds the fallback badge colors offered for new members and tasks.
var Palette = []string{
	"#FF6B6B",
	"#4ECDC4",
	"#45B7D1",
	"#FFA07A",
	"#98D8C8",
	"#F7DC6F",
	"#BB8FCE",
	"#85C1E2",
}

func RandomColor() string {
	return Palette[rand.Intn(len(Palette))]
}

// TeamMember is someone tasks can be assigned to. Avatar holds inline image
// data and is empty when the member has none.
type TeamMember struct {
	ID     string
	Name   string
	Role   string
	Avatar string
	Color  string
}

func (m TeamMember) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

func (m TeamMember) Initials() string {
	return Initials(m.Name)
}

// MemberPatch carries a partial update. The identifier cannot be patched.
// An Avatar pointing at "" removes the avatar.
type MemberPatch struct {
	Name   *string
	Role   *string
	Avatar *string
	Color  *string
}

func (p MemberPatch) Apply(m TeamMember) TeamMember {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Role != nil {
		m.Role = *p.Role
	}
	if p.Avatar != nil {
		m.Avatar = *p.Avatar
	}
	if p.Color != nil {
		m.Color = *p.Color
	}
	return m
}

// Initials takes the first letter of the first two words of name.
func Initials(name string) string {
	var b strings.Builder
	n := 0
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
		n++
		if n == 2 {
			break
		}
	}
	return b.String()
}
