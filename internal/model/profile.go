package model

import (
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/atboard/board-service/internal/markdown"
	"github.com/google/uuid"
)

// AuthToken is the caller identity used for ownership checks. Token
// issuance and verification happen upstream of this layer.
type AuthToken struct {
	User string
}

var snPattern = regexp.MustCompile(`^[a-zA-Z0-9_]{1,20}$`)

const (
	profileNameMaxRunes = 50
	profileTextMaxRunes = 3000
)

// Profile is a user-authored persona. MDText is the rendered form of Text
// and is recomputed on every mutation.
type Profile struct {
	ID     string
	User   string
	Name   string
	Text   string
	MDText string
	Date   time.Time
	Update time.Time
	SN     string
}

// ProfileAPI is the outward projection of a Profile. User is only revealed
// to the owning user.
type ProfileAPI struct {
	ID     string  `json:"id"`
	User   *string `json:"user"`
	Name   string  `json:"name"`
	Text   string  `json:"text"`
	MDText string  `json:"mdtext"`
	Date   string  `json:"date"`
	Update string  `json:"update"`
	SN     string  `json:"sn"`
}

// NewProfile validates the inputs and creates a profile owned by the
// token's user.
func NewProfile(token AuthToken, name, text, sn string, now time.Time) (*Profile, error) {
	if err := validateProfileFields(name, text, sn); err != nil {
		return nil, err
	}
	return &Profile{
		ID:     uuid.NewString(),
		User:   token.User,
		Name:   name,
		Text:   text,
		MDText: markdown.Render(text),
		Date:   now,
		Update: now,
		SN:     sn,
	}, nil
}

// ChangeData replaces the mutable fields. Only the owning user may mutate
// a profile.
func (p *Profile) ChangeData(token AuthToken, name, text, sn string, now time.Time) error {
	if token.User != p.User {
		return &ValidationError{Field: "user", Message: "profiles can only be changed by their owner"}
	}
	if err := validateProfileFields(name, text, sn); err != nil {
		return err
	}
	p.Name = name
	p.Text = text
	p.SN = sn
	p.MDText = markdown.Render(text)
	p.Update = now
	return nil
}

// ToAPI projects the profile for API responses. The user reference is
// masked unless the token belongs to the owner. MDText carries the stored
// rendered text.
func (p *Profile) ToAPI(token *AuthToken) ProfileAPI {
	var user *string
	if token != nil && token.User == p.User {
		u := p.User
		user = &u
	}
	return ProfileAPI{
		ID:     p.ID,
		User:   user,
		Name:   p.Name,
		Text:   p.Text,
		MDText: p.MDText,
		Date:   p.Date.UTC().Format(time.RFC3339),
		Update: p.Update.UTC().Format(time.RFC3339),
		SN:     p.SN,
	}
}

func validateProfileFields(name, text, sn string) error {
	if n := utf8.RuneCountInString(name); n == 0 || n > profileNameMaxRunes {
		return &ValidationError{Field: "name", Message: "name must be 1-50 characters"}
	}
	if n := utf8.RuneCountInString(text); n == 0 || n > profileTextMaxRunes {
		return &ValidationError{Field: "text", Message: "text must be 1-3000 characters"}
	}
	if !snPattern.MatchString(sn) {
		return &ValidationError{Field: "sn", Message: "sn must match [a-zA-Z0-9_]{1,20}"}
	}
	return nil
}
