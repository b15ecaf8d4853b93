package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var profileNow = time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)

func TestNewProfile(t *testing.T) {
	p, err := NewProfile(AuthToken{User: "u1"}, "alice", "hello **world**", "alice_01", profileNow)
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	require.Equal(t, "u1", p.User)
	require.Equal(t, "hello **world**", p.Text)
	require.Contains(t, p.MDText, "<strong>world</strong>")
	require.Equal(t, profileNow, p.Date)
	require.Equal(t, profileNow, p.Update)
}

func TestNewProfileValidation(t *testing.T) {
	cases := []struct {
		name, pname, text, sn, field string
	}{
		{"empty name", "", "text", "sn", "name"},
		{"name too long", strings.Repeat("あ", 51), "text", "sn", "name"},
		{"empty text", "alice", "", "sn", "text"},
		{"text too long", "alice", strings.Repeat("x", 3001), "sn", "text"},
		{"empty sn", "alice", "text", "", "sn"},
		{"sn too long", "alice", "text", strings.Repeat("a", 21), "sn"},
		{"sn bad chars", "alice", "text", "bad-sn!", "sn"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewProfile(AuthToken{User: "u1"}, tc.pname, tc.text, tc.sn, profileNow)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestChangeData(t *testing.T) {
	p, err := NewProfile(AuthToken{User: "u1"}, "alice", "old", "alice_01", profileNow)
	require.NoError(t, err)

	later := profileNow.Add(time.Hour)
	require.NoError(t, p.ChangeData(AuthToken{User: "u1"}, "alice2", "new *text*", "alice_02", later))
	require.Equal(t, "alice2", p.Name)
	require.Equal(t, "new *text*", p.Text)
	require.Contains(t, p.MDText, "<em>text</em>")
	require.Equal(t, "alice_02", p.SN)
	require.Equal(t, later, p.Update)
	require.Equal(t, profileNow, p.Date)
}

func TestChangeDataOwnerOnly(t *testing.T) {
	p, err := NewProfile(AuthToken{User: "u1"}, "alice", "text", "alice_01", profileNow)
	require.NoError(t, err)

	err = p.ChangeData(AuthToken{User: "u2"}, "mallory", "text", "alice_01", profileNow)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "user", verr.Field)
	require.Equal(t, "alice", p.Name)
}

func TestToAPI(t *testing.T) {
	p, err := NewProfile(AuthToken{User: "u1"}, "alice", "hello", "alice_01", profileNow)
	require.NoError(t, err)

	owner := p.ToAPI(&AuthToken{User: "u1"})
	require.NotNil(t, owner.User)
	require.Equal(t, "u1", *owner.User)
	require.Equal(t, p.MDText, owner.MDText)
	require.Equal(t, "2026-08-01T09:30:00Z", owner.Date)

	// Anyone else, or no token at all, never sees the owning user.
	require.Nil(t, p.ToAPI(&AuthToken{User: "u2"}).User)
	require.Nil(t, p.ToAPI(nil).User)
}
