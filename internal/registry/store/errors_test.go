package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Resource: "topic", ID: "t1"}
	require.Equal(t, "topic not found: t1", err.Error())

	err = &NotFoundError{Resource: "topic", ID: "1 of 3 requested", FoundIDs: []string{"a", "b"}}
	require.Equal(t, "topic not found: 1 of 3 requested (found: a, b)", err.Error())
}

func TestCorruptRecordError(t *testing.T) {
	err := &CorruptRecordError{Resource: "topic", ID: "t1", Detail: `unknown type "poll"`}
	require.Equal(t, `corrupt topic record t1: unknown type "poll"`, err.Error())
}
