package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTopicKinds(t *testing.T) {
	require.Equal(t, KindNormal, (&NormalTopic{}).Kind())
	require.Equal(t, KindOne, (&OneTopic{}).Kind())
	require.Equal(t, KindFork, (&ForkTopic{}).Kind())
}

func TestExpirable(t *testing.T) {
	// Only time-limited kinds are subject to the staleness sweep.
	require.False(t, (&NormalTopic{}).Expirable())
	require.True(t, (&OneTopic{}).Expirable())
	require.True(t, (&ForkTopic{}).Expirable())
}

func TestNewTopicID(t *testing.T) {
	a, b := NewTopicID(), NewTopicID()
	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)
}
