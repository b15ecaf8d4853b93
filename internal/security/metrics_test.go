package security

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestParseMetricsLabels(t *testing.T) {
	labels, err := ParseMetricsLabels("service=board-service,env=test")
	require.NoError(t, err)
	require.Equal(t, prometheus.Labels{"service": "board-service", "env": "test"}, labels)

	labels, err = ParseMetricsLabels("")
	require.NoError(t, err)
	require.Nil(t, labels)
}

func TestParseMetricsLabelsEnvExpansion(t *testing.T) {
	t.Setenv("BOARD_TEST_ENV", "staging")
	labels, err := ParseMetricsLabels("env=${BOARD_TEST_ENV}")
	require.NoError(t, err)
	require.Equal(t, prometheus.Labels{"env": "staging"}, labels)
}

func TestParseMetricsLabelsRejectsMalformed(t *testing.T) {
	_, err := ParseMetricsLabels("no-equals-sign")
	require.Error(t, err)

	_, err = ParseMetricsLabels("bad key=value")
	require.Error(t, err)
}
