package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelinkhq/carelink-backend/internal/models"
)

func TestDecisionOutcomeApproved(t *testing.T) {
	status, resolves, err := decisionOutcome(models.ReportApproved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeleted, status)
	assert.True(t, resolves)
}

func TestDecisionOutcomeRejected(t *testing.T) {
	status, resolves, err := decisionOutcome(models.ReportRejected)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, status)
	assert.True(t, resolves)
}

func TestDecisionOutcomePending(t *testing.T) {
	status, resolves, err := decisionOutcome(models.ReportPending)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReportPending, status)
	assert.False(t, resolves)
}

func TestDecisionOutcomeUnknown(t *testing.T) {
	_, _, err := decisionOutcome(models.ReportStatus("ESCALATED"))
	assert.Error(t, err)
}
