package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVisible(t *testing.T) {
	require.True(t, Visible(PlanGroup, PlanGroup))
	require.True(t, Visible(PlanGroup, PlanIndividual))
	require.True(t, Visible(PlanIndividual, PlanIndividual))
	require.False(t, Visible(PlanIndividual, PlanGroup))
}
