package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSweep_ReportsEndedAndOverdue(t *testing.T) {
	ended := daysAgo(1)
	future := now.Add(48 * time.Hour)

	findings := Sweep([]Assignment{
		{ProjectID: "p1", ProjectName: "Main", Number: "555-1", Start: daysAgo(10)},
		{ProjectID: "p1", ProjectName: "Main", Number: "555-2", Start: daysAgo(120)},
		{ProjectID: "p2", ProjectName: "Support", Number: "555-3", Start: daysAgo(200), End: &ended},
		{ProjectID: "p2", ProjectName: "Support", Number: "555-4", Start: daysAgo(95), End: &future},
		{ProjectID: "p2", ProjectName: "Support", Number: "555-5"},
	}, now)

	require.Len(t, findings, 3)
	require.Equal(t, FindingEnded, findings[0].Kind)
	require.Equal(t, "555-3", findings[0].Number)
	require.NotNil(t, findings[0].EndedAt)
	require.Equal(t, FindingOverdue, findings[1].Kind)
	require.Equal(t, "555-2", findings[1].Number)
	require.Equal(t, "555-4", findings[2].Number)
}

func TestSweep_EmptyInput(t *testing.T) {
	require.Empty(t, Sweep(nil, now))
}
