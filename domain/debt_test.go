package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterStatistics_ReconcilesWhenTotalsMatch(t *testing.T) {
	stats := FilterStatistics{
		TotalProcessed:       10,
		ItemsAdded:           4,
		FilteredByScore:      3,
		FilteredByRisk:       1,
		FilteredByComplexity: 1,
		FilteredAsDuplicate:  1,
	}
	assert.True(t, stats.Reconciles())
}

func TestFilterStatistics_DoesNotReconcileWhenTotalsMismatch(t *testing.T) {
	stats := FilterStatistics{TotalProcessed: 10, ItemsAdded: 4}
	assert.False(t, stats.Reconciles())
}

func TestFilterStatistics_ReconcilesOnAllZero(t *testing.T) {
	assert.True(t, FilterStatistics{}.Reconciles())
}

func TestFilterStatistics_ReconcilesWithTestOnlyFiltered(t *testing.T) {
	stats := FilterStatistics{
		TotalProcessed:     5,
		ItemsAdded:         2,
		FilteredAsTestOnly: 3,
	}
	assert.True(t, stats.Reconciles())
}
