package pipeline

import (
	"testing"

	"github.com/lucasgnemmi/orderflow/internal/domain"
	"github.com/lucasgnemmi/orderflow/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestValidateSKUs(t *testing.T) {
	lines := []domain.OrderLine{
		testutil.NewTestLine("30797", "SKU-1"),
		testutil.NewTestLine("30797", "SKU-404"),
	}
	master := map[string]bool{"SKU-1": true}

	valid, errs := ValidateSKUs(lines, master)
	assert.Len(t, valid, 1)
	assert.Equal(t, "SKU-1", valid[0].SKU)

	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0].Observation, domain.ReasonMissingProduct)
}

func TestValidateSKUs_EmptyMasterPassesAll(t *testing.T) {
	lines := []domain.OrderLine{
		testutil.NewTestLine("30797", "SKU-1"),
		testutil.NewTestLine("30797", "SKU-2"),
	}

	valid, errs := ValidateSKUs(lines, map[string]bool{})
	assert.Len(t, valid, 2)
	assert.Empty(t, errs)
}
