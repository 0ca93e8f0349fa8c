package importer

import (
	"path/filepath"
	"testing"

	"github.com/lucasgnemmi/orderflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadScheduleMatrix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agenda.xlsx")
	writeWorkbook(t, path, map[string][][]any{
		"Matriz": {
			{"DELIVERY SCHEDULE"},
			{"CODE", "NAME", "", "MON", "TUE", "WED", "THU", "FRI", "SAT", "D-2"},
			{"1001", "Acme Foods", "", "1", "", "0", "x", "", "", "1"},
			{"2002.0", " Beta Carnes ", "", "", "", "", "", "", "TRUE", ""},
			{"", "row without code is skipped", "", "1"},
		},
	})

	profiles, err := ReadScheduleMatrix(path)
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	acme := profiles[0]
	assert.Equal(t, "1001", acme.Code)
	assert.Equal(t, "Acme Foods", acme.Name)
	assert.Equal(t, domain.TriApplies, acme.Days[domain.Monday])
	assert.Equal(t, domain.TriIgnored, acme.Days[domain.Tuesday])
	assert.Equal(t, domain.TriNotApplicable, acme.Days[domain.Wednesday])
	assert.Equal(t, domain.TriApplies, acme.Days[domain.Thursday], "any non-zero value applies")
	assert.Equal(t, domain.TriApplies, acme.DMinus2)

	beta := profiles[1]
	assert.Equal(t, "2002", beta.Code, "spreadsheet .0 suffix stripped")
	assert.Equal(t, "Beta Carnes", beta.Name)
	assert.Equal(t, domain.TriApplies, beta.Days[domain.Saturday])
	assert.Equal(t, domain.TriIgnored, beta.DMinus2)
}

func TestReadScheduleMatrix_FallsBackToFirstSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agenda.xlsx")
	writeWorkbook(t, path, map[string][][]any{
		"Hoja1": {
			{"DELIVERY SCHEDULE"},
			{"CODE", "NAME"},
			{"1001", "Acme", "", "1"},
		},
	})

	profiles, err := ReadScheduleMatrix(path)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, domain.TriApplies, profiles[0].Days[domain.Monday])
}
