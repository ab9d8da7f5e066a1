package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/sells-group/tradelens/internal/rowsource"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func TestResolveField_CaseAndPunctuationInsensitive(t *testing.T) {
	row := rowsource.GenericRow{"Company_ID": "x"}

	v, ok := ResolveField(row, "company_id")
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	v, ok = ResolveField(rowsource.GenericRow{"companyId": "y"}, "company_id")
	assert.True(t, ok)
	assert.Equal(t, "y", v)

	v, ok = ResolveField(rowsource.GenericRow{"COMPANY-ID": "z"}, "company_id")
	assert.True(t, ok)
	assert.Equal(t, "z", v)
}

func TestResolveField_CandidateListOrderWins(t *testing.T) {
	row := rowsource.GenericRow{
		"qty":    5,
		"volume": 9,
	}
	// "quantity" is absent; "qty" is the next candidate and must win over
	// "volume" regardless of map iteration order.
	v, ok := ResolveField(row, "quantity", "qty", "volume")
	assert.True(t, ok)
	assert.Equal(t, 5, v)
}

func TestResolveField_SkipsEmptyValues(t *testing.T) {
	row := rowsource.GenericRow{
		"quantity": "",
		"qty":      nil,
		"volume":   3.0,
	}
	v, ok := ResolveField(row, "quantity", "qty", "volume")
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)
}

func TestResolveField_NoMatch(t *testing.T) {
	_, ok := ResolveField(rowsource.GenericRow{"weight": 1}, "quantity", "qty")
	assert.False(t, ok)

	_, ok = ResolveField(rowsource.GenericRow{}, "quantity")
	assert.False(t, ok)

	_, ok = ResolveField(nil, "quantity")
	assert.False(t, ok)
}

func TestResolveField_ZeroIsNotEmpty(t *testing.T) {
	v, ok := ResolveField(rowsource.GenericRow{"quantity": 0.0}, "quantity")
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "companyid", normalizeKey("Company_ID"))
	assert.Equal(t, "companyid", normalizeKey("company-id"))
	assert.Equal(t, "weightkg", normalizeKey("Weight (kg)"))
	assert.Equal(t, "", normalizeKey("___"))
}
