package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/tradelens/internal/rowsource"
)

func TestMapPurchase_AliasResolution(t *testing.T) {
	row := rowsource.GenericRow{
		"Company_ID": "c-1",
		"Qty":        "1,200",
		"WeightKG":   "450.5",
		"HSCode":     "8471",
		"Supplier":   "Acme Exports",
		"Buyer":      "Bolt Imports",
		"Amount":     25000,
	}

	line := MapPurchase(row, "fallback-id", 3)
	assert.Equal(t, "c-1", line.CompanyID)
	require.NotNil(t, line.Quantity)
	assert.Equal(t, 1200.0, *line.Quantity)
	require.NotNil(t, line.WeightKG)
	assert.Equal(t, 450.5, *line.WeightKG)
	assert.Equal(t, "8471", *line.HSCode)
	assert.Equal(t, "Acme Exports", *line.Exporter)
	assert.Equal(t, "Bolt Imports", *line.Importer)
	assert.Equal(t, 25000.0, *line.TotalValueUSD)
}

func TestMapPurchase_SyntheticIDWhenNoNaturalKey(t *testing.T) {
	row := rowsource.GenericRow{"qty": 5}
	line := MapPurchase(row, "c-7", 2)
	assert.Equal(t, "purchase-c-7-2", line.ID)
	assert.Equal(t, "c-7", line.CompanyID)
}

func TestMapPurchase_NaturalKeyWins(t *testing.T) {
	row := rowsource.GenericRow{"ID": 991, "company_id": "c-1"}
	line := MapPurchase(row, "c-1", 0)
	assert.Equal(t, "991", line.ID)
}

func TestMapPurchase_Pure(t *testing.T) {
	row := rowsource.GenericRow{"qty": "10", "hs_code": "72"}
	a := MapPurchase(row, "c-1", 4)
	b := MapPurchase(row, "c-1", 4)
	assert.Equal(t, a, b)
	// Input row untouched.
	assert.Equal(t, rowsource.GenericRow{"qty": "10", "hs_code": "72"}, row)
}

func TestMapPurchase_AbsentFieldsAreNil(t *testing.T) {
	line := MapPurchase(rowsource.GenericRow{"irrelevant": "x"}, "c-1", 0)
	assert.Nil(t, line.Date)
	assert.Nil(t, line.Quantity)
	assert.Nil(t, line.WeightKG)
	assert.Nil(t, line.TotalValueUSD)
	assert.Nil(t, line.HSCode)
}

func TestMapPurchase_UnparsableNumberIsNil(t *testing.T) {
	line := MapPurchase(rowsource.GenericRow{"quantity": "n/a"}, "c-1", 0)
	assert.Nil(t, line.Quantity)
}

func TestMapOverview(t *testing.T) {
	row := rowsource.GenericRow{
		"Description":      "importer of machine parts",
		"purchaseAmount":   "1,500,000",
		"Growth":           "12.5",
		"activity_level":   "high",
		"main_products":    "bearings, gears",
		"Top_Suppliers":    []any{"Acme", "Globex"},
		"origin_countries": "DE; CN",
	}
	ov := MapOverview(row, "c-2", 0)
	assert.Equal(t, "c-2", ov.CompanyID)
	assert.Equal(t, "overview-c-2-0", ov.ID)
	assert.Equal(t, "importer of machine parts", *ov.Overview)
	assert.Equal(t, 1500000.0, *ov.PurchaseAmountUSD)
	assert.Equal(t, 12.5, *ov.GrowthRate)
	assert.Equal(t, "high", *ov.ActivityLevel)
	assert.Equal(t, []string{"bearings", "gears"}, ov.CoreProducts)
	assert.Equal(t, []string{"Acme", "Globex"}, ov.MainSuppliers)
	assert.Equal(t, []string{"DE", "CN"}, ov.SourceCountries)
}

func TestMapBasicInfo(t *testing.T) {
	row := rowsource.GenericRow{
		"CompanyName": "Bolt Imports GmbH",
		"Country":     "Germany",
		"URL":         "https://bolt.example",
		"employees":   "240",
	}
	bi := MapBasicInfo(row, "c-3", 0)
	assert.Equal(t, "Bolt Imports GmbH", *bi.Name)
	assert.Equal(t, "Germany", *bi.Country)
	assert.Equal(t, "https://bolt.example", *bi.Website)
	assert.Equal(t, 240.0, *bi.Employees)
}

func TestMapContact(t *testing.T) {
	row := rowsource.GenericRow{
		"Full_Name":  "Dana Keller",
		"Job Title":  "Head of Procurement",
		"E-Mail":     "dana@bolt.example",
		"phone":      "+49 30 1234",
		"department": "Purchasing",
	}
	c := MapContact(row, "c-3", 1)
	assert.Equal(t, "Dana Keller", *c.Name)
	assert.Equal(t, "Head of Procurement", *c.Role)
	assert.Equal(t, "dana@bolt.example", *c.Email)
	assert.Equal(t, "Purchasing", *c.Department)
	assert.Equal(t, "contact-c-3-1", c.ID)
}

func TestMapEmail(t *testing.T) {
	row := rowsource.GenericRow{
		"Email":      "info@bolt.example",
		"Source":     "website",
		"Importance": "primary",
	}
	e := MapEmail(row, "c-3", 0)
	assert.Equal(t, "info@bolt.example", *e.Email)
	assert.Equal(t, "website", *e.Source)
	assert.Equal(t, "primary", *e.Importance)
}

func TestMapSupplyChain(t *testing.T) {
	row := rowsource.GenericRow{
		"Exporter_Name": "Acme Exports",
		"importer":      "Bolt Imports",
		"trades_sum":    "34",
		"kg_weight":     "12,000",
		"risk":          "low",
	}
	r := MapSupplyChain(row, "c-3", 0)
	assert.Equal(t, "Acme Exports", *r.Exporter)
	assert.Equal(t, "Bolt Imports", *r.Importer)
	assert.Equal(t, 34.0, *r.TradesSum)
	assert.Equal(t, 12000.0, *r.KGWeight)
	assert.Equal(t, "low", *r.RiskLevel)
	assert.Nil(t, r.VolumeMT)
}
