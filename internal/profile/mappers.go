package profile

import "github.com/sells-group/tradelens/internal/rowsource"

// Alias lists reflect every field name observed across deployments of the
// data service, in priority order. Resolution is case- and punctuation-
// insensitive, so "Company_ID" and "companyId" both hit "company_id".

var (
	companyIDAliases = []string{"company_id", "companyid", "company", "cid"}

	overviewIDAliases = []string{"id", "overview_id", "uuid"}
	basicIDAliases    = []string{"id", "info_id", "uuid"}
	contactIDAliases  = []string{"id", "contact_id", "uuid"}
	emailIDAliases    = []string{"id", "email_id", "uuid"}
	purchaseIDAliases = []string{"id", "record_id", "transaction_id", "uuid"}
	supplyIDAliases   = []string{"id", "relation_id", "relationship_id", "uuid"}
)

// resolveCompanyID extracts the company key from the row, falling back to
// the id the caller requested so every record stays attributable.
func resolveCompanyID(row rowsource.GenericRow, fallback string) string {
	if s := textValue(row, companyIDAliases...); s != nil {
		return *s
	}
	return fallback
}

// recordID resolves the row's natural key, or derives the synthetic
// "<entity>-<companyId>-<index>" id when none is present.
func recordID(row rowsource.GenericRow, idAliases []string, entity, companyID string, idx int) string {
	if s := textValue(row, idAliases...); s != nil {
		return *s
	}
	return syntheticID(entity, companyID, idx)
}

// MapOverview assembles a CompanyOverview from a raw row. Pure: the input
// row is never mutated and absent fields simply map to nil.
func MapOverview(row rowsource.GenericRow, companyID string, idx int) CompanyOverview {
	cid := resolveCompanyID(row, companyID)
	return CompanyOverview{
		ID:                recordID(row, overviewIDAliases, "overview", cid, idx),
		CompanyID:         cid,
		Overview:          textValue(row, "overview", "description", "company_overview", "summary"),
		PurchaseAmountUSD: numberValue(row, "purchase_amount", "purchase_amount_usd", "total_purchase", "purchase_value"),
		PurchaseFrequency: numberValue(row, "purchase_frequency", "frequency", "purchase_count"),
		GrowthRate:        numberValue(row, "growth_rate", "growth", "yoy_growth"),
		ActivityLevel:     textValue(row, "activity_level", "activity", "active_level"),
		StabilityLevel:    textValue(row, "stability_level", "stability"),
		CoreProducts:      listValue(row, "core_products", "main_products", "products"),
		MainSuppliers:     listValue(row, "main_suppliers", "top_suppliers", "suppliers"),
		SourceCountries:   listValue(row, "source_countries", "origin_countries", "countries"),
	}
}

// MapBasicInfo assembles a CompanyBasicInfo from a raw row.
func MapBasicInfo(row rowsource.GenericRow, companyID string, idx int) CompanyBasicInfo {
	cid := resolveCompanyID(row, companyID)
	return CompanyBasicInfo{
		ID:          recordID(row, basicIDAliases, "basic", cid, idx),
		CompanyID:   cid,
		Name:        textValue(row, "company_name", "name", "legal_name"),
		Country:     textValue(row, "country", "country_name", "nation"),
		Region:      textValue(row, "region", "state", "province"),
		City:        textValue(row, "city", "town"),
		Address:     textValue(row, "address", "street_address", "addr"),
		Website:     textValue(row, "website", "url", "homepage", "web"),
		LinkedIn:    textValue(row, "linkedin", "linkedin_url"),
		Facebook:    textValue(row, "facebook", "facebook_url"),
		Industry:    textValue(row, "industry", "sector"),
		FoundedYear: textValue(row, "founded_year", "founded", "established"),
		Employees:   numberValue(row, "employees", "employee_count", "staff_count"),
	}
}

// MapContact assembles a ContactPerson from a raw row.
func MapContact(row rowsource.GenericRow, companyID string, idx int) ContactPerson {
	cid := resolveCompanyID(row, companyID)
	return ContactPerson{
		ID:             recordID(row, contactIDAliases, "contact", cid, idx),
		CompanyID:      cid,
		Name:           textValue(row, "name", "contact_name", "full_name", "person_name"),
		Role:           textValue(row, "role", "title", "job_title", "position"),
		Department:     textValue(row, "department", "dept"),
		Email:          textValue(row, "email", "email_address", "mail"),
		SecondaryEmail: textValue(row, "secondary_email", "email2", "alt_email"),
		Phone:          textValue(row, "phone", "phone_number", "tel", "mobile"),
		Fax:            textValue(row, "fax", "fax_number"),
		LinkedIn:       textValue(row, "linkedin", "linkedin_url"),
		Twitter:        textValue(row, "twitter", "twitter_handle", "x_handle"),
		Region:         textValue(row, "region", "location", "country"),
	}
}

// MapEmail assembles a CompanyEmail from a raw row.
func MapEmail(row rowsource.GenericRow, companyID string, idx int) CompanyEmail {
	cid := resolveCompanyID(row, companyID)
	return CompanyEmail{
		ID:         recordID(row, emailIDAliases, "email", cid, idx),
		CompanyID:  cid,
		Email:      textValue(row, "email", "email_address", "mail"),
		Source:     textValue(row, "source", "origin", "found_via"),
		Importance: textValue(row, "importance", "priority", "rank"),
	}
}

// MapPurchase assembles a PurchaseHistoryLine from a raw row.
func MapPurchase(row rowsource.GenericRow, companyID string, idx int) PurchaseHistoryLine {
	cid := resolveCompanyID(row, companyID)
	return PurchaseHistoryLine{
		ID:                 recordID(row, purchaseIDAliases, "purchase", cid, idx),
		CompanyID:          cid,
		Date:               textValue(row, "date", "trade_date", "purchase_date", "transaction_date"),
		Importer:           textValue(row, "importer", "importer_name", "buyer"),
		Exporter:           textValue(row, "exporter", "exporter_name", "supplier", "seller"),
		HSCode:             textValue(row, "hs_code", "hscode", "hs", "tariff_code"),
		Product:            textValue(row, "product", "product_name", "goods", "description"),
		OriginCountry:      textValue(row, "origin_country", "origin", "export_country"),
		DestinationCountry: textValue(row, "destination_country", "destination", "import_country"),
		Quantity:           numberValue(row, "quantity", "qty", "volume"),
		WeightKG:           numberValue(row, "weight_kg", "weightkg", "weight", "kg"),
		UnitPriceUSD:       numberValue(row, "unit_price", "unit_price_usd", "price_per_unit"),
		TotalValueUSD:      numberValue(row, "total_value", "total_value_usd", "total_price", "value_usd", "amount"),
	}
}

// MapSupplyChain assembles a SupplyChainRelationship from a raw row.
func MapSupplyChain(row rowsource.GenericRow, companyID string, idx int) SupplyChainRelationship {
	cid := resolveCompanyID(row, companyID)
	return SupplyChainRelationship{
		ID:               recordID(row, supplyIDAliases, "supply", cid, idx),
		CompanyID:        cid,
		Exporter:         textValue(row, "exporter", "exporter_name", "supplier", "supplier_name"),
		Importer:         textValue(row, "importer", "importer_name", "buyer", "buyer_name"),
		TradesSum:        numberValue(row, "trades_sum", "trade_count", "trades"),
		Quantity:         numberValue(row, "quantity", "qty", "volume"),
		KGWeight:         numberValue(row, "kg_weight", "weight_kg", "weight"),
		VolumeMT:         numberValue(row, "volume_mt", "mt_volume", "tonnage"),
		TotalPriceUSD:    numberValue(row, "total_price_usd", "total_price", "total_value", "value_usd"),
		TradesRatio:      numberValue(row, "trades_ratio", "trade_share"),
		QuantityRatio:    numberValue(row, "quantity_ratio", "qty_share"),
		WeightRatio:      numberValue(row, "weight_ratio", "weight_share"),
		ValueRatio:       numberValue(row, "value_ratio", "value_share"),
		RelationshipType: textValue(row, "relationship_type", "relation_type", "type"),
		RiskLevel:        textValue(row, "risk_level", "risk"),
	}
}
