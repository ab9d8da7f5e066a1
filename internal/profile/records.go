package profile

// Canonical records produced by the row mappers. Numeric fields are either
// a finite number or nil, never the raw unparsed string. Every record
// carries a non-empty ID and CompanyID; when the source row lacks a natural
// key a synthetic "<entity>-<companyId>-<index>" id keeps list identity
// stable across re-fetches.

// CompanyOverview holds narrative and purchase-metric fields.
type CompanyOverview struct {
	ID                string   `json:"id"`
	CompanyID         string   `json:"company_id"`
	Overview          *string  `json:"overview"`
	PurchaseAmountUSD *float64 `json:"purchase_amount_usd"`
	PurchaseFrequency *float64 `json:"purchase_frequency"`
	GrowthRate        *float64 `json:"growth_rate"`
	ActivityLevel     *string  `json:"activity_level"`
	StabilityLevel    *string  `json:"stability_level"`
	CoreProducts      []string `json:"core_products"`
	MainSuppliers     []string `json:"main_suppliers"`
	SourceCountries   []string `json:"source_countries"`
}

// CompanyBasicInfo holds identity and location fields.
type CompanyBasicInfo struct {
	ID          string   `json:"id"`
	CompanyID   string   `json:"company_id"`
	Name        *string  `json:"name"`
	Country     *string  `json:"country"`
	Region      *string  `json:"region"`
	City        *string  `json:"city"`
	Address     *string  `json:"address"`
	Website     *string  `json:"website"`
	LinkedIn    *string  `json:"linkedin"`
	Facebook    *string  `json:"facebook"`
	Industry    *string  `json:"industry"`
	FoundedYear *string  `json:"founded_year"`
	Employees   *float64 `json:"employees"`
}

// ContactPerson is a normalized contact row.
type ContactPerson struct {
	ID             string  `json:"id"`
	CompanyID      string  `json:"company_id"`
	Name           *string `json:"name"`
	Role           *string `json:"role"`
	Department     *string `json:"department"`
	Email          *string `json:"email"`
	SecondaryEmail *string `json:"secondary_email"`
	Phone          *string `json:"phone"`
	Fax            *string `json:"fax"`
	LinkedIn       *string `json:"linkedin"`
	Twitter        *string `json:"twitter"`
	Region         *string `json:"region"`
}

// CompanyEmail is a single address with provenance.
type CompanyEmail struct {
	ID         string  `json:"id"`
	CompanyID  string  `json:"company_id"`
	Email      *string `json:"email"`
	Source     *string `json:"source"`
	Importance *string `json:"importance"`
}

// PurchaseHistoryLine is one normalized trade transaction.
type PurchaseHistoryLine struct {
	ID                 string   `json:"id"`
	CompanyID          string   `json:"company_id"`
	Date               *string  `json:"date"`
	Importer           *string  `json:"importer"`
	Exporter           *string  `json:"exporter"`
	HSCode             *string  `json:"hs_code"`
	Product            *string  `json:"product"`
	OriginCountry      *string  `json:"origin_country"`
	DestinationCountry *string  `json:"destination_country"`
	Quantity           *float64 `json:"quantity"`
	WeightKG           *float64 `json:"weight_kg"`
	UnitPriceUSD       *float64 `json:"unit_price_usd"`
	TotalValueUSD      *float64 `json:"total_value_usd"`
}

// SupplyChainRelationship is one normalized counterparty relationship.
type SupplyChainRelationship struct {
	ID               string   `json:"id"`
	CompanyID        string   `json:"company_id"`
	Exporter         *string  `json:"exporter"`
	Importer         *string  `json:"importer"`
	TradesSum        *float64 `json:"trades_sum"`
	Quantity         *float64 `json:"quantity"`
	KGWeight         *float64 `json:"kg_weight"`
	VolumeMT         *float64 `json:"volume_mt"`
	TotalPriceUSD    *float64 `json:"total_price_usd"`
	TradesRatio      *float64 `json:"trades_ratio"`
	QuantityRatio    *float64 `json:"quantity_ratio"`
	WeightRatio      *float64 `json:"weight_ratio"`
	ValueRatio       *float64 `json:"value_ratio"`
	RelationshipType *string  `json:"relationship_type"`
	RiskLevel        *string  `json:"risk_level"`
}

// FlowNode is a ranked counterparty with an aggregated magnitude, used to
// build the trading-relationship graph.
type FlowNode struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// PurchaseStats summarizes the displayed purchase-history rows.
type PurchaseStats struct {
	Records              int  `json:"records"`
	Suppliers            int  `json:"suppliers"`
	Origins              int  `json:"origins"`
	Destinations         int  `json:"destinations"`
	Products             int  `json:"products"`
	HSFilterFallbackUsed bool `json:"hs_filter_fallback_used"`
}

// Profile is the full aggregated output for one company. It is computed
// fresh per load and never cached.
type Profile struct {
	CompanyID     string                    `json:"company_id"`
	Overview      *CompanyOverview          `json:"overview"`
	BasicInfo     *CompanyBasicInfo         `json:"basic_info"`
	Contacts      []ContactPerson           `json:"contacts"`
	Emails        []CompanyEmail            `json:"emails"`
	Purchases     []PurchaseHistoryLine     `json:"purchases"`
	SupplyChain   []SupplyChainRelationship `json:"supply_chain"`
	ExporterFlows []FlowNode                `json:"exporter_flows"`
	ImporterFlows []FlowNode                `json:"importer_flows"`
	Stats         PurchaseStats             `json:"stats"`
}
