package profile

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/tradelens/internal/rowsource"
)

// Terminal load states, surfaced to users instead of raw source errors.
var (
	// ErrNoProfileData means every entity fetch came back empty.
	ErrNoProfileData = eris.New("no profile data found")
	// ErrSourceNotConfigured means no row-source backend is configured.
	ErrSourceNotConfigured = eris.New("data connection not configured")
	// ErrSourceUnavailable wraps a fatal source failure.
	ErrSourceUnavailable = eris.New("unable to load profile right now")
)

// defaultFetchLimit bounds per-entity row pulls.
const defaultFetchLimit = 500

// Entity fetch specs: candidate tables in priority order per entity.
// Purchase history and supply chain are ordered newest-first where the
// deployment still has the date column.
var (
	overviewSpec = FetchSpec{
		Entity: "overview",
		Tables: []string{"company_overview", "company_overviews", "overview"},
		Limit:  1,
	}
	basicInfoSpec = FetchSpec{
		Entity: "basic_info",
		Tables: []string{"company_basic_info", "company_info", "companies"},
		Limit:  1,
	}
	contactsSpec = FetchSpec{
		Entity: "contacts",
		Tables: []string{"contact_persons", "contacts", "company_contacts"},
	}
	emailsSpec = FetchSpec{
		Entity: "emails",
		Tables: []string{"company_emails", "emails"},
	}
	purchasesSpec = FetchSpec{
		Entity:      "purchases",
		Tables:      []string{"purchase_history", "purchase_records", "purchases"},
		OrderColumn: "date",
	}
	supplySpec = FetchSpec{
		Entity: "supply_chain",
		Tables: []string{"supply_chain", "supply_chain_relationships", "supply_relationships"},
	}
)

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFlowLimit overrides the flow-node cap.
func WithFlowLimit(n int) LoaderOption {
	return func(l *Loader) {
		l.flowLimit = n
	}
}

// WithFetchLimit overrides the per-entity row limit.
func WithFetchLimit(n int) LoaderOption {
	return func(l *Loader) {
		l.fetchLimit = n
	}
}

// WithDedupePolicy sets how emailless contacts are handled.
func WithDedupePolicy(p DedupePolicy) LoaderOption {
	return func(l *Loader) {
		l.dedupe = p
	}
}

// Loader assembles a full company Profile from the row source. Each Load
// is an independent unit of work: fetches run concurrently, mapping and
// aggregation run synchronously afterwards, and nothing is cached across
// calls.
type Loader struct {
	fetcher    *Fetcher
	flowLimit  int
	fetchLimit int
	dedupe     DedupePolicy
}

// NewLoader creates a Loader over a row-source client.
func NewLoader(source rowsource.Client, opts ...LoaderOption) *Loader {
	l := &Loader{
		fetcher:    NewFetcher(source),
		flowLimit:  DefaultFlowLimit,
		fetchLimit: defaultFetchLimit,
		dedupe:     KeepEmailless,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches, normalizes, and aggregates one company profile. A fatal
// failure on any single fetch aborts the whole load: callers get one
// terminal error, never a partially populated profile. hsPrefix optionally
// restricts the displayed purchase rows by HS-code prefix, degrading to
// the unfiltered set (flagged in Stats) when nothing matches.
func (l *Loader) Load(ctx context.Context, companyID, hsPrefix string) (*Profile, error) {
	if companyID == "" {
		return nil, eris.New("profile: company id is required")
	}

	var (
		overviewRows, basicRows, contactRows []rowsource.GenericRow
		emailRows, purchaseRows, supplyRows  []rowsource.GenericRow
	)

	purchases := purchasesSpec
	purchases.Limit = l.fetchLimit
	supply := supplySpec
	supply.Limit = l.fetchLimit
	contacts := contactsSpec
	contacts.Limit = l.fetchLimit
	emails := emailsSpec
	emails.Limit = l.fetchLimit

	g, gctx := errgroup.WithContext(ctx)
	fetches := []struct {
		spec FetchSpec
		dst  *[]rowsource.GenericRow
	}{
		{overviewSpec, &overviewRows},
		{basicInfoSpec, &basicRows},
		{contacts, &contactRows},
		{emails, &emailRows},
		{purchases, &purchaseRows},
		{supply, &supplyRows},
	}
	for _, f := range fetches {
		g.Go(func() error {
			rows, err := l.fetcher.FetchFirstAvailable(gctx, f.spec, companyID)
			if err != nil {
				return err
			}
			*f.dst = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		zap.L().Error("profile: load aborted",
			zap.String("company_id", companyID),
			zap.Error(err),
		)
		return nil, eris.Wrap(ErrSourceUnavailable, err.Error())
	}

	p := &Profile{CompanyID: companyID}

	if len(overviewRows) > 0 {
		ov := MapOverview(overviewRows[0], companyID, 0)
		p.Overview = &ov
	}
	if len(basicRows) > 0 {
		bi := MapBasicInfo(basicRows[0], companyID, 0)
		p.BasicInfo = &bi
	}
	mapped := make([]ContactPerson, 0, len(contactRows))
	for i, row := range contactRows {
		mapped = append(mapped, MapContact(row, companyID, i))
	}
	p.Contacts = DedupeContacts(mapped, l.dedupe)

	mappedEmails := make([]CompanyEmail, 0, len(emailRows))
	for i, row := range emailRows {
		mappedEmails = append(mappedEmails, MapEmail(row, companyID, i))
	}
	p.Emails = DedupeEmails(mappedEmails)

	allPurchases := make([]PurchaseHistoryLine, 0, len(purchaseRows))
	for i, row := range purchaseRows {
		allPurchases = append(allPurchases, MapPurchase(row, companyID, i))
	}
	p.SupplyChain = make([]SupplyChainRelationship, 0, len(supplyRows))
	for i, row := range supplyRows {
		p.SupplyChain = append(p.SupplyChain, MapSupplyChain(row, companyID, i))
	}

	displayed, fallbackUsed := FilterByHSPrefix(allPurchases, hsPrefix)
	p.Purchases = displayed
	p.Stats = ComputeStats(displayed, fallbackUsed)

	subjectName := companyID
	if p.BasicInfo != nil && p.BasicInfo.Name != nil {
		subjectName = *p.BasicInfo.Name
	}
	p.ExporterFlows = ExporterFlows(p.SupplyChain, allPurchases, l.flowLimit)
	p.ImporterFlows = ImporterFlows(p.SupplyChain, allPurchases, subjectName, l.flowLimit)

	if p.Overview == nil && p.BasicInfo == nil &&
		len(p.Contacts) == 0 && len(p.Emails) == 0 &&
		len(p.Purchases) == 0 && len(p.SupplyChain) == 0 {
		return nil, ErrNoProfileData
	}

	zap.L().Info("profile: loaded",
		zap.String("company_id", companyID),
		zap.Int("contacts", len(p.Contacts)),
		zap.Int("emails", len(p.Emails)),
		zap.Int("purchases", len(p.Purchases)),
		zap.Int("supply_chain", len(p.SupplyChain)),
		zap.Bool("hs_fallback", fallbackUsed),
	)
	return p, nil
}
