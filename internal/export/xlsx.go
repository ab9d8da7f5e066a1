// Package export renders an aggregated profile as an XLSX workbook for
// back-office download.
package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/tradelens/internal/profile"
)

// WriteWorkbook writes the profile as a multi-sheet workbook. Nil numeric
// fields render as empty cells, never as zero.
func WriteWorkbook(p *profile.Profile, w io.Writer) error {
	if p == nil {
		return eris.New("export: nil profile")
	}

	f := xlsx.NewFile()

	if err := addSummarySheet(f, p); err != nil {
		return err
	}
	if err := addPurchaseSheet(f, p.Purchases); err != nil {
		return err
	}
	if err := addSupplySheet(f, p.SupplyChain); err != nil {
		return err
	}
	if err := addFlowSheet(f, "Top Exporters", p.ExporterFlows); err != nil {
		return err
	}
	if err := addFlowSheet(f, "Top Importers", p.ImporterFlows); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write workbook")
	}
	return nil
}

func addSummarySheet(f *xlsx.File, p *profile.Profile) error {
	sheet, err := f.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "export: add summary sheet")
	}

	addKV := func(key, value string) {
		row := sheet.AddRow()
		row.AddCell().Value = key
		row.AddCell().Value = value
	}
	addKVInt := func(key string, value int) {
		row := sheet.AddRow()
		row.AddCell().Value = key
		row.AddCell().SetInt(value)
	}

	addKV("Company ID", p.CompanyID)
	if p.BasicInfo != nil && p.BasicInfo.Name != nil {
		addKV("Company Name", *p.BasicInfo.Name)
	}
	addKVInt("Purchase Records", p.Stats.Records)
	addKVInt("Suppliers", p.Stats.Suppliers)
	addKVInt("Origin Countries", p.Stats.Origins)
	addKVInt("Destination Countries", p.Stats.Destinations)
	addKVInt("Products", p.Stats.Products)
	if p.Stats.HSFilterFallbackUsed {
		addKV("Note", "HS filter matched no rows; full history shown")
	}
	return nil
}

func addPurchaseSheet(f *xlsx.File, lines []profile.PurchaseHistoryLine) error {
	sheet, err := f.AddSheet("Purchase History")
	if err != nil {
		return eris.Wrap(err, "export: add purchase sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{
		"Date", "Importer", "Exporter", "HS Code", "Product",
		"Origin", "Destination", "Quantity", "Weight (kg)", "Unit Price (USD)", "Total Value (USD)",
	} {
		header.AddCell().Value = h
	}

	for _, l := range lines {
		row := sheet.AddRow()
		setText(row, l.Date)
		setText(row, l.Importer)
		setText(row, l.Exporter)
		setText(row, l.HSCode)
		setText(row, l.Product)
		setText(row, l.OriginCountry)
		setText(row, l.DestinationCountry)
		setNumber(row, l.Quantity)
		setNumber(row, l.WeightKG)
		setNumber(row, l.UnitPriceUSD)
		setNumber(row, l.TotalValueUSD)
	}
	return nil
}

func addSupplySheet(f *xlsx.File, rels []profile.SupplyChainRelationship) error {
	sheet, err := f.AddSheet("Supply Chain")
	if err != nil {
		return eris.Wrap(err, "export: add supply sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{
		"Exporter", "Importer", "Trades", "Quantity", "Weight (kg)",
		"Volume (MT)", "Total Price (USD)", "Relationship", "Risk",
	} {
		header.AddCell().Value = h
	}

	for _, r := range rels {
		row := sheet.AddRow()
		setText(row, r.Exporter)
		setText(row, r.Importer)
		setNumber(row, r.TradesSum)
		setNumber(row, r.Quantity)
		setNumber(row, r.KGWeight)
		setNumber(row, r.VolumeMT)
		setNumber(row, r.TotalPriceUSD)
		setText(row, r.RelationshipType)
		setText(row, r.RiskLevel)
	}
	return nil
}

func addFlowSheet(f *xlsx.File, name string, flows []profile.FlowNode) error {
	sheet, err := f.AddSheet(name)
	if err != nil {
		return eris.Wrapf(err, "export: add sheet %s", name)
	}

	header := sheet.AddRow()
	header.AddCell().Value = "Counterparty"
	header.AddCell().Value = "Value"

	for _, n := range flows {
		row := sheet.AddRow()
		row.AddCell().Value = n.Name
		row.AddCell().SetFloat(n.Value)
	}
	return nil
}

func setText(row *xlsx.Row, v *string) {
	cell := row.AddCell()
	if v != nil {
		cell.Value = *v
	}
}

func setNumber(row *xlsx.Row, v *float64) {
	cell := row.AddCell()
	if v != nil {
		cell.SetFloat(*v)
	}
}
