package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/tradelens/internal/profile"
)

var (
	profileFormat string
	profileHS     string
)

var profileCmd = &cobra.Command{
	Use:   "profile <company-id>",
	Short: "Load and print a company profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		src, err := openSource(ctx, cfg.Source)
		if err != nil {
			return err
		}
		defer src.Close()

		p, err := newLoader(src).Load(ctx, args[0], profileHS)
		if err != nil {
			return err
		}

		switch profileFormat {
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(p)
		case "yaml":
			return yaml.NewEncoder(os.Stdout).Encode(p)
		case "table":
			printProfileTable(p)
			return nil
		default:
			return eris.Errorf("unknown format %q", profileFormat)
		}
	},
}

func printProfileTable(p *profile.Profile) {
	en := message.NewPrinter(language.English)

	fmt.Printf("Company: %s\n", p.CompanyID)
	if p.BasicInfo != nil && p.BasicInfo.Name != nil {
		fmt.Printf("Name:    %s\n", *p.BasicInfo.Name)
	}
	if p.Overview != nil && p.Overview.PurchaseAmountUSD != nil {
		en.Printf("Annual purchases (USD): %.0f\n", *p.Overview.PurchaseAmountUSD)
	}

	en.Printf("\nRecords: %d   Suppliers: %d   Origins: %d   Destinations: %d   Products: %d\n",
		p.Stats.Records, p.Stats.Suppliers, p.Stats.Origins, p.Stats.Destinations, p.Stats.Products)
	if p.Stats.HSFilterFallbackUsed {
		fmt.Println("(HS filter matched no rows; showing full history)")
	}

	if len(p.ExporterFlows) > 0 {
		fmt.Println("\nTop exporters:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, n := range p.ExporterFlows {
			en.Fprintf(w, "  %s\t%.2f\n", n.Name, n.Value)
		}
		w.Flush()
	}
	if len(p.ImporterFlows) > 0 {
		fmt.Println("\nOther importers:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, n := range p.ImporterFlows {
			en.Fprintf(w, "  %s\t%.2f\n", n.Name, n.Value)
		}
		w.Flush()
	}

	if len(p.Contacts) > 0 {
		fmt.Println("\nContacts:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, c := range p.Contacts {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", deref(c.Name), deref(c.Email), deref(c.Role))
		}
		w.Flush()
	}

	if len(p.Purchases) > 0 {
		fmt.Println("\nPurchase history:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "  DATE\tEXPORTER\tHS\tPRODUCT\tQTY")
		for _, l := range p.Purchases {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n",
				deref(l.Date), deref(l.Exporter), deref(l.HSCode), deref(l.Product), derefNum(l.Quantity))
		}
		w.Flush()
	}
}

func deref(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}

func derefNum(v *float64) string {
	if v == nil {
		return "-"
	}
	return message.NewPrinter(language.English).Sprintf("%.2f", *v)
}

func init() {
	profileCmd.Flags().StringVar(&profileFormat, "format", "table", "output format: table, json, or yaml")
	profileCmd.Flags().StringVar(&profileHS, "hs", "", "HS code prefix filter")
	rootCmd.AddCommand(profileCmd)
}
