package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/tradelens/internal/export"
)

var (
	exportOut string
	exportHS  string
)

var exportCmd = &cobra.Command{
	Use:   "export <company-id>",
	Short: "Export a company profile as an XLSX workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		src, err := openSource(ctx, cfg.Source)
		if err != nil {
			return err
		}
		defer src.Close()

		p, err := newLoader(src).Load(ctx, args[0], exportHS)
		if err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			out = "profile-" + p.CompanyID + ".xlsx"
		}

		f, err := os.Create(out)
		if err != nil {
			return eris.Wrap(err, "export: create output file")
		}
		defer f.Close()

		if err := export.WriteWorkbook(p, f); err != nil {
			return err
		}

		zap.L().Info("export written",
			zap.String("company_id", p.CompanyID),
			zap.String("path", out),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (default profile-<id>.xlsx)")
	exportCmd.Flags().StringVar(&exportHS, "hs", "", "HS code prefix filter")
	rootCmd.AddCommand(exportCmd)
}
