package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/pocketbase/pocketbase"
	"github.com/spf13/cobra"

	"billgenerator/billing"
	"billgenerator/services"
)

type generateOptions struct {
	workbook   string
	configPath string
	outDir     string
	baseName   string
	formats    []string
	merge      bool
	zip        bool
}

// Register adds the bill commands to the application's root command.
func Register(app *pocketbase.PocketBase) {
	app.RootCmd.AddCommand(NewGenerateCommand())
}

// NewGenerateCommand returns the "generate" command, which computes a bill
// from a workbook and writes the rendered documents to disk.
func NewGenerateCommand() *cobra.Command {
	opts := generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a contractor bill from a workbook",
		Long: "Reads the Work Order, Bill Quantity and Extra Items sheets of a workbook,\n" +
			"computes the bill and writes every document in the requested formats.\n" +
			"Configuration comes from --config, " + EnvPrefix + "_* environment variables and flags.",
		Example: "  billgenerator generate --workbook bill.xlsx --config bill.yaml --out ./out\n" +
			"  billgenerator generate --workbook bill.xlsx --config bill.yaml --premium-percent 12.5 --zip",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.workbook, "workbook", "w", "", "input workbook (.xlsx)")
	flags.StringVarP(&opts.configPath, "config", "c", "", "bill configuration file (yaml, json or toml)")
	flags.StringVarP(&opts.outDir, "out", "o", ".", "output directory")
	flags.StringVar(&opts.baseName, "name", "bill", "base name of the combined outputs")
	flags.StringSliceVar(&opts.formats, "formats", formatNames(services.AllFormats), "output formats")
	flags.BoolVar(&opts.merge, "merge", true, "also write the complete bill as one PDF")
	flags.BoolVar(&opts.zip, "zip", false, "write a single ZIP archive instead of separate files")
	_ = cmd.MarkFlagRequired("workbook")
	addConfigFlags(flags)

	return cmd
}

func runGenerate(ctx context.Context, cmd *cobra.Command, opts generateOptions) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	formats, err := parseFormats(opts.formats)
	if err != nil {
		return err
	}

	cfg, err := LoadBillConfig(opts.configPath, cmd.Flags())
	if err != nil {
		return err
	}

	f, err := os.Open(opts.workbook)
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	in, err := services.ReadWorkbook(f)
	if err != nil {
		return err
	}

	res, err := billing.Generate(in, cfg)
	if err != nil {
		return err
	}
	printDiagnostics(errOut, res.Diagnostics)

	bundle, err := services.RenderBill(ctx, res, services.RenderOptions{
		Formats:  formats,
		MergePDF: opts.merge,
		BaseName: opts.baseName,
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	written := 0
	if opts.zip {
		archive, err := bundle.Zip()
		if err != nil {
			return err
		}
		path := filepath.Join(opts.outDir, opts.baseName+".zip")
		if err := os.WriteFile(path, archive, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = len(archive)
		fmt.Fprintf(out, "wrote %s\n", path)
	} else {
		for _, file := range bundle.Files {
			path := filepath.Join(opts.outDir, file.Name)
			if err := os.WriteFile(path, file.Data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(out, "wrote %s\n", path)
		}
		written = bundle.Size()
	}

	if merged := bundle.File(opts.baseName + "_complete.pdf"); merged != nil {
		if pages, err := services.PageCount(merged.Data); err == nil {
			fmt.Fprintf(out, "complete bill: %d page(s)\n", pages)
		}
	}
	fmt.Fprintf(out, "%s %d document(s), %s, payable Rs. %s\n",
		color.GreenString("done:"),
		len(billing.DocumentNames),
		humanize.Bytes(uint64(written)),
		services.FormatAmount(res.FirstPage.Totals.Payable))
	return nil
}

func printDiagnostics(w io.Writer, diags []billing.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	warn := color.New(color.FgYellow)
	for _, d := range diags {
		warn.Fprintf(w, "warning: %s: %s\n", d.Kind, d)
	}
	warn.Fprintf(w, "%d warning(s)\n", len(diags))
}

func parseFormats(names []string) ([]services.Format, error) {
	formats := make([]services.Format, 0, len(names))
	for _, n := range names {
		f := services.Format(strings.ToLower(strings.TrimSpace(n)))
		known := false
		for _, k := range services.AllFormats {
			if f == k {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("unknown format %q (want one of %s)", n, strings.Join(formatNames(services.AllFormats), ", "))
		}
		formats = append(formats, f)
	}
	return formats, nil
}

func formatNames(formats []services.Format) []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}
