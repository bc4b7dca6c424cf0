package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/klippa-app/go-pdfium/webassembly"
	"github.com/urfave/cli/v3"

	"github.com/ivanvanderbyl/pdfxlsx"
)

func main() {
	cmd := &cli.Command{
		Name:  "pdfxlsx",
		Usage: "Convert PDF files to xlsx spreadsheets",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "Input PDF file path, or a directory with --batch",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output xlsx path (default: input with .xlsx), or output directory with --batch",
			},
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Usage:   "Extraction mode: auto, tables, or text",
				Value:   "auto",
			},
			&cli.StringFlag{
				Name:    "pages",
				Aliases: []string{"p"},
				Usage:   "Pages to process: 'all', '3', '1,3,5-10'",
				Value:   "all",
			},
			&cli.BoolFlag{
				Name:  "lattice",
				Usage: "Detect tables from visible ruling lines (default)",
			},
			&cli.BoolFlag{
				Name:  "stream",
				Usage: "Detect borderless tables from word alignment",
			},
			&cli.BoolFlag{
				Name:  "single-table",
				Usage: "Keep only the best table per page",
			},
			&cli.BoolFlag{
				Name:  "separate-sheets",
				Usage: "Write each table to its own sheet",
			},
			&cli.BoolFlag{
				Name:  "table-fallback",
				Usage: "With --mode tables, fall back to text when no tables are found",
			},
			&cli.StringFlag{
				Name:  "separator",
				Usage: `Split text lines into columns on this separator (e.g. ';', ',', '\t')`,
			},
			&cli.BoolFlag{
				Name:  "skip-blank",
				Usage: "Drop blank lines when extracting text",
			},
			&cli.StringFlag{
				Name:  "text-by",
				Usage: "Text granularity: line or page",
				Value: "line",
			},
			&cli.BoolFlag{
				Name:  "raw-cells",
				Usage: "Keep all cells as text, without number/date inference",
			},
			&cli.BoolFlag{
				Name:  "batch",
				Usage: "Convert every PDF in the input directory",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Show detailed progress",
			},
		},
		Action: convert,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func buildConfig(cmd *cli.Command) (pdfxlsx.Config, error) {
	config := pdfxlsx.DefaultConfig()

	switch cmd.String("mode") {
	case "auto":
		config.Mode = pdfxlsx.ModeAuto
	case "tables":
		config.Mode = pdfxlsx.ModeTables
	case "text":
		config.Mode = pdfxlsx.ModeText
	default:
		return config, fmt.Errorf("invalid mode %q: want auto, tables, or text", cmd.String("mode"))
	}

	if cmd.Bool("lattice") && cmd.Bool("stream") {
		return config, errors.New("--lattice and --stream are mutually exclusive")
	}
	if cmd.Bool("stream") {
		config.Detection = pdfxlsx.DetectStream
	}

	switch cmd.String("text-by") {
	case "line":
		config.TextBy = pdfxlsx.GranularLine
	case "page":
		config.TextBy = pdfxlsx.GranularPage
	default:
		return config, fmt.Errorf("invalid text granularity %q: want line or page", cmd.String("text-by"))
	}

	config.Pages = cmd.String("pages")
	config.MultiTable = !cmd.Bool("single-table")
	config.SeparateSheets = cmd.Bool("separate-sheets")
	config.TableFallback = cmd.Bool("table-fallback")
	config.Separator = cmd.String("separator")
	config.SkipBlankLines = cmd.Bool("skip-blank")
	config.InferCellTypes = !cmd.Bool("raw-cells")
	config.Verbose = cmd.Bool("verbose")

	return config, nil
}

func convert(_ context.Context, cmd *cli.Command) error {
	config, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	// Initialise pdfium
	pool, err := webassembly.Init(webassembly.Config{
		MinIdle:  1,
		MaxIdle:  1,
		MaxTotal: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to initialise pdfium: %w", err)
	}
	defer pool.Close()

	instance, err := pool.GetInstance(time.Second * 30)
	if err != nil {
		return fmt.Errorf("failed to get pdfium instance: %w", err)
	}

	converter := pdfxlsx.NewConverterWithConfig(instance, config)

	if cmd.Bool("batch") {
		return convertBatch(converter, cmd.String("input"), cmd.String("output"))
	}
	return convertOne(converter, cmd.String("input"), cmd.String("output"))
}

func convertOne(converter *pdfxlsx.Converter, input, output string) error {
	info, err := converter.GetDocumentInfo(input)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Processing %s (%d pages)...\n", input, info.PageCount)

	result, err := converter.ConvertFile(input, output)
	if err != nil {
		return err
	}
	if result.Source == pdfxlsx.SourceNone {
		fmt.Fprintf(os.Stderr, "No extractable content in %s\n", input)
		return nil
	}

	fmt.Fprintf(os.Stderr, "Wrote %d sheet(s), %d row(s) from %s to %s\n",
		result.SheetsWritten, result.RowsWritten, result.Source, result.OutputPath)
	return nil
}

func convertBatch(converter *pdfxlsx.Converter, dir, outDir string) error {
	results, err := converter.ConvertBatch(dir, outDir)
	if err != nil {
		return err
	}

	var failed []string
	for _, fr := range results {
		switch {
		case fr.Err != nil:
			fmt.Fprintf(os.Stderr, "ERROR %s: %v\n", fr.InputPath, fr.Err)
			failed = append(failed, fr.InputPath)
		case fr.Result.Source == pdfxlsx.SourceNone:
			fmt.Fprintf(os.Stderr, "EMPTY %s: no extractable content\n", fr.InputPath)
		default:
			fmt.Fprintf(os.Stderr, "OK    %s: %d sheet(s), %d row(s) -> %s\n",
				fr.InputPath, fr.Result.SheetsWritten, fr.Result.RowsWritten, fr.Result.OutputPath)
		}
	}

	fmt.Fprintf(os.Stderr, "Batch complete: %d file(s), %d failed\n", len(results), len(failed))
	if len(failed) > 0 {
		fmt.Fprintf(os.Stderr, "Failed: %s\n", strings.Join(failed, ", "))
	}
	return nil
}
