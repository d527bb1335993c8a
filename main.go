package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/nonsonwune/mcm_db/config"
	"github.com/nonsonwune/mcm_db/importer"
	"github.com/nonsonwune/mcm_db/report"
	"github.com/nonsonwune/mcm_db/store"
)

type options struct {
	input      string
	skipDB     bool
	confirm    bool
	outputDir  string
	reportPath string
}

func main() {
	var opts options
	flag.StringVar(&opts.input, "input", "", "Contest results .csv file (prompted for if empty)")
	flag.StringVar(&opts.outputDir, "out", "", "Directory for Institutions.csv and Teams.csv")
	flag.StringVar(&opts.reportPath, "report", "", "Path of the text report")
	flag.BoolVar(&opts.skipDB, "skip-db", false, "Only write the CSV exports")
	flag.BoolVar(&opts.confirm, "confirm", false, "Ask before loading the store")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		exitWithError(err)
	}
	if opts.outputDir != "" {
		cfg.OutputDir = opts.outputDir
	}
	if opts.reportPath != "" {
		cfg.ReportPath = opts.reportPath
	}

	if err := run(context.Background(), cfg, opts); err != nil {
		exitWithError(err)
	}
}

func run(ctx context.Context, cfg *config.Config, opts options) error {
	runID := uuid.New().String()
	log.SetPrefix(fmt.Sprintf("[run %s] ", runID[:8]))

	color.Cyan("Welcome to the Math Modeling Contest spreadsheet preparer. To prepare a spreadsheet for a SQL database, " +
		"enter the name of a valid .csv file.")

	in := bufio.NewReader(os.Stdin)
	source := opts.input
	var table *importer.Table
	var err error
	if source != "" {
		table, err = importer.OpenTable(source)
	} else {
		source, table, err = promptForTable(in, os.Stdout, importer.OpenTable)
	}
	if err != nil {
		return err
	}

	entities, err := importer.Import(table, importer.ImportConfig{
		SourceFile: source,
		Delimiters: cfg.Delimiters,
	})
	if err != nil {
		var schemaErr *importer.SchemaError
		if errors.As(err, &schemaErr) {
			color.Red("File doesn't contain the following required columns: %s", strings.Join(schemaErr.Missing, ", "))
		}
		return err
	}

	paths, err := importer.SaveExports(cfg.OutputDir, entities)
	if err != nil {
		return err
	}
	color.Green("Institution & Team spreadsheets created")
	for _, path := range paths {
		fmt.Printf("  %s\n", path)
	}
	if len(entities.Invalid) > 0 {
		color.Yellow("%d row(s) skipped, see log for details", len(entities.Invalid))
	}

	if opts.skipDB {
		return nil
	}
	if opts.confirm {
		fmt.Printf("\nLoad %d institutions and %d teams into the %s store? (y/n): ",
			len(entities.Institutions), len(entities.Teams), cfg.DBDriver)
		if strings.ToLower(readString(in)) != "y" {
			fmt.Println("Load cancelled.")
			return nil
		}
	}

	db, err := store.Open(ctx, store.Config{Driver: cfg.DBDriver, DSN: cfg.DSN()})
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := store.NewLoader(db).Load(ctx, entities.Institutions, entities.Teams)
	if err != nil {
		return err
	}
	printLoadResult(result)

	rep, err := report.NewEngine(db).Run(ctx, runID)
	if err != nil {
		return err
	}
	report.RenderTables(os.Stdout, rep)

	if err := report.WriteFile(cfg.ReportPath, rep); err != nil {
		return err
	}
	color.Green("Report saved to %s", cfg.ReportPath)
	return nil
}

func printLoadResult(result store.LoadResult) {
	color.Cyan("\n=== Store Load Summary ===")
	fmt.Printf("Institutions inserted: %d, skipped as duplicates: %d\n",
		result.InstitutionsInserted, result.InstitutionsSkipped)
	fmt.Printf("Teams inserted: %d, skipped as duplicates: %d\n",
		result.TeamsInserted, result.TeamsSkipped)
}

func exitWithError(err error) {
	color.Red("Error: %v", err)
	os.Exit(1)
}
