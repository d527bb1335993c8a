package importer

import (
	"fmt"
	"log"
)

// ImportConfig holds the configuration for preparing an input table
type ImportConfig struct {
	SourceFile string
	Delimiters string // institution name delimiters, DefaultDelimiters if empty
}

// Import resolves the table's columns and builds institutions and teams from
// its rows. Schema failures are returned as *SchemaError before any row is read.
func Import(table *Table, config ImportConfig) (*Entities, error) {
	index, err := ResolveColumns(table.Headers)
	if err != nil {
		return nil, fmt.Errorf("header validation failed: %w", err)
	}

	builder := NewBuilder(NewNormalizer(config.Delimiters), NewIdentityAssigner())
	entities := builder.Build(table.Rows(index))
	printImportSummary(config.SourceFile, len(table.Records), entities)
	return entities, nil
}

// ImportFile opens config.SourceFile and imports it.
func ImportFile(config ImportConfig) (*Entities, error) {
	table, err := OpenTable(config.SourceFile)
	if err != nil {
		return nil, err
	}
	return Import(table, config)
}

func printImportSummary(source string, total int, entities *Entities) {
	log.Printf("Import Summary for %s:", source)
	log.Printf("Total Records Processed: %d", total)
	log.Printf("Institutions: %d", len(entities.Institutions))
	log.Printf("Teams: %d", len(entities.Teams))
	if len(entities.Invalid) > 0 {
		log.Printf("Skipped Records: %d", len(entities.Invalid))
		log.Printf("Sample of Import Errors (up to 10):")
		for i := 0; i < min(10, len(entities.Invalid)); i++ {
			log.Printf("- %v", entities.Invalid[i])
		}
	}
}
