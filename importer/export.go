package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nonsonwune/mcm_db/models"
)

// Export file names
const (
	InstitutionsFile = "Institutions.csv"
	TeamsFile        = "Teams.csv"
)

// WriteInstitutions writes institutions as CSV with the Institutions.csv header.
// Absent values are written as empty cells.
func WriteInstitutions(w io.Writer, institutions []models.Institution) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(models.InstitutionColumns); err != nil {
		return err
	}
	for _, inst := range institutions {
		record := []string{
			strconv.Itoa(inst.ID),
			inst.Name,
			inst.City,
			models.StringOr(inst.StateProvince, ""),
			models.StringOr(inst.Country, ""),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteTeams writes teams as CSV with the Teams.csv header.
func WriteTeams(w io.Writer, teams []models.Team) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(models.TeamColumns); err != nil {
		return err
	}
	for _, team := range teams {
		record := []string{
			strconv.Itoa(team.ID),
			team.Advisor,
			models.StringOr(team.Problem, ""),
			team.Ranking,
			strconv.Itoa(team.InstitutionID),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// SaveExports writes Institutions.csv and Teams.csv into dir and returns their paths.
func SaveExports(dir string, entities *Entities) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating output directory: %w", err)
	}

	institutionsPath := filepath.Join(dir, InstitutionsFile)
	if err := writeFile(institutionsPath, func(w io.Writer) error {
		return WriteInstitutions(w, entities.Institutions)
	}); err != nil {
		return nil, err
	}

	teamsPath := filepath.Join(dir, TeamsFile)
	if err := writeFile(teamsPath, func(w io.Writer) error {
		return WriteTeams(w, entities.Teams)
	}); err != nil {
		return nil, err
	}

	return []string{institutionsPath, teamsPath}, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return file.Close()
}
