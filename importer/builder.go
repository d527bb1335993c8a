package importer

import (
	"errors"
	"log"

	"github.com/nonsonwune/mcm_db/models"
)

// Entities holds the deduplicated institutions and teams built from an input
// table, both in first-seen order, plus the rows that were skipped.
type Entities struct {
	Institutions []models.Institution
	Teams        []models.Team
	Invalid      []*ImportError
}

// Builder folds normalized rows into Entities.
type Builder struct {
	normalizer *Normalizer
	ids        *IdentityAssigner
}

func NewBuilder(normalizer *Normalizer, ids *IdentityAssigner) *Builder {
	return &Builder{
		normalizer: normalizer,
		ids:        ids,
	}
}

// Build processes rows in order. The first row for an institution key creates
// the institution and the first row for a team number creates the team; later
// duplicates are ignored even when their other fields differ. Each team points
// at the institution of the row that created it.
//
// Institutions are emitted on the first row of each key within this call, not
// when the assigner creates an ID, so a Builder sharing an assigner with an
// earlier Build emits the same institutions with the same IDs.
func (b *Builder) Build(rows []models.RawRow) *Entities {
	entities := &Entities{
		Institutions: make([]models.Institution, 0),
		Teams:        make([]models.Team, 0, len(rows)),
	}
	seenInstitutions := make(map[string]struct{})
	seenTeams := make(map[int]struct{})

	for _, row := range rows {
		record, err := b.normalizer.Normalize(row)
		if err != nil {
			var importErr *ImportError
			if !errors.As(err, &importErr) {
				importErr = &ImportError{Code: "UNKNOWN", Message: err.Error(), Line: row.Line}
			}
			log.Printf("Skipping row: %v", importErr)
			entities.Invalid = append(entities.Invalid, importErr)
			continue
		}

		id, _ := b.ids.Resolve(record.Key)
		if _, seen := seenInstitutions[record.Key]; !seen {
			seenInstitutions[record.Key] = struct{}{}
			institution := record.Institution
			institution.ID = id
			entities.Institutions = append(entities.Institutions, institution)
		}

		if _, seen := seenTeams[record.Team.ID]; seen {
			continue
		}
		seenTeams[record.Team.ID] = struct{}{}
		team := record.Team
		team.InstitutionID = id
		entities.Teams = append(entities.Teams, team)
	}

	return entities
}
