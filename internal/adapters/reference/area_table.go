package reference

import (
	"context"

	"github.com/medisense/backend/internal/domain/entities"
	"github.com/medisense/backend/internal/domain/repositories"
)

// areaTable is scanned in order; the first matching key wins.
var areaTable = []entities.Area{
	{Key: "sathuvachari", Location: at(12.9350, 79.1530, "Sathuvachari, Vellore")},
	{Key: "katpadi", Location: at(12.9716, 79.1442, "Katpadi, Vellore")},
	{Key: "kosapet", Location: at(12.9155, 79.1338, "Kosapet, Vellore")},
	{Key: "gandhi nagar", Location: at(12.9510, 79.1375, "Gandhi Nagar, Vellore")},
	{Key: "vellore", Location: at(12.9165, 79.1325, "Vellore")},
	{Key: "bagayam", Location: at(12.9028, 79.1524, "Bagayam, Vellore")},
	{Key: "thottapalayam", Location: at(12.9353, 79.1413, "Thottapalayam, Vellore")},
	{Key: "allapuram", Location: at(12.8941, 79.1271, "Allapuram, Vellore")},
	{Key: "thirumalaikodi", Location: at(12.8705, 79.0900, "Thirumalaikodi, Vellore")},
	{Key: "cmc", Location: at(12.9244, 79.1357, "CMC Area, Vellore")},
}

var quickSelectAreas = []string{"Sathuvachari", "Katpadi", "Kosapet", "CMC", "Gandhi Nagar", "Allapuram"}

// cityCentre is used when nothing in the table matches
var cityCentre = at(12.9165, 79.1325, "Vellore")

// AreaTable serves the neighbourhood lookup table
type AreaTable struct {
	areas []entities.Area
}

// NewAreaTable creates the built-in Vellore area table
func NewAreaTable() repositories.AreaRepository {
	return &AreaTable{areas: areaTable}
}

// List returns the areas in match-priority order
func (t *AreaTable) List(ctx context.Context) ([]entities.Area, error) {
	return append([]entities.Area(nil), t.areas...), nil
}

// QuickSelectNames returns the one-tap area names
func (t *AreaTable) QuickSelectNames(ctx context.Context) ([]string, error) {
	return append([]string(nil), quickSelectAreas...), nil
}

// Default returns the city-centre fallback coordinates
func (t *AreaTable) Default(ctx context.Context) (entities.Location, error) {
	return cityCentre, nil
}
