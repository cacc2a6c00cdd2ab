package entities

// ProviderKind distinguishes hospitals from clinics
type ProviderKind string

const (
	ProviderKindHospital ProviderKind = "hospital"
	ProviderKindClinic   ProviderKind = "clinic"
)

// Provider represents a hospital or clinic in the directory
type Provider struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Kind        ProviderKind `json:"kind"`
	Subtitle    string       `json:"subtitle"`
	Specialties []Specialty  `json:"specialties"`
	Rating      float64      `json:"rating"`
	ReviewCount int          `json:"review_count"`
	Address     string       `json:"address"`
	Hours       string       `json:"hours"`
	Location    Location     `json:"location"`
	MapURL      string       `json:"map_url"`
}

// HasSpecialty reports whether the provider is tagged with s
func (p Provider) HasSpecialty(s Specialty) bool {
	for _, x := range p.Specialties {
		if x == s {
			return true
		}
	}
	return false
}

// RankedProvider is a provider with its distance from the user.
// DistanceKm is nil when no origin was resolved.
type RankedProvider struct {
	Provider
	DistanceKm *float64 `json:"distance_km"`
}
