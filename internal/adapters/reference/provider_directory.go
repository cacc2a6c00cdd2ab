package reference

import (
	"context"
	"fmt"

	"github.com/medisense/backend/internal/domain/entities"
	"github.com/medisense/backend/internal/domain/repositories"
	apperrors "github.com/medisense/backend/pkg/errors"
)

const (
	hoursAllDay = "Open 24 Hours, 7 Days"
	mapsBaseURL = "https://maps.google.com/?q="
)

func at(lat, lng float64, label string) entities.Location {
	return entities.Location{Latitude: lat, Longitude: lng, Label: label}
}

var providerDirectory = []entities.Provider{
	{
		ID: 1, Name: "Naruvi Hospitals", Kind: entities.ProviderKindHospital,
		Subtitle: "Multi-Speciality · 24/7 Emergency",
		Specialties: []entities.Specialty{
			entities.SpecialtyGeneralPractice, entities.SpecialtyCardiology, entities.SpecialtyGastroenterology,
			entities.SpecialtyPulmonology, entities.SpecialtyInfectiousDisease, entities.SpecialtyAllergyImmunology,
			entities.SpecialtyRheumatology,
		},
		Rating: 4.6, ReviewCount: 5290,
		Address:  "72, Collector's Office Rd, Thottapalayam, Vellore 632004",
		Hours:    hoursAllDay,
		Location: at(12.9353, 79.1413, "Thottapalayam"),
		MapURL:   mapsBaseURL + "Naruvi+Hospitals+Vellore",
	},
	{
		ID: 2, Name: "Vellore CMC Hospital", Kind: entities.ProviderKindHospital,
		Subtitle: "Christian Medical College · World-class Tertiary Care",
		Specialties: []entities.Specialty{
			entities.SpecialtyGeneralPractice, entities.SpecialtyNeurology, entities.SpecialtyCardiology,
			entities.SpecialtyGastroenterology, entities.SpecialtyPulmonology, entities.SpecialtyInfectiousDisease,
			entities.SpecialtyRheumatology, entities.SpecialtyAllergyImmunology,
		},
		Rating: 3.5, ReviewCount: 892,
		Address:  "IDA Scudder Rd, Vellore 632004",
		Hours:    hoursAllDay,
		Location: at(12.9244, 79.1357, "CMC Area"),
		MapURL:   mapsBaseURL + "CMC+Hospital+Vellore",
	},
	{
		ID: 3, Name: "Sri Narayani Hospital & Research Centre", Kind: entities.ProviderKindHospital,
		Subtitle: "Multi-Speciality · 24/7 Emergency",
		Specialties: []entities.Specialty{
			entities.SpecialtyGeneralPractice, entities.SpecialtyNeurology, entities.SpecialtyCardiology,
			entities.SpecialtyGastroenterology, entities.SpecialtyInfectiousDisease, entities.SpecialtyRheumatology,
		},
		Rating: 4.5, ReviewCount: 3413,
		Address:  "Azad Rd, Thirumalaikodi, Vellore 632055",
		Hours:    hoursAllDay,
		Location: at(12.8705, 79.0900, "Thirumalaikodi"),
		MapURL:   mapsBaseURL + "Sri+Narayani+Hospital+Vellore",
	},
	{
		ID: 4, Name: "Dr. Sivakumar Multi Speciality Hospital", Kind: entities.ProviderKindHospital,
		Subtitle: "DRSKMH · 24/7 Emergency · Gynaecology, Surgery",
		Specialties: []entities.Specialty{
			entities.SpecialtyGeneralPractice, entities.SpecialtyCardiology, entities.SpecialtyGastroenterology,
			entities.SpecialtyAllergyImmunology,
		},
		Rating: 4.6, ReviewCount: 968,
		Address:  "C-3, Arcot Rd, opp. Collector Office, Sathuvachari, Vellore 632009",
		Hours:    hoursAllDay,
		Location: at(12.9344, 79.1525, "Sathuvachari"),
		MapURL:   mapsBaseURL + "Dr+Sivakumar+Multi+Speciality+Hospital+Vellore",
	},
	{
		ID: 5, Name: "Shine Neuro & Spine Centre", Kind: entities.ProviderKindClinic,
		Subtitle:    "Dr. Sangeetha J · Neurologist & Spine Specialist",
		Specialties: []entities.Specialty{entities.SpecialtyNeurology},
		Rating:      4.8, ReviewCount: 345,
		Address:  "19, Thennamara St, near Hotel Ranga, Kosapet, Vellore 632001",
		Hours:    "Mon–Sat: 9 AM–6 PM | Sun: 10 AM–1 PM",
		Location: at(12.9141, 79.1332, "Kosapet"),
		MapURL:   mapsBaseURL + "Shine+Neuro+Spine+Centre+Vellore",
	},
	{
		ID: 6, Name: "Dr. A. Divya – General Physician", Kind: entities.ProviderKindClinic,
		Subtitle:    "Fever & Diabetes · 7,000+ Patients · Naruvi Hospital",
		Specialties: []entities.Specialty{entities.SpecialtyGeneralPractice, entities.SpecialtyInfectiousDisease},
		Rating:      4.0, ReviewCount: 1,
		Address:  "Naruvi Hospital, Samuel Nagar, Thottapalayam, Vellore 632004",
		Hours:    "Mon–Sun: 8 AM–7 PM",
		Location: at(12.9351, 79.1414, "Thottapalayam"),
		MapURL:   mapsBaseURL + "Naruvi+Hospitals+Vellore",
	},
	{
		ID: 7, Name: "A P Clinic Family Health Care Centre", Kind: entities.ProviderKindClinic,
		Subtitle:    "Dr. Vasanth Raj · Family & General Medicine",
		Specialties: []entities.Specialty{entities.SpecialtyGeneralPractice, entities.SpecialtyInfectiousDisease},
		Rating:      4.9, ReviewCount: 86,
		Address:  "No 503, Phase-1 17th Cross Rd, Sathuvachari, Vellore 632009",
		Hours:    "Mon–Sun: 8 AM–1 PM & 5–9 PM",
		Location: at(12.9385, 79.1690, "Sathuvachari"),
		MapURL:   mapsBaseURL + "AP+Clinic+Family+Health+Care+Sathuvachari+Vellore",
	},
	{
		ID: 8, Name: "Dr. Jayashree Lakshman Clinic", Kind: entities.ProviderKindClinic,
		Subtitle:    "General Physician · Fever, Back Pain, Acute Care",
		Specialties: []entities.Specialty{entities.SpecialtyGeneralPractice, entities.SpecialtyRheumatology},
		Rating:      4.7, ReviewCount: 15,
		Address:  "29, 1st East Main Rd, Gandhi Nagar, Vellore 632006",
		Hours:    "Mon–Sun: 10:30 AM–9 PM",
		Location: at(12.9513, 79.1377, "Gandhi Nagar"),
		MapURL:   mapsBaseURL + "Dr+Jayashree+Lakshman+Clinic+Vellore",
	},
	{
		ID: 9, Name: "Vellore ENT & Allergy Centre", Kind: entities.ProviderKindClinic,
		Subtitle:    "Dr. Fayaz · ENT, Allergy & Asthma Specialist",
		Specialties: []entities.Specialty{entities.SpecialtyAllergyImmunology},
		Rating:      3.7, ReviewCount: 216,
		Address:  "1315, South Avenue Rd, Sathuvachari, Vellore 632009",
		Hours:    "Mon–Sat: 8 AM–8:30 PM | Sun: 8 AM–12 PM",
		Location: at(12.9343, 79.1589, "Sathuvachari"),
		MapURL:   mapsBaseURL + "Vellore+Speciality+Centre+Sathuvachari",
	},
	{
		ID: 10, Name: "Nalam Medical Center and Hospital", Kind: entities.ProviderKindHospital,
		Subtitle: "Multi-Speciality · Ortho, Paediatrics, Medicine",
		Specialties: []entities.Specialty{
			entities.SpecialtyGeneralPractice, entities.SpecialtyRheumatology, entities.SpecialtyGastroenterology,
		},
		Rating: 3.6, ReviewCount: 415,
		Address:  "44, Arcot Road, Phase 2, Sathuvachari, Vellore 632009",
		Hours:    hoursAllDay,
		Location: at(12.9349, 79.1537, "Sathuvachari"),
		MapURL:   mapsBaseURL + "Nalam+Medical+Center+Vellore",
	},
	{
		ID: 11, Name: "Divya Clinic", Kind: entities.ProviderKindClinic,
		Subtitle:    "Dr. Anitha · General Physician, Online Consult Available",
		Specialties: []entities.Specialty{entities.SpecialtyGeneralPractice, entities.SpecialtyInfectiousDisease},
		Rating:      5.0, ReviewCount: 17,
		Address:  "No 1C, East Coast Rd, Ezhil Nagar, Allapuram, Vellore 632002",
		Hours:    "Mon–Sat: 10 AM–1 PM & 5–9 PM | Sun: Closed",
		Location: at(12.8941, 79.1271, "Allapuram"),
		MapURL:   mapsBaseURL + "Divya+Clinic+Allapuram+Vellore",
	},
	{
		ID: 12, Name: "Dr. Prasannakumar's Clinic", Kind: entities.ProviderKindClinic,
		Subtitle:    "Paediatrician · Child & Infant Specialist",
		Specialties: []entities.Specialty{entities.SpecialtyGeneralPractice, entities.SpecialtyInfectiousDisease},
		Rating:      4.9, ReviewCount: 249,
		Address:  "535, 40th St, Phase 2, Sathuvachari, Vellore 632009",
		Hours:    "Call clinic for timings",
		Location: at(12.9341, 79.1578, "Sathuvachari"),
		MapURL:   mapsBaseURL + "Dr+Prasannakumar+Clinic+Sathuvachari+Vellore",
	},
}

// ProviderDirectory serves the static provider table
type ProviderDirectory struct {
	providers []entities.Provider
}

// NewProviderDirectory creates the built-in provider directory
func NewProviderDirectory() repositories.ProviderRepository {
	return &ProviderDirectory{providers: providerDirectory}
}

// List returns every provider in directory order
func (d *ProviderDirectory) List(ctx context.Context) ([]entities.Provider, error) {
	out := make([]entities.Provider, len(d.providers))
	for i, p := range d.providers {
		out[i] = cloneProvider(p)
	}
	return out, nil
}

// GetByID retrieves a provider by ID
func (d *ProviderDirectory) GetByID(ctx context.Context, id int) (*entities.Provider, error) {
	for _, p := range d.providers {
		if p.ID == id {
			clone := cloneProvider(p)
			return &clone, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("provider %d not found", id))
}

func cloneProvider(p entities.Provider) entities.Provider {
	p.Specialties = append([]entities.Specialty(nil), p.Specialties...)
	return p
}
