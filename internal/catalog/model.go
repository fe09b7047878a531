// Package catalog holds the static service and doctor catalogs offered by the
// booking flow.
package catalog

// Service is a bookable type of visit.
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Duration    int    `json:"duration"` // minutes
	Price       int    `json:"price"`
}

// Doctor is a provider a patient can book with.
type Doctor struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Specialty       string   `json:"specialty"`
	Image           string   `json:"image"`
	Rating          float64  `json:"rating"`
	ReviewCount     int      `json:"review_count"`
	Experience      int      `json:"experience"` // years
	Languages       []string `json:"languages"`
	AvailableToday  bool     `json:"available_today"`
	NextAvailable   string   `json:"next_available"`
	ConsultationFee int      `json:"consultation_fee"`
}

// LastName returns the final word of the doctor's name ("Dr. Sarah Mitchell" -> "Mitchell").
func (d Doctor) LastName() string {
	for i := len(d.Name) - 1; i >= 0; i-- {
		if d.Name[i] == ' ' {
			return d.Name[i+1:]
		}
	}
	return d.Name
}
