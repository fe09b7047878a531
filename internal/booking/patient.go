package booking

import (
	"regexp"
	"strings"
)

// PatientFormData is what the patient enters on the details step.
type PatientFormData struct {
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	DateOfBirth        string `json:"date_of_birth"`
	Gender             string `json:"gender"`
	Address            string `json:"address"`
	InsuranceProvider  string `json:"insurance_provider,omitempty"`
	InsuranceNumber    string `json:"insurance_number,omitempty"`
	EmergencyContact   string `json:"emergency_contact"`
	EmergencyPhone     string `json:"emergency_phone"`
	MedicalHistory     string `json:"medical_history,omitempty"`
	CurrentMedications string `json:"current_medications,omitempty"`
	Allergies          string `json:"allergies,omitempty"`
	ReasonForVisit     string `json:"reason_for_visit"`
}

// FullName joins first and last name.
func (p PatientFormData) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Form field keys used in FieldErrors.
const (
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldEmail            = "email"
	FieldPhone            = "phone"
	FieldDateOfBirth      = "date_of_birth"
	FieldGender           = "gender"
	FieldEmergencyContact = "emergency_contact"
	FieldEmergencyPhone   = "emergency_phone"
	FieldReasonForVisit   = "reason_for_visit"
)

// GenderOptions are the accepted values of the gender select.
var GenderOptions = []string{"male", "female", "other", "prefer-not-to-say"}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldErrors maps a form field to its message. Valid fields are absent.
type FieldErrors map[string]string

// Clear drops the error for one field, as happens when the patient edits it.
func (e FieldErrors) Clear(field string) {
	delete(e, field)
}

// Has reports whether field has an error.
func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Validate checks the details form. It returns nil when the form is acceptable.
func (p PatientFormData) Validate() FieldErrors {
	errs := FieldErrors{}

	required := func(field, value, msg string) {
		if strings.TrimSpace(value) == "" {
			errs[field] = msg
		}
	}

	required(FieldFirstName, p.FirstName, "First name is required")
	required(FieldLastName, p.LastName, "Last name is required")
	if strings.TrimSpace(p.Email) == "" {
		errs[FieldEmail] = "Email is required"
	} else if !emailPattern.MatchString(p.Email) {
		errs[FieldEmail] = "Please enter a valid email"
	}
	required(FieldPhone, p.Phone, "Phone number is required")
	if p.DateOfBirth == "" {
		errs[FieldDateOfBirth] = "Date of birth is required"
	}
	if !validGender(p.Gender) {
		errs[FieldGender] = "Please select your gender"
	}
	required(FieldEmergencyContact, p.EmergencyContact, "Emergency contact is required")
	required(FieldEmergencyPhone, p.EmergencyPhone, "Emergency phone is required")
	required(FieldReasonForVisit, p.ReasonForVisit, "Please describe your reason for visit")

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validGender(g string) bool {
	for _, opt := range GenderOptions {
		if g == opt {
			return true
		}
	}
	return false
}
