package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPatient() PatientFormData {
	return PatientFormData{
		FirstName:        "Jane",
		LastName:         "Doe",
		Email:            "jane@example.com",
		Phone:            "555-0100",
		DateOfBirth:      "1990-04-12",
		Gender:           "female",
		Address:          "1 Main St",
		EmergencyContact: "John Doe",
		EmergencyPhone:   "555-0101",
		ReasonForVisit:   "Annual check-up",
	}
}

func TestValidate_ValidForm(t *testing.T) {
	assert.Nil(t, validPatient().Validate())

	p := validPatient()
	p.Address = ""
	p.InsuranceProvider = ""
	p.Allergies = ""
	assert.Nil(t, p.Validate(), "optional fields may be blank")
}

func TestValidate_EmptyForm(t *testing.T) {
	errs := PatientFormData{}.Validate()
	require.NotNil(t, errs)

	assert.Equal(t, FieldErrors{
		FieldFirstName:        "First name is required",
		FieldLastName:         "Last name is required",
		FieldEmail:            "Email is required",
		FieldPhone:            "Phone number is required",
		FieldDateOfBirth:      "Date of birth is required",
		FieldGender:           "Please select your gender",
		FieldEmergencyContact: "Emergency contact is required",
		FieldEmergencyPhone:   "Emergency phone is required",
		FieldReasonForVisit:   "Please describe your reason for visit",
	}, errs)
}

func TestValidate_WhitespaceOnlyIsMissing(t *testing.T) {
	p := validPatient()
	p.FirstName = "   "
	p.ReasonForVisit = "\t"
	errs := p.Validate()
	assert.True(t, errs.Has(FieldFirstName))
	assert.True(t, errs.Has(FieldReasonForVisit))
	assert.Len(t, errs, 2)
}

func TestValidate_Email(t *testing.T) {
	cases := map[string]bool{
		"jane@example.com":  true,
		"a.b+c@mail.co.uk":  true,
		"jane@example":      false,
		"jane example@x.io": false,
		"@example.com":      false,
		"jane@@example.com": false,
	}
	for email, ok := range cases {
		p := validPatient()
		p.Email = email
		errs := p.Validate()
		if ok {
			assert.Nil(t, errs, email)
			continue
		}
		assert.Equal(t, "Please enter a valid email", errs[FieldEmail], email)
	}
}

func TestValidate_Gender(t *testing.T) {
	for _, g := range GenderOptions {
		p := validPatient()
		p.Gender = g
		assert.Nil(t, p.Validate(), g)
	}
	p := validPatient()
	p.Gender = "unknown"
	assert.True(t, p.Validate().Has(FieldGender))
}

func TestFieldErrorsClear(t *testing.T) {
	errs := PatientFormData{}.Validate()
	errs.Clear(FieldEmail)
	assert.False(t, errs.Has(FieldEmail))
	assert.True(t, errs.Has(FieldPhone))

	errs.Clear("not-a-field")
}
