package catalog

// DefaultServices returns the clinic's service menu.
func DefaultServices() []Service {
	return []Service{
		{ID: "1", Name: "General Consultation", Description: "Comprehensive health check-up and consultation", Icon: "stethoscope", Duration: 30, Price: 75},
		{ID: "2", Name: "Dental Care", Description: "Routine dental examination and cleaning", Icon: "tooth", Duration: 45, Price: 120},
		{ID: "3", Name: "Eye Examination", Description: "Complete vision and eye health assessment", Icon: "eye", Duration: 30, Price: 90},
		{ID: "4", Name: "Cardiology", Description: "Heart health evaluation and ECG", Icon: "heart", Duration: 60, Price: 150},
		{ID: "5", Name: "Pediatrics", Description: "Child health check-up and vaccinations", Icon: "baby", Duration: 30, Price: 80},
		{ID: "6", Name: "Dermatology", Description: "Skin health consultation and treatment", Icon: "skin", Duration: 30, Price: 100},
	}
}

// DefaultDoctors returns the clinic's provider roster.
func DefaultDoctors() []Doctor {
	return []Doctor{
		{
			ID: "1", Name: "Dr. Sarah Mitchell", Specialty: "General Physician",
			Image:  "https://images.unsplash.com/photo-1559839734-2b71ea197ec2?w=300&h=300&fit=crop&crop=face",
			Rating: 4.9, ReviewCount: 234, Experience: 15, Languages: []string{"English", "Spanish"},
			AvailableToday: true, NextAvailable: "Today, 2:00 PM", ConsultationFee: 75,
		},
		{
			ID: "2", Name: "Dr. James Wilson", Specialty: "Cardiologist",
			Image:  "https://images.unsplash.com/photo-1612349317150-e413f6a5b16d?w=300&h=300&fit=crop&crop=face",
			Rating: 4.8, ReviewCount: 189, Experience: 20, Languages: []string{"English"},
			AvailableToday: false, NextAvailable: "Tomorrow, 10:00 AM", ConsultationFee: 150,
		},
		{
			ID: "3", Name: "Dr. Emily Chen", Specialty: "Pediatrician",
			Image:  "https://images.unsplash.com/photo-1594824476967-48c8b964273f?w=300&h=300&fit=crop&crop=face",
			Rating: 4.9, ReviewCount: 312, Experience: 12, Languages: []string{"English", "Mandarin"},
			AvailableToday: true, NextAvailable: "Today, 4:30 PM", ConsultationFee: 80,
		},
		{
			ID: "4", Name: "Dr. Michael Brown", Specialty: "Dermatologist",
			Image:  "https://images.unsplash.com/photo-1622253692010-333f2da6031d?w=300&h=300&fit=crop&crop=face",
			Rating: 4.7, ReviewCount: 156, Experience: 10, Languages: []string{"English", "French"},
			AvailableToday: true, NextAvailable: "Today, 3:00 PM", ConsultationFee: 100,
		},
		{
			ID: "5", Name: "Dr. Lisa Anderson", Specialty: "Ophthalmologist",
			Image:  "https://images.unsplash.com/photo-1651008376811-b90baee60c1f?w=300&h=300&fit=crop&crop=face",
			Rating: 4.8, ReviewCount: 201, Experience: 18, Languages: []string{"English"},
			AvailableToday: false, NextAvailable: "Wed, 9:00 AM", ConsultationFee: 90,
		},
		{
			ID: "6", Name: "Dr. Robert Kim", Specialty: "Dentist",
			Image:  "https://images.unsplash.com/photo-1537368910025-700350fe46c7?w=300&h=300&fit=crop&crop=face",
			Rating: 4.9, ReviewCount: 278, Experience: 14, Languages: []string{"English", "Korean"},
			AvailableToday: true, NextAvailable: "Today, 11:00 AM", ConsultationFee: 120,
		},
	}
}
