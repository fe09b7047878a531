package catalog

import (
	"errors"
	"slices"
)

var (
	// ErrUnknownService is returned when a service id is not in the catalog.
	ErrUnknownService = errors.New("catalog: unknown service")

	// ErrUnknownDoctor is returned when a doctor id is not in the catalog.
	ErrUnknownDoctor = errors.New("catalog: unknown doctor")
)

// Catalog is an immutable set of services and doctors.
type Catalog struct {
	services []Service
	doctors  []Doctor
}

// New builds a catalog from the given entries. The slices are copied.
func New(services []Service, doctors []Doctor) *Catalog {
	return &Catalog{
		services: slices.Clone(services),
		doctors:  slices.Clone(doctors),
	}
}

// Default returns the built-in clinic catalog.
func Default() *Catalog {
	return New(DefaultServices(), DefaultDoctors())
}

// Services returns every service in catalog order.
func (c *Catalog) Services() []Service {
	return slices.Clone(c.services)
}

// Doctors returns every doctor in catalog order.
func (c *Catalog) Doctors() []Doctor {
	out := make([]Doctor, len(c.doctors))
	for i, d := range c.doctors {
		d.Languages = slices.Clone(d.Languages)
		out[i] = d
	}
	return out
}

// Service looks up a service by id.
func (c *Catalog) Service(id string) (Service, error) {
	for _, s := range c.services {
		if s.ID == id {
			return s, nil
		}
	}
	return Service{}, ErrUnknownService
}

// Doctor looks up a doctor by id.
func (c *Catalog) Doctor(id string) (Doctor, error) {
	for _, d := range c.doctors {
		if d.ID == id {
			d.Languages = slices.Clone(d.Languages)
			return d, nil
		}
	}
	return Doctor{}, ErrUnknownDoctor
}
