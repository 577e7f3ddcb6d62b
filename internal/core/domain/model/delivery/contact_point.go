package delivery

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrContactPointIsNotConstructed is returned when a ContactPoint was not
// created through the NewContactPoint constructor.
var ErrContactPointIsNotConstructed = errors.New("ContactPoint must be created via NewContactPoint constructor")

// ContactPoint is an immutable value object holding the postal and contact
// data of one side of a delivery (sender or recipient). Two contact points
// are equal when all their fields are equal.
type ContactPoint struct {
	zipCode    string
	street     string
	number     string
	complement string
	name       string
	phone      string

	guard guard.ConstructorGuard
}

// NewContactPoint creates a validated ContactPoint. All fields except
// complement are required.
func NewContactPoint(zipCode, street, number, complement, name, phone string) (ContactPoint, error) {
	cp := ContactPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cp.setZipCode(zipCode),
		cp.setStreet(street),
		cp.setNumber(number),
		cp.setName(name),
		cp.setPhone(phone),
	); err != nil {
		return ContactPoint{}, err
	}

	cp.complement = complement
	return cp, nil
}

// Validate ensures the ContactPoint was created through NewContactPoint.
func (c ContactPoint) Validate() error {
	return c.guard.Validate(ErrContactPointIsNotConstructed)
}

// IsEqual compares two contact points by value.
func (c ContactPoint) IsEqual(other ContactPoint) bool {
	return c.zipCode == other.zipCode &&
		c.street == other.street &&
		c.number == other.number &&
		c.complement == other.complement &&
		c.name == other.name &&
		c.phone == other.phone
}

// ZipCode returns the postal code.
func (c ContactPoint) ZipCode() string {
	return c.zipCode
}

// Street returns the street name.
func (c ContactPoint) Street() string {
	return c.street
}

// Number returns the street number.
func (c ContactPoint) Number() string {
	return c.number
}

// Complement returns the optional address complement.
func (c ContactPoint) Complement() string {
	return c.complement
}

// Name returns the contact person's name.
func (c ContactPoint) Name() string {
	return c.name
}

// Phone returns the contact phone number.
func (c ContactPoint) Phone() string {
	return c.phone
}

func (c *ContactPoint) setZipCode(zipCode string) error {
	if zipCode == "" {
		return errs.NewValueIsRequiredError("zipCode")
	}
	c.zipCode = zipCode
	return nil
}

func (c *ContactPoint) setStreet(street string) error {
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	c.street = street
	return nil
}

func (c *ContactPoint) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("number")
	}
	c.number = number
	return nil
}

func (c *ContactPoint) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *ContactPoint) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	c.phone = phone
	return nil
}
