package domain

import (
	"strings"
	"time"
)

// ContactType enumerates the supported contact categories.
type ContactType string

const (
	ContactTypePersonal ContactType = "personal"
	ContactTypeWork     ContactType = "work"
)

// ContactTypes lists every accepted contact type.
var ContactTypes = []ContactType{ContactTypePersonal, ContactTypeWork}

// ParseContactType matches s case-insensitively against the known types.
func ParseContactType(s string) (ContactType, bool) {
	for _, t := range ContactTypes {
		if strings.EqualFold(string(t), s) {
			return t, true
		}
	}
	return "", false
}

// Contact is an address-book entry owned by exactly one user.
type Contact struct {
	ID        string
	OwnerID   string
	Name      string
	Email     string
	Phone     string
	Type      ContactType
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContactFields is a set of normalized contact values ready to be written.
type ContactFields struct {
	Name  *string
	Email *string
	Phone *string
	Type  *ContactType
}

// IsEmpty reports whether no field is set.
func (f ContactFields) IsEmpty() bool {
	return f.Name == nil && f.Email == nil && f.Phone == nil && f.Type == nil
}

// Names returns the names of the set fields in a fixed order.
func (f ContactFields) Names() []string {
	names := make([]string, 0, 4)
	if f.Name != nil {
		names = append(names, "name")
	}
	if f.Email != nil {
		names = append(names, "email")
	}
	if f.Phone != nil {
		names = append(names, "phone")
	}
	if f.Type != nil {
		names = append(names, "type")
	}
	return names
}

// Apply copies the set fields onto c.
func (f ContactFields) Apply(c *Contact) {
	if f.Name != nil {
		c.Name = *f.Name
	}
	if f.Email != nil {
		c.Email = *f.Email
	}
	if f.Phone != nil {
		c.Phone = *f.Phone
	}
	if f.Type != nil {
		c.Type = *f.Type
	}
}
