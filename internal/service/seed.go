package service

import (
	"context"
	"errors"

	"github.com/spec-kit/contact-service/internal/domain"
)

// SeedAccount is a demo user and the contacts it should own.
type SeedAccount struct {
	Email    string
	Password string
	Contacts []SeedContact
}

// SeedContact is one demo contact.
type SeedContact struct {
	Name  string
	Email string
	Phone string
	Type  domain.ContactType
}

// SeedReport summarizes what a seed run changed.
type SeedReport struct {
	UsersCreated    int
	UsersExisting   int
	ContactsCreated int
	ContactsSkipped int
}

// DemoAccounts is the default demo data set.
var DemoAccounts = []SeedAccount{
	{
		Email:    "john@example.com",
		Password: "password123",
		Contacts: []SeedContact{
			{Name: "Alice Johnson", Email: "alice.johnson@email.com", Phone: "+1234567890", Type: domain.ContactTypePersonal},
			{Name: "Bob Smith", Email: "bob.smith@company.com", Phone: "+1234567891", Type: domain.ContactTypeWork},
			{Name: "Carol Williams", Email: "carol.williams@email.com", Phone: "+1234567892", Type: domain.ContactTypePersonal},
			{Name: "David Brown", Email: "david.brown@business.com", Phone: "+1234567893", Type: domain.ContactTypeWork},
			{Name: "Emma Davis", Email: "emma.davis@email.com", Phone: "+1234567894", Type: domain.ContactTypePersonal},
		},
	},
	{
		Email:    "jane@example.com",
		Password: "password123",
		Contacts: []SeedContact{
			{Name: "Frank Miller", Email: "frank.miller@email.com", Phone: "+1234567895", Type: domain.ContactTypePersonal},
			{Name: "Grace Wilson", Email: "grace.wilson@corp.com", Phone: "+1234567896", Type: domain.ContactTypeWork},
			{Name: "Henry Taylor", Email: "henry.taylor@email.com", Phone: "+1234567897", Type: domain.ContactTypePersonal},
			{Name: "Isabella Moore", Email: "isabella.moore@enterprise.com", Phone: "+1234567898", Type: domain.ContactTypeWork},
			{Name: "Jack Anderson", Email: "jack.anderson@email.com", Phone: "+1234567899", Type: domain.ContactTypePersonal},
		},
	},
}

// Seeder loads demo accounts through the regular services so every record
// passes the same validation as API traffic.
type Seeder struct {
	auth     *AuthService
	contacts *ContactService
}

// NewSeeder builds a seeder.
func NewSeeder(auth *AuthService, contacts *ContactService) *Seeder {
	return &Seeder{auth: auth, contacts: contacts}
}

// Seed creates any missing accounts and contacts. Running it twice is harmless.
func (s *Seeder) Seed(ctx context.Context, accounts []SeedAccount) (SeedReport, error) {
	var report SeedReport
	for _, account := range accounts {
		identity, created, err := s.ensureAccount(ctx, account)
		if err != nil {
			return report, err
		}
		if created {
			report.UsersCreated++
		} else {
			report.UsersExisting++
		}

		for _, c := range account.Contacts {
			_, err := s.contacts.Create(ctx, identity, ContactInput{
				Name:  domain.Some(c.Name),
				Email: domain.Some(c.Email),
				Phone: domain.Some(c.Phone),
				Type:  domain.Some(string(c.Type)),
			})
			var conflict *ConflictError
			switch {
			case err == nil:
				report.ContactsCreated++
			case errors.As(err, &conflict):
				report.ContactsSkipped++
			default:
				return report, err
			}
		}
	}
	return report, nil
}

func (s *Seeder) ensureAccount(ctx context.Context, account SeedAccount) (domain.Identity, bool, error) {
	result, err := s.auth.Register(ctx, account.Email, account.Password)
	if err == nil {
		return result.Identity, true, nil
	}

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		return domain.Identity{}, false, err
	}
	result, err = s.auth.IssueToken(ctx, account.Email)
	if err != nil {
		return domain.Identity{}, false, err
	}
	return result.Identity, false, nil
}
