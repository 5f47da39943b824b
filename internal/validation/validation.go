// Package validation checks and normalizes user-supplied contact and
// credential fields.
package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/contact-service/internal/domain"
)

var (
	namePattern     = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	phonePattern    = regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,15}$`)
	phoneDisallowed = regexp.MustCompile(`[^\d+]`)
)

// FieldError reports why a single field was rejected.
type FieldError struct {
	Field   string
	Message string
}

type rule struct {
	field    string
	tag      string
	messages map[string]string
	fallback string
}

func (r rule) message(tag string) string {
	if msg, ok := r.messages[tag]; ok {
		return msg
	}
	return r.fallback
}

var (
	nameRule = rule{
		field:    "name",
		tag:      "required,min=2,max=50,contactname",
		messages: map[string]string{"contactname": "Name can only contain letters and spaces"},
		fallback: "Name must be between 2 and 50 characters",
	}
	emailRule = rule{
		field:    "email",
		tag:      "required,email,max=254",
		fallback: "Please provide a valid email address",
	}
	phoneRule = rule{
		field:    "phone",
		tag:      "required,contactphone",
		fallback: "Please provide a valid phone number (10-15 digits)",
	}
	typeRule = rule{
		field:    "type",
		tag:      "required,oneof=personal work",
		fallback: "Contact type must be either personal or work",
	}
	passwordRule = rule{
		field:    "password",
		tag:      "required,min=6",
		fallback: "Password must be at least 6 characters long",
	}
)

// ContactInput is raw contact data as received from a client.
type ContactInput struct {
	Name  domain.Optional[string]
	Email domain.Optional[string]
	Phone domain.Optional[string]
	Type  domain.Optional[string]
}

// Validator wraps a configured go-playground validator.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with the contact-specific rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("contactname", func(fl validator.FieldLevel) bool {
		return namePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("contactphone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Contact validates in and returns the normalized fields. When partial is
// false every field is required and unset fields are checked as empty;
// when true only the fields that were supplied are checked and returned.
// Every failing field is reported, not just the first.
func (v *Validator) Contact(in ContactInput, partial bool) (domain.ContactFields, []FieldError) {
	var (
		fields domain.ContactFields
		errs   []FieldError
	)

	if in.Name.Set || !partial {
		name := NormalizeName(in.Name.Value)
		if fe := v.check(nameRule, name); fe != nil {
			errs = append(errs, *fe)
		} else {
			fields.Name = &name
		}
	}
	if in.Email.Set || !partial {
		email := NormalizeEmail(in.Email.Value)
		if fe := v.check(emailRule, email); fe != nil {
			errs = append(errs, *fe)
		} else {
			fields.Email = &email
		}
	}
	if in.Phone.Set || !partial {
		raw := strings.TrimSpace(in.Phone.Value)
		if fe := v.check(phoneRule, raw); fe != nil {
			errs = append(errs, *fe)
		} else {
			phone := NormalizePhone(raw)
			fields.Phone = &phone
		}
	}
	if in.Type.Set || !partial {
		typ := strings.ToLower(strings.TrimSpace(in.Type.Value))
		if fe := v.check(typeRule, typ); fe != nil {
			errs = append(errs, *fe)
		} else {
			ct := domain.ContactType(typ)
			fields.Type = &ct
		}
	}

	if len(errs) > 0 {
		return domain.ContactFields{}, errs
	}
	return fields, nil
}

// Credentials validates a login or registration pair and returns the
// normalized email.
func (v *Validator) Credentials(email, password string) (string, []FieldError) {
	var errs []FieldError
	email = NormalizeEmail(email)
	if fe := v.check(emailRule, email); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := v.check(passwordRule, password); fe != nil {
		errs = append(errs, *fe)
	}
	return email, errs
}

func (v *Validator) check(r rule, value string) *FieldError {
	err := v.validate.Var(value, r.tag)
	if err == nil {
		return nil
	}
	tag := ""
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		tag = verrs[0].Tag()
	}
	return &FieldError{Field: r.field, Message: r.message(tag)}
}

// NormalizeName trims surrounding whitespace.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone keeps only digits and plus signs.
func NormalizePhone(phone string) string {
	return phoneDisallowed.ReplaceAllString(phone, "")
}
