package validation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/contact-service/internal/domain"
)

func fullInput(name, email, phone, typ string) ContactInput {
	return ContactInput{
		Name:  domain.Some(name),
		Email: domain.Some(email),
		Phone: domain.Some(phone),
		Type:  domain.Some(typ),
	}
}

func TestContact_NormalizesValidInput(t *testing.T) {
	v := New()

	fields, errs := v.Contact(fullInput("  Alice Johnson ", " Alice@X.com", "+1 (234) 567-890", "Personal"), false)
	require.Empty(t, errs)

	require.NotNil(t, fields.Name)
	assert.Equal(t, "Alice Johnson", *fields.Name)
	assert.Equal(t, "alice@x.com", *fields.Email)
	assert.Equal(t, "+1234567890", *fields.Phone)
	assert.Equal(t, domain.ContactTypePersonal, *fields.Type)
}

func TestContact_ReportsEveryFailingField(t *testing.T) {
	v := New()

	_, errs := v.Contact(fullInput("A1", "not-an-email", "12", "family"), false)

	want := []FieldError{
		{Field: "name", Message: "Name can only contain letters and spaces"},
		{Field: "email", Message: "Please provide a valid email address"},
		{Field: "phone", Message: "Please provide a valid phone number (10-15 digits)"},
		{Field: "type", Message: "Contact type must be either personal or work"},
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
}

func TestContact_MissingFieldsOnCreate(t *testing.T) {
	v := New()

	_, errs := v.Contact(ContactInput{Email: domain.Some("bob@example.com")}, false)

	fieldsSeen := make([]string, 0, len(errs))
	for _, fe := range errs {
		fieldsSeen = append(fieldsSeen, fe.Field)
	}
	assert.Equal(t, []string{"name", "phone", "type"}, fieldsSeen)
}

func TestContact_NameRules(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{name: "single letter", input: "A", wantMsg: "Name must be between 2 and 50 characters"},
		{name: "whitespace only", input: "   ", wantMsg: "Name must be between 2 and 50 characters"},
		{name: "too long", input: "Abcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwxyz", wantMsg: "Name must be between 2 and 50 characters"},
		{name: "digits", input: "R2 D2", wantMsg: "Name can only contain letters and spaces"},
		{name: "ok", input: "Jo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := v.Contact(ContactInput{Name: domain.Some(tt.input)}, true)
			if tt.wantMsg == "" {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			assert.Equal(t, "name", errs[0].Field)
			assert.Equal(t, tt.wantMsg, errs[0].Message)
		})
	}
}

func TestContact_PartialOnlyChecksPresentFields(t *testing.T) {
	v := New()

	fields, errs := v.Contact(ContactInput{Type: domain.Some("WORK")}, true)
	require.Empty(t, errs)
	assert.Nil(t, fields.Name)
	assert.Nil(t, fields.Email)
	assert.Nil(t, fields.Phone)
	require.NotNil(t, fields.Type)
	assert.Equal(t, domain.ContactTypeWork, *fields.Type)

	fields, errs = v.Contact(ContactInput{}, true)
	assert.Empty(t, errs)
	assert.True(t, fields.IsEmpty())
}

func TestContact_PresentButEmptyIsValidated(t *testing.T) {
	v := New()

	_, errs := v.Contact(ContactInput{Phone: domain.Some("")}, true)
	require.Len(t, errs, 1)
	assert.Equal(t, "phone", errs[0].Field)
}

func TestCredentials(t *testing.T) {
	v := New()

	email, errs := v.Credentials(" John@Example.com ", "password123")
	assert.Empty(t, errs)
	assert.Equal(t, "john@example.com", email)

	_, errs = v.Credentials("john", "123")
	require.Len(t, errs, 2)
	assert.Equal(t, "email", errs[0].Field)
	assert.Equal(t, "Password must be at least 6 characters long", errs[1].Message)
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+15551234567", NormalizePhone("+1 (555) 123-4567"))
	assert.Equal(t, "5551234567", NormalizePhone("555.123.4567"))
}
