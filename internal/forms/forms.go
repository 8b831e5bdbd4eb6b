// Package forms validates login, registration, and profile input before any
// network call. Validation failures are field-scoped and block submission;
// they never reach the service.
package forms

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Login is the login form.
type Login struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// Register is the registration form. ConfirmPassword must equal Password and
// is never sent to the service.
type Register struct {
	FirstName       string `validate:"required"`
	LastName        string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// Profile is the profile-update form.
type Profile struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Email     string `validate:"required,email"`
}

// Errors maps struct field names to a single display message each.
type Errors map[string]string

// Has reports whether the field failed validation.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// labels are the display names used in "<label> is required" messages.
var labels = map[string]string{
	"Email":           "Email",
	"Password":        "Password",
	"FirstName":       "First name",
	"LastName":        "Last name",
	"ConfirmPassword": "Confirm password",
}

// message renders one validation failure the way the dashboards display it.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		label := labels[fe.Field()]
		if label == "" {
			label = fe.Field()
		}
		return label + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return "Password must be at least 6 characters long"
	case "eqfield":
		return "Passwords must match"
	}
	return "Invalid value"
}

// Validate checks any of the form structs above. A nil return means the form
// may be submitted; otherwise every failing field carries one message and no
// request must be issued.
func Validate(form any) Errors {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// Not a field failure; treat the whole form as unsubmittable.
		return Errors{"": "Invalid form"}
	}
	errs := make(Errors, len(verrs))
	for _, fe := range verrs {
		if _, seen := errs[fe.Field()]; !seen {
			errs[fe.Field()] = message(fe)
		}
	}
	return errs
}
