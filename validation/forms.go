package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"invoicegen-cli/models"
	"invoicegen-cli/utils"
)

var validate = validator.New()

// Messages shown to the user. They match the original form feedback
// verbatim so error handling stays recognizable across clients.
var (
	ErrMissingFields   = errors.New("Please fill in all required fields")
	ErrMissingCustomer = errors.New("Please fill in customer name and email")
	ErrInvalidEmail    = errors.New("Please enter a valid email address")
	ErrInvalidContact  = errors.New("Please enter a valid 10-digit contact number")
	ErrNoProducts      = errors.New("Please add at least one product")
)

// SignupForm collects the pre-authentication profile. The JSON tags are
// the wire names of the multipart `user` part.
type SignupForm struct {
	UserName    string `json:"userName" validate:"required"`
	Password    string `json:"password" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	ContactNo   string `json:"contactNo" validate:"required,len=10,numeric"`
	CompanyName string `json:"companyName" validate:"required"`
}

// Validate normalizes and checks the form, returning a user-facing
// message on the first failed rule. Required fields win over format
// rules, mirroring the order the original form checked them in.
func (f *SignupForm) Validate() error {
	utils.NormalizeForm(f)
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return ErrMissingFields
	}
	for _, fe := range ve {
		if fe.Tag() == "required" {
			return ErrMissingFields
		}
	}
	for _, fe := range ve {
		switch fe.Field() {
		case "Email":
			return ErrInvalidEmail
		case "ContactNo":
			return ErrInvalidContact
		}
	}
	return ErrMissingFields
}

type customerInfo struct {
	CustomerName  string `validate:"required"`
	CustomerEmail string `validate:"required,email"`
}

// ValidateCustomer checks the customer header fields of a draft.
func ValidateCustomer(name, email string) error {
	info := customerInfo{CustomerName: name, CustomerEmail: email}
	utils.NormalizeForm(&info)
	err := validate.Struct(&info)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return ErrMissingCustomer
	}
	for _, fe := range ve {
		if fe.Tag() == "required" {
			return ErrMissingCustomer
		}
	}
	return ErrInvalidEmail
}

// ValidateDraft is the full submission gate: customer fields plus at
// least one valid product line. Validation failures stop the submit
// before any network call is attempted.
func ValidateDraft(d *models.Draft) error {
	if err := ValidateCustomer(d.CustomerName, d.CustomerEmail); err != nil {
		return err
	}
	if len(d.ValidProducts()) == 0 {
		return ErrNoProducts
	}
	return nil
}
