package order

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// Shapes match the storefront's checkout rules: a local@domain.tld email,
	// a 10-digit Indian mobile number, and a Pune-area postal code.
	emailRE   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobileRE  = regexp.MustCompile(`^[6-9]\d{9}$`)
	pincodeRE = regexp.MustCompile(`^41\d{4}$`)
)

// newFormValidator builds the validator used for CheckoutForm. Field names in
// reported errors come from the `form` tag so they match the storefront's
// field identifiers.
func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "storemail", emailRE)
	mustRegister(v, "inmobile", mobileRE)
	mustRegister(v, "punepin", pincodeRE)

	return v
}

func mustRegister(v *validator.Validate, tag string, re *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// fieldMessage translates a failed validation tag into user-facing feedback.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "storemail":
		return "please enter a valid email address"
	case "inmobile":
		return "please enter a valid 10-digit mobile number"
	case "punepin":
		return "we currently deliver only in Pune (pincode starting with 41)"
	default:
		return "invalid value"
	}
}
