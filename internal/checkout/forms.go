package checkout

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/handloomhouse/storefront-backend/pkg/errors"
)

// Payment methods accepted by the wizard.
const (
	MethodCard = "card"
	MethodUPI  = "upi"
)

// ShippingForm is the address step payload.
type ShippingForm struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required,min=2"`
	LastName  string `json:"lastName" validate:"required,min=2"`
	Phone     string `json:"phone" validate:"required,min=6"`
	Address   string `json:"address" validate:"required,min=5"`
	City      string `json:"city" validate:"required,min=2"`
	State     string `json:"state" validate:"required,min=2"`
	Zip       string `json:"zip" validate:"required,zipcode"`
}

// PaymentForm is the payment step payload. Card fields are only required for
// the card method, the VPA only for upi.
type PaymentForm struct {
	Method     string `json:"method" validate:"required,oneof=card upi"`
	CardNumber string `json:"cardNumber" validate:"required_if=Method card,omitempty,cardnumber"`
	NameOnCard string `json:"nameOnCard" validate:"required_if=Method card,omitempty,min=4"`
	Exp        string `json:"exp" validate:"required_if=Method card,omitempty,expiry"`
	CVV        string `json:"cvv" validate:"required_if=Method card,omitempty,cvv"`
	UPIHandle  string `json:"upi" validate:"required_if=Method upi,omitempty,upivpa"`
}

// CardLast4 returns the trailing digits of the card number for order records.
func (f PaymentForm) CardLast4() string {
	digits := strings.ReplaceAll(strings.TrimSpace(f.CardNumber), " ", "")
	if len(digits) < 4 {
		return ""
	}
	return digits[len(digits)-4:]
}

var (
	zipPattern  = regexp.MustCompile(`^\d{5,6}$`)
	cardPattern = regexp.MustCompile(`^\d{16}$`)
	cvvPattern  = regexp.MustCompile(`^\d{3}$`)
	expPattern  = regexp.MustCompile(`^(\d{2})/(\d{2})$`)
	vpaPattern  = regexp.MustCompile(`^[a-zA-Z0-9.\-_]{2,}@[a-zA-Z]{2,}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	v.RegisterValidation("zipcode", func(fl validator.FieldLevel) bool {
		return zipPattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("cardnumber", func(fl validator.FieldLevel) bool {
		return cardPattern.MatchString(strings.ReplaceAll(fl.Field().String(), " ", ""))
	})
	v.RegisterValidation("cvv", func(fl validator.FieldLevel) bool {
		return cvvPattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("expiry", func(fl validator.FieldLevel) bool {
		m := expPattern.FindStringSubmatch(fl.Field().String())
		if m == nil {
			return false
		}
		month, err := strconv.Atoi(m[1])
		if err != nil {
			return false
		}
		return month >= 1 && month <= 12
	})
	v.RegisterValidation("upivpa", func(fl validator.FieldLevel) bool {
		return vpaPattern.MatchString(fl.Field().String())
	})
	return v
}

// validateForm runs the struct rules and flattens violations into a stable
// per-field details map.
func validateForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(errors.CodeValidation, err, "validation failed")
	}
	details := map[string]string{}
	for _, fieldErr := range errs {
		details[fieldErr.Field()] = fieldMessage(fieldErr)
	}
	return errors.New(errors.CodeValidation, "validation failed").WithDetails(details)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of card, upi"
	case "zipcode":
		return "must be 5 or 6 digits"
	case "cardnumber":
		return "must be 16 digits"
	case "cvv":
		return "must be 3 digits"
	case "expiry":
		return "must be MM/YY with month 01-12"
	case "upivpa":
		return "must be a valid UPI handle like name@bank"
	}
	return "is invalid"
}
