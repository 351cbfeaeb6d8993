package checkout

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"shopfront/internal/domain"

	"github.com/go-playground/validator/v10"
)

// PaymentMethod is the id a client picks on the payment step.
type PaymentMethod string

const (
	PaymentUPI  PaymentMethod = "upi"
	PaymentCard PaymentMethod = "card"
	PaymentEMI  PaymentMethod = "emi"
	PaymentCOD  PaymentMethod = "cod"
)

var paymentLabels = map[PaymentMethod]string{
	PaymentUPI:  "UPI",
	PaymentCard: "Credit/Debit Card",
	PaymentEMI:  "EMI",
	PaymentCOD:  "Cash on Delivery",
}

// PaymentMethods lists the accepted methods in display order.
var PaymentMethods = []PaymentMethod{PaymentUPI, PaymentCard, PaymentEMI, PaymentCOD}

// Label is the name recorded on the order for m.
func (m PaymentMethod) Label() string {
	return paymentLabels[m]
}

// PaymentInput is the payment form. Only the fields of the chosen method are read.
type PaymentInput struct {
	Method     PaymentMethod `json:"method"`
	UPIID      string        `json:"upiId,omitempty"`
	CardNumber string        `json:"cardNumber,omitempty"`
	CardExpiry string        `json:"cardExpiry,omitempty"`
	CardCVV    string        `json:"cardCvv,omitempty"`
}

var expiryPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)

// ValidatePayment checks the fields the chosen method needs. EMI and cash on
// delivery need none.
func ValidatePayment(in PaymentInput) error {
	const op = "checkout.payment"
	switch in.Method {
	case PaymentUPI:
		if !strings.Contains(in.UPIID, "@") {
			return domain.NewValidationError(op, "upiId", "Please enter a valid UPI ID")
		}
	case PaymentCard:
		fields := map[string]string{}
		number := strings.Join(strings.Fields(in.CardNumber), "")
		if len(number) < 16 || !allDigits(number) {
			fields["cardNumber"] = "Please enter a valid card number"
		}
		if !expiryPattern.MatchString(in.CardExpiry) {
			fields["cardExpiry"] = "Please enter a valid expiry date (MM/YY)"
		}
		if len(in.CardCVV) < 3 || !allDigits(in.CardCVV) {
			fields["cardCvv"] = "Please enter a valid CVV"
		}
		if len(fields) > 0 {
			return &domain.ValidationError{Op: op, Fields: fields}
		}
	case PaymentEMI, PaymentCOD:
	default:
		return domain.NewValidationError(op, "method", "Unsupported payment method")
	}
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "digits", func(fl validator.FieldLevel) bool {
		return allDigits(fl.Field().String())
	})
	return v
}

// mustRegister adds a custom tag and panics if validator refuses it.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tag, err))
	}
}

// normalizeAddress trims every field.
func normalizeAddress(a domain.Address) domain.Address {
	return domain.Address{
		Name:    strings.TrimSpace(a.Name),
		Email:   strings.TrimSpace(a.Email),
		Phone:   strings.TrimSpace(a.Phone),
		Address: strings.TrimSpace(a.Address),
		City:    strings.TrimSpace(a.City),
		State:   strings.TrimSpace(a.State),
		Pincode: strings.TrimSpace(a.Pincode),
	}
}

func (s *Service) validateAddress(a domain.Address) error {
	err := s.validate.Struct(a)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = addressMessage(fe)
	}
	return &domain.ValidationError{Op: "checkout.address", Fields: fields}
}

func addressMessage(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		return label(fe.Field()) + " is required"
	}
	switch fe.Field() {
	case "email":
		return "Invalid email"
	case "phone":
		return "Invalid phone number"
	case "pincode":
		return "Invalid pincode"
	}
	return "Invalid " + fe.Field()
}

func label(field string) string {
	if field == "" {
		return field
	}
	r := []rune(field)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
