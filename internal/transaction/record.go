package transaction

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// RawRecord is one operation as decoded from the source document.
type RawRecord map[string]any

// Record holds the validated fields of one operation. A nil field means the
// raw value was missing or malformed.
type Record struct {
	ID          *int64     `json:"id" validate:"required"`
	State       *Status    `json:"state" validate:"required,oneof=EXECUTED CANCELED"`
	Date        *time.Time `json:"date" validate:"required"`
	Amount      *Amount    `json:"operationAmount" validate:"required"`
	Description *string    `json:"description" validate:"required"`
	Sender      *Party     `json:"from" validate:"omitempty"`
	Recipient   *Party     `json:"to" validate:"required"`
}

// NewRecord runs every field validator over raw. It never fails.
func NewRecord(raw RawRecord) Record {
	return Record{
		ID:          optional(ValidateID(raw["id"])),
		State:       optional(ValidateState(raw["state"])),
		Date:        optional(ValidateDate(raw["date"])),
		Amount:      optional(ValidateAmount(raw["operationAmount"])),
		Description: optional(ValidateDescription(raw["description"])),
		Sender:      optional(ValidateParty(raw["from"])),
		Recipient:   optional(ValidateParty(raw["to"])),
	}
}

// String shows only the id so that party numbers stay out of logs.
func (r Record) String() string {
	if r.ID == nil {
		return "Operation <no id>, details are hidden"
	}
	return fmt.Sprintf("Operation %d, details are hidden", *r.ID)
}

func optional[T any](v T, ok bool) *T {
	if !ok {
		return nil
	}
	return &v
}

// NewValidator returns a validator that reports fields by their source key
// and knows the account number rule for parties.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		p := sl.Current().Interface().(Party)
		if IsAccountLabel(p.Label) && len(p.Number) != AccountDigits {
			sl.ReportError(p.Number, "number", "Number", "account", "")
		}
	}, Party{})
	return v
}

// MissingFields lists the top-level source keys that failed validation.
func MissingFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	seen := make(map[string]bool, len(verrs))
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		// Record.to.number -> to
		ns := strings.SplitN(fe.Namespace(), ".", 3)
		field := fe.Field()
		if len(ns) > 1 {
			field = ns[1]
		}
		if !seen[field] {
			seen[field] = true
			out = append(out, field)
		}
	}
	return out
}
