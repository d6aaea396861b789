package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"taqueando-console/internal/domain"
)

var ErrValidation = errors.New("validation failed")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	v.RegisterStructValidation(arqueoConsistency, domain.ArqueoInput{})
	return v
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

// arqueoConsistency enforces the derived fields: the counted total matches
// the count, the discrepancy matches its formula and the status its sign.
func arqueoConsistency(sl validator.StructLevel) {
	in := sl.Current().Interface().(domain.ArqueoInput)

	if !in.CountedTotal.Equal(in.Counts.Total()) {
		sl.ReportError(in.CountedTotal, "CountedTotal", "totalContado", "counted_total", "")
	}
	if !in.Discrepancy.Equal(ComputeDiscrepancy(in.CountedTotal, in.PettyCash, in.SystemTotal)) {
		sl.ReportError(in.Discrepancy, "Discrepancy", "diferencia", "discrepancy", "")
	}
	if in.Status != ClassifyDiscrepancy(in.Discrepancy) {
		sl.ReportError(in.Status, "Status", "estado", "status", "")
	}
}

// ValidateArqueo checks an arqueo before it is sent.
func ValidateArqueo(in domain.ArqueoInput) error {
	if err := validate.Struct(in); err != nil {
		return &ValidationError{Fields: ProcessValidationErrors(err)}
	}
	return nil
}

// ValidateNewOrder checks an order before it is sent.
func ValidateNewOrder(in domain.NewOrder) error {
	if err := validate.Struct(in); err != nil {
		return &ValidationError{Fields: ProcessValidationErrors(err)}
	}
	return nil
}

// ValidationError lists the offending fields and the rule each one broke.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+":"+e.Fields[k])
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func ProcessValidationErrors(err error) map[string]string {
	errorResponse := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errorResponse["_"] = err.Error()
		return errorResponse
	}
	for _, ve := range validationErrors {
		errorResponse[ve.Field()] = ve.Tag()
	}
	return errorResponse
}
