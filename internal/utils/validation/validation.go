// Package validation holds the struct validation rules shared by request binding and services.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	once     sync.Once
	instance *validator.Validate
)

var hundred = decimal.NewFromInt(100)

// Register adds the custom money and date rules to v.
func Register(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, domain.Amount{})
	rules := map[string]validator.Func{
		"money":   validateMoney,
		"percent": validatePercent,
		"isodate": validateISODate,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s validation: %w", tag, err)
		}
	}
	return nil
}

// Validator returns a shared validator with the custom rules registered. It reads the
// same "binding" tags gin uses, so request DTOs validate identically outside HTTP.
func Validator() *validator.Validate {
	once.Do(func() {
		instance = validator.New()
		instance.SetTagName("binding")
		if err := Register(instance); err != nil {
			panic(err)
		}
	})
	return instance
}

// Struct validates s and flattens validator errors into one readable error.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "money":
		return fmt.Sprintf("%s must be a non-negative amount", fe.Field())
	case "percent":
		return fmt.Sprintf("%s must be between 0 and 100", fe.Field())
	case "isodate":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// decimalValue exposes decimals to the validator as their string form.
func decimalValue(field reflect.Value) any {
	switch v := field.Interface().(type) {
	case decimal.Decimal:
		return v.String()
	case domain.Amount:
		return v.String()
	}
	return nil
}

func fieldDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	field := fl.Field()
	if field.Kind() == reflect.String {
		d, err := decimal.NewFromString(field.String())
		return d, err == nil
	}
	return decimal.Zero, false
}

func validateMoney(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	return ok && !d.IsNegative()
}

func validatePercent(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	return ok && !d.IsNegative() && d.LessThanOrEqual(hundred)
}

func validateISODate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := domain.ParseDate(s)
	return err == nil
}
