package types

import (
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared struct validator. Date fields are validated
// by their authored string so that `required` rejects missing dates.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterCustomTypeFunc(func(v reflect.Value) any {
			if d, ok := v.Interface().(Date); ok {
				return d.Raw()
			}
			return nil
		}, Date{})
	})
	return validate
}

// Validate checks a content record against its struct tags.
func Validate(record any) error {
	return Validator().Struct(record)
}
