package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yndnr/csrftok/pkg/csrf"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their configuration key.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("csrf_algorithm", func(fl validator.FieldLevel) bool {
		return csrf.SupportsAlgorithm(fl.Field().String())
	})
	return v
}

// Verify validates the configuration.
func Verify(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, describe(fe))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Rules the struct tags cannot express, e.g. sub-millisecond validity.
	if err := cfg.ToTokenizerConfig().Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// describe renders a validation failure as "tokenizer.salt_length must be gte 1".
func describe(fe validator.FieldError) string {
	key := fe.Namespace()
	if _, rest, ok := strings.Cut(key, "."); ok {
		key = rest
	}

	switch fe.Tag() {
	case "required":
		return key + " is required"
	case "csrf_algorithm":
		return fmt.Sprintf("%s %q is not a supported algorithm (%s)", key, fe.Value(), strings.Join(csrf.Algorithms(), ", "))
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", key, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s must be %s %s, got %v", key, fe.Tag(), fe.Param(), fe.Value())
	}
}
