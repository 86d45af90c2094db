package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/hideout-go/internal/domain/shared"
)

var configValidator = newConfigValidator()

// newConfigValidator names fields by their mapstructure key, so a failure
// points at what the user wrote in config.yaml or an HT_ variable.
func newConfigValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateConfig checks every section. Failures come back as
// shared.ValidationErrors keyed by dotted config path, e.g. "logging.file_path".
func ValidateConfig(cfg *Config) error {
	err := configValidator.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(shared.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, shared.NewValidationError(configKey(fe.Namespace()), describeFailure(fe)))
	}
	return out
}

// configKey drops the root struct name: "Config.logging.file_path" -> "logging.file_path"
func configKey(namespace string) string {
	if _, key, found := strings.Cut(namespace, "."); found {
		return key
	}
	return namespace
}

func describeFailure(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_if":
		field, value, _ := strings.Cut(fe.Param(), " ")
		return fmt.Sprintf("is required when %s is %s", strings.ToLower(field), value)
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fmt.Sprint(fe.Value()))
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "startswith":
		return fmt.Sprintf("must start with %q", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
