package project

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidProject = errors.New("project: invalid project")

// Input is the body of a create request.
type Input struct {
	Name         string   `json:"name" validate:"required,max=120"`
	Description  string   `json:"description,omitempty" validate:"max=500"`
	Numbers      []string `json:"dids,omitempty" validate:"dive,required"`
	GreetingType string   `json:"greetingType,omitempty" validate:"omitempty,oneof=default custom"`
	GreetingURL  string   `json:"greetingUrl,omitempty" validate:"omitempty,max=2048"`
	IsCatchAll   bool     `json:"isCatchAll,omitempty"`
}

// Patch is the body of an update request. Nil fields are not sent.
type Patch struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=500"`
	GreetingType *string `json:"greetingType,omitempty" validate:"omitempty,oneof=default custom"`
	GreetingURL  *string `json:"greetingUrl,omitempty" validate:"omitempty,max=2048"`
	IsCatchAll   *bool   `json:"isCatchAll,omitempty"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidProject, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fieldMessage(e))
	}
	return fmt.Errorf("%w: %s", ErrInvalidProject, strings.Join(msgs, "; "))
}

func fieldMessage(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
