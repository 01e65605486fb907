// Package validation owns the validator instance shared by gin request binding and the services.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// LinkedInProfileMarker must appear in every lead URL
const LinkedInProfileMarker = "linkedin.com/in/"

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator with the custom rules registered
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		v.SetTagName("binding")
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		// Registration only fails for empty tags or nil funcs.
		_ = v.RegisterValidation("notblank", notBlank)
		_ = v.RegisterValidation("linkedin_profile", linkedInProfile)
		validate = v
	})
	return validate
}

// IsLinkedInProfileURL is the lead predicate: the value must reference a LinkedIn profile
func IsLinkedInProfileURL(s string) bool {
	return strings.Contains(s, LinkedInProfileMarker)
}

// Struct validates a struct against its binding tags
func Struct(s any) error {
	return Validator().Struct(s)
}

// Var validates a single value against a tag expression
func Var(field any, tag string) error {
	return Validator().Var(field, tag)
}

// MissingFields extracts the names of blank required fields, in declaration order
func MissingFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	var fields []string
	for _, fe := range verrs {
		if fe.Tag() == "notblank" || fe.Tag() == "required" {
			fields = append(fields, fe.Field())
		}
	}
	return fields
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return strings.TrimSpace(field.String()) != ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return field.Len() > 0
	case reflect.Ptr, reflect.Interface:
		return !field.IsNil()
	default:
		return !field.IsZero()
	}
}

func linkedInProfile(fl validator.FieldLevel) bool {
	return IsLinkedInProfileURL(fl.Field().String())
}

type ginValidator struct {
	validate *validator.Validate
}

// GinValidator adapts the shared validator to gin's binding engine
func GinValidator() binding.StructValidator {
	return &ginValidator{validate: Validator()}
}

func (g *ginValidator) ValidateStruct(obj any) error {
	if obj == nil {
		return nil
	}
	val := reflect.ValueOf(obj)
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}
	return g.validate.Struct(obj)
}

func (g *ginValidator) Engine() any {
	return g.validate
}
