package handler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var eventSlugExpression = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func oneOf(fl validator.FieldLevel) bool {
	matches := strings.Split(fl.Param(), " ")
	value := fl.Field().String()
	for _, match := range matches {
		if match == value {
			return true
		}
	}
	return false
}

func eventSlug(fl validator.FieldLevel) bool {
	return eventSlugExpression.MatchString(fl.Field().String())
}

// RegisterValidation hooks the custom validators into Gin's binding engine.
func RegisterValidation() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("error getting validation engine")
	}

	if err := v.RegisterValidation("oneOf", oneOf); err != nil {
		return err
	}

	return v.RegisterValidation("eventSlug", eventSlug)
}

// IsValidEventSlug reports whether slug is an acceptable externally visible
// event id.
func IsValidEventSlug(slug string) bool {
	return eventSlugExpression.MatchString(slug)
}
