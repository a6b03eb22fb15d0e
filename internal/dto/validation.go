package dto

import (
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alimikegami/marketplace-service/pkg/response"
)

const (
	MinPasswordLen = 8
	MaxPasswordLen = 25
	dateLayout     = "2006-01-02"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type validator struct {
	errors []response.ValidationError
}

func (v *validator) add(field, tag string) {
	v.errors = append(v.errors, response.ValidationError{Field: field, Tag: tag})
}

func (v *validator) required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		v.add(field, "required")
		return false
	}
	return true
}

func (v *validator) email(field, value string) {
	if v.required(field, value) && !emailRegex.MatchString(value) {
		v.add(field, "email")
	}
}

func (v *validator) length(field, value string, min, max int) {
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		v.add(field, "len")
	}
}

func (v *validator) date(field string, value *string) {
	if value == nil || *value == "" {
		return
	}
	if _, err := time.Parse(dateLayout, *value); err != nil {
		v.add(field, "date")
	}
}

func (v *validator) url(field string, value *string) {
	if value == nil || *value == "" {
		return
	}
	u, err := url.ParseRequestURI(*value)
	if err != nil || u.Host == "" {
		v.add(field, "url")
	}
}

func (v *validator) optionalLength(field string, value *string, min, max int) {
	if value != nil {
		v.length(field, *value, min, max)
	}
}
