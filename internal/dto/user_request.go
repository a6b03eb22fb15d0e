package dto

import (
	"strings"

	"github.com/alimikegami/marketplace-service/pkg/response"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() []response.ValidationError {
	var v validator
	v.required("email", r.Email)
	v.required("password", r.Password)
	return v.errors
}

type RegisterRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	BirthDate *string `json:"birthDate"`
	Phone     *string `json:"phone"`
	Locale    string  `json:"locale"`
}

func (r *RegisterRequest) Validate() []response.ValidationError {
	r.Email = strings.TrimSpace(r.Email)

	var v validator
	v.email("email", r.Email)
	if len(r.Password) < MinPasswordLen {
		v.add("password", "min")
	}
	if v.required("firstName", r.FirstName) {
		v.length("firstName", r.FirstName, 1, 255)
	}
	if v.required("lastName", r.LastName) {
		v.length("lastName", r.LastName, 1, 255)
	}
	v.date("birthDate", r.BirthDate)
	v.optionalLength("phone", r.Phone, 0, 255)
	return v.errors
}

// UpdateUserRequest carries the profile fields of PUT /users/:id. Nil fields
// are left untouched.
type UpdateUserRequest struct {
	Email       string  `json:"email"`
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	BirthDate   *string `json:"birthDate"`
	Phone       *string `json:"phone"`
	Locale      *string `json:"locale"`
	IsSuspended *bool   `json:"isSuspended"`
}

func (r *UpdateUserRequest) Validate() []response.ValidationError {
	r.Email = strings.TrimSpace(r.Email)

	var v validator
	v.email("email", r.Email)
	v.optionalLength("firstName", r.FirstName, 1, 255)
	v.optionalLength("lastName", r.LastName, 1, 255)
	v.date("birthDate", r.BirthDate)
	v.optionalLength("phone", r.Phone, 0, 255)
	return v.errors
}

type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

func (r ChangePasswordRequest) Validate() []response.ValidationError {
	var v validator
	if v.required("newPassword", r.NewPassword) {
		v.length("newPassword", r.NewPassword, MinPasswordLen, MaxPasswordLen)
	}
	return v.errors
}

// EmailRequest is the body of the reset-password and impersonate routes.
type EmailRequest struct {
	Email string `json:"email"`
}

func (r *EmailRequest) Validate() []response.ValidationError {
	r.Email = strings.TrimSpace(r.Email)

	var v validator
	v.email("email", r.Email)
	return v.errors
}
