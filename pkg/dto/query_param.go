package dto

import "github.com/alimikegami/marketplace-service/pkg/response"

const MaxLimit = 20

type Filter struct {
	Limit       int    `query:"limit"`
	Offset      int    `query:"offset"`
	SearchTerm  string `query:"searchTerm"`
	Email       string `query:"email"`
	IsSuspended bool   `query:"isSuspended"`
}

// Normalize applies defaultLimit when no limit was given and reports the
// parameters that are out of range.
func (f *Filter) Normalize(defaultLimit int) []response.ValidationError {
	if f.Limit == 0 {
		f.Limit = defaultLimit
	}

	var verrs []response.ValidationError
	if f.Limit < 1 || f.Limit > MaxLimit {
		verrs = append(verrs, response.ValidationError{Field: "limit", Tag: "range"})
	}
	if f.Offset < 0 {
		verrs = append(verrs, response.ValidationError{Field: "offset", Tag: "min"})
	}

	return verrs
}
