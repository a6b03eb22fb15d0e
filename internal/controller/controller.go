package controller

import (
	"strconv"

	"github.com/alimikegami/marketplace-service/internal/dto"
	pkgdto "github.com/alimikegami/marketplace-service/pkg/dto"
	"github.com/alimikegami/marketplace-service/pkg/errs"
	"github.com/alimikegami/marketplace-service/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type validatable interface {
	Validate() []response.ValidationError
}

// bind decodes the request into payload and validates it. A non-nil result
// is the list of problems to report with a 400.
func bind(e echo.Context, payload validatable, component string) []response.ValidationError {
	if err := e.Bind(payload); err != nil {
		log.Ctx(e.Request().Context()).Info().Err(err).Str("component", component).Msg("malformed request")
		return []response.ValidationError{{Field: "body", Tag: "malformed"}}
	}

	return payload.Validate()
}

// bindFilter reads pagination and search query parameters.
func bindFilter(e echo.Context, defaultLimit int) (pkgdto.Filter, []response.ValidationError) {
	filter := pkgdto.Filter{}
	if err := (&echo.DefaultBinder{}).BindQueryParams(e, &filter); err != nil {
		return filter, []response.ValidationError{{Field: "query", Tag: "malformed"}}
	}

	return filter, filter.Normalize(defaultLimit)
}

// paramID parses the :id route parameter. Ids that are not integers cannot
// match any row and are reported as not found.
func paramID(e echo.Context) (int64, error) {
	id, err := strconv.ParseInt(e.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.ErrNotFound
	}

	return id, nil
}

func writeValidationErrors(e echo.Context, verrs []response.ValidationError) error {
	return response.WriteErrorResponse(e, errs.ErrClient, verrs)
}

// readUpload opens the multipart "file" field.
func readUpload(e echo.Context) (dto.Upload, func(), []response.ValidationError) {
	fh, err := e.FormFile("file")
	if err != nil {
		return dto.Upload{}, nil, []response.ValidationError{{Field: "file", Tag: "required"}}
	}

	f, err := fh.Open()
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "readUpload").Msg("")
		return dto.Upload{}, nil, []response.ValidationError{{Field: "file", Tag: "unreadable"}}
	}

	upload := dto.Upload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Content:     f,
	}

	return upload, func() { f.Close() }, nil
}
