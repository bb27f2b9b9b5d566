package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/herdscout/herdscout/form"
	"github.com/herdscout/herdscout/models"
	"github.com/herdscout/herdscout/search"
)

// Service is what the handlers need from the search layer. Narrowed to an
// interface so handler tests can run against a fake without a browser.
type Service interface {
	SearchRanch(ctx context.Context, filter models.RanchFilter) (*search.Result, error)
	SearchAnimal(ctx context.Context, filter models.AnimalFilter) (*search.Result, error)
	SearchEPD(ctx context.Context, filter models.EPDFilter) (*search.Result, error)
	Locations(ctx context.Context) ([]form.Option, error)
	FormInfo(ctx context.Context, kind form.Kind) (*form.Schema, error)
}

// SearchRanch returns a handler for POST /api/v1/search/ranch.
func SearchRanch(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter models.RanchFilter
		if err := c.ShouldBindJSON(&filter); err != nil {
			respondBadRequest(c, err)
			return
		}
		respondSearch(c, form.KindRanch, func(ctx context.Context) (*search.Result, error) {
			return svc.SearchRanch(ctx, filter)
		})
	}
}

// SearchAnimal returns a handler for POST /api/v1/search/animal.
func SearchAnimal(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter models.AnimalFilter
		if err := c.ShouldBindJSON(&filter); err != nil {
			respondBadRequest(c, err)
			return
		}
		respondSearch(c, form.KindAnimal, func(ctx context.Context) (*search.Result, error) {
			return svc.SearchAnimal(ctx, filter)
		})
	}
}

// SearchEPD returns a handler for POST /api/v1/search/epd.
func SearchEPD(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter models.EPDFilter
		if err := c.ShouldBindJSON(&filter); err != nil {
			respondBadRequest(c, err)
			return
		}
		respondSearch(c, form.KindEPD, func(ctx context.Context) (*search.Result, error) {
			return svc.SearchEPD(ctx, filter)
		})
	}
}

// respondSearch runs one search and writes the standard response shape.
func respondSearch(c *gin.Context, kind form.Kind, run func(context.Context) (*search.Result, error)) {
	start := time.Now()

	result, err := run(c.Request.Context())
	if err != nil {
		respondError(c, err, models.TimingInfo{
			TotalMs: time.Since(start).Milliseconds(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SearchResponse{
		Success: true,
		Kind:    string(kind),
		Columns: result.Table.Columns,
		Rows:    result.Table.Rows,
		Count:   result.Table.Len(),
		Timing:  result.Timing,
	})
}

// Locations returns a handler for GET /api/v1/locations.
func Locations(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts, err := svc.Locations(c.Request.Context())
		if err != nil {
			respondError(c, err, models.TimingInfo{})
			return
		}

		infos := make([]models.OptionInfo, len(opts))
		for i, o := range opts {
			infos[i] = models.OptionInfo{Value: o.Value, Label: o.Label}
		}
		c.JSON(http.StatusOK, models.LocationsResponse{
			Success: true,
			Options: infos,
			Count:   len(infos),
		})
	}
}

// FormInfo returns a handler for GET /api/v1/form/:kind.
func FormInfo(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind, err := form.ParseKind(c.Param("kind"))
		if err != nil {
			respondError(c, err, models.TimingInfo{})
			return
		}

		schema, err := svc.FormInfo(c.Request.Context(), kind)
		if err != nil {
			respondError(c, err, models.TimingInfo{})
			return
		}

		c.JSON(http.StatusOK, schemaToResponse(schema))
	}
}

func schemaToResponse(schema *form.Schema) models.FormInfoResponse {
	fields := make([]models.FieldInfo, 0, len(schema.Order))
	for _, key := range schema.Order {
		f := schema.Fields[key]
		info := models.FieldInfo{ID: f.ID, Name: f.Name, Type: f.Type}
		for _, o := range f.Options {
			info.Options = append(info.Options, models.OptionInfo{Value: o.Value, Label: o.Label})
		}
		fields = append(fields, info)
	}
	return models.FormInfoResponse{
		Success:     true,
		Kind:        string(schema.Kind),
		Fields:      fields,
		SubmitFunc:  schema.Submit.FuncName,
		SubmitLabel: schema.Submit.ButtonLabel,
		Fingerprint: fmt.Sprintf("%016x", schema.Fingerprint),
	}
}

// Health returns a handler for GET /api/v1/health. It sits outside auth so
// monitoring probes always work.
func Health(startTime time.Time, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{
			Status:  "healthy",
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: version,
		})
	}
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.SearchResponse{
		Success: false,
		Error: &models.ErrorDetail{
			Code:    models.ErrCodeInvalidInput,
			Message: err.Error(),
		},
	})
}

// respondError maps a SearchError to the correct HTTP status code and writes
// a structured JSON error response.
func respondError(c *gin.Context, err error, timing models.TimingInfo) {
	var searchErr *models.SearchError
	if !errors.As(err, &searchErr) {
		searchErr = models.NewSearchError(models.ErrCodeInternal, err.Error(), err)
	}

	c.JSON(mapErrorToStatus(searchErr), models.SearchResponse{
		Success: false,
		Error:   searchErr.ToDetail(),
		Timing:  timing,
	})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.SearchError) int {
	switch e.Code {
	case models.ErrCodeResultTimeout:
		return http.StatusGatewayTimeout // 504
	case models.ErrCodeNavigation, models.ErrCodeBrowserCrash:
		return http.StatusBadGateway // 502
	case models.ErrCodeInvalidInput, models.ErrCodeNoOptionMatch:
		return http.StatusBadRequest // 400
	case models.ErrCodeFormNotFound, models.ErrCodeFieldMissing:
		return http.StatusNotFound // 404
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	default:
		return http.StatusInternalServerError // 500
	}
}
