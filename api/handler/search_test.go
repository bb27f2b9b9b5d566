package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herdscout/herdscout/form"
	"github.com/herdscout/herdscout/models"
	"github.com/herdscout/herdscout/search"
)

// fakeService satisfies Service without a browser behind it.
type fakeService struct {
	result *search.Result
	opts   []form.Option
	schema *form.Schema
	err    error

	gotRanch  *models.RanchFilter
	gotAnimal *models.AnimalFilter
	gotEPD    *models.EPDFilter
}

func (f *fakeService) SearchRanch(_ context.Context, filter models.RanchFilter) (*search.Result, error) {
	f.gotRanch = &filter
	return f.result, f.err
}

func (f *fakeService) SearchAnimal(_ context.Context, filter models.AnimalFilter) (*search.Result, error) {
	f.gotAnimal = &filter
	return f.result, f.err
}

func (f *fakeService) SearchEPD(_ context.Context, filter models.EPDFilter) (*search.Result, error) {
	f.gotEPD = &filter
	return f.result, f.err
}

func (f *fakeService) Locations(_ context.Context) ([]form.Option, error) {
	return f.opts, f.err
}

func (f *fakeService) FormInfo(_ context.Context, _ form.Kind) (*form.Schema, error) {
	return f.schema, f.err
}

func testRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/search/ranch", SearchRanch(svc))
	r.POST("/search/animal", SearchAnimal(svc))
	r.POST("/search/epd", SearchEPD(svc))
	r.GET("/locations", Locations(svc))
	r.GET("/form/:kind", FormInfo(svc))
	return r
}

func okResult() *search.Result {
	table := models.NewTable("member_name", "state")
	table.Append(models.Row{"member_name": "PLAINS CATTLE CO", "state": "TX"})
	return &search.Result{Table: table, Timing: models.TimingInfo{TotalMs: 1200}}
}

func TestSearchRanch_OK(t *testing.T) {
	svc := &fakeService{result: okResult()}
	r := testRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/search/ranch",
		strings.NewReader(`{"name":"PLAINS*","location":"TX"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "ranch", resp.Kind)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, []string{"member_name", "state"}, resp.Columns)

	require.NotNil(t, svc.gotRanch)
	assert.Equal(t, "PLAINS*", svc.gotRanch.Name)
	assert.Equal(t, "TX", svc.gotRanch.Location)
}

func TestSearchRanch_BadJSON(t *testing.T) {
	r := testRouter(&fakeService{result: okResult()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/search/ranch", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, models.ErrCodeInvalidInput, resp.Error.Code)
}

func TestSearchAnimal_ErrorMapping(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{models.ErrCodeResultTimeout, http.StatusGatewayTimeout},
		{models.ErrCodeNavigation, http.StatusBadGateway},
		{models.ErrCodeBrowserCrash, http.StatusBadGateway},
		{models.ErrCodeNoOptionMatch, http.StatusBadRequest},
		{models.ErrCodeFormNotFound, http.StatusNotFound},
		{models.ErrCodeFieldMissing, http.StatusNotFound},
		{models.ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		svc := &fakeService{err: models.NewSearchError(tt.code, "boom", nil)}
		r := testRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/search/animal",
			strings.NewReader(`{"value":"4321"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, tt.want, w.Code, "code %s", tt.code)

		var resp models.SearchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, tt.code, resp.Error.Code)
	}
}

func TestSearchEPD_PassesFilter(t *testing.T) {
	svc := &fakeService{result: okResult()}
	r := testRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/search/epd",
		strings.NewReader(`{"sex":"B","sort":"ww","traits":{"ww":{"min":"60"}}}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.gotEPD)
	assert.Equal(t, "B", svc.gotEPD.Sex)
	assert.Equal(t, "60", svc.gotEPD.Traits["ww"].Min)
}

func TestLocations(t *testing.T) {
	svc := &fakeService{opts: []form.Option{
		{Value: "United States|TX", Label: "Texas"},
		{Value: "United States|OK", Label: "Oklahoma"},
	}}
	r := testRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/locations", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.LocationsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "Texas", resp.Options[0].Label)
}

func TestFormInfo(t *testing.T) {
	svc := &fakeService{schema: &form.Schema{
		Kind: form.KindRanch,
		Fields: map[string]form.Field{
			form.RanchFieldName: {ID: form.RanchFieldName, Type: form.TypeText},
			form.RanchFieldLocation: {
				ID:   form.RanchFieldLocation,
				Type: form.TypeSelect,
				Options: []form.Option{
					{Value: "United States|TX", Label: "Texas"},
				},
			},
		},
		Order:       []string{form.RanchFieldName, form.RanchFieldLocation},
		Submit:      form.Submit{FuncName: "doSearch_Ranch", ButtonLabel: "Search..."},
		Fingerprint: 0xdeadbeef,
	}}
	r := testRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/form/ranch", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.FormInfoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "ranch", resp.Kind)
	require.Len(t, resp.Fields, 2)
	assert.Equal(t, form.RanchFieldName, resp.Fields[0].ID)
	assert.Equal(t, "Texas", resp.Fields[1].Options[0].Label)
	assert.Equal(t, "doSearch_Ranch", resp.SubmitFunc)
	assert.Equal(t, "00000000deadbeef", resp.Fingerprint)
}

func TestFormInfo_UnknownKind(t *testing.T) {
	r := testRouter(&fakeService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/form/herd", nil))

	require.Equal(t, http.StatusBadRequest, w.Code)
}
