package converter

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nightlife-portal/apps/portal-service/model"
	"nightlife-portal/pkg/httpx"
)

func TestPageNumber(t *testing.T) {
	c := NewConverter()
	tests := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"3", 3},
		{"0", 1},
		{"-2", 1},
		{"abc", 1},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, c.PageNumber(url.Values{QueryPageNumber: {tt.raw}}))
		})
	}
}

func TestListParams(t *testing.T) {
	c := NewConverter()
	q := url.Values{
		QueryPageNumber: {"2"},
		QuerySearch:     {"  bonfire "},
		QueryAdmin:      {"true"},
		QueryCategory:   {"Social"},
		QueryType:       {"Internship"},
	}

	events := c.ListParams(q, QueryCategory)
	assert.Equal(t, 2, events.Page)
	assert.Equal(t, model.DefaultPageSize, events.PageSize)
	assert.Equal(t, "bonfire", events.Search)
	assert.True(t, events.Admin)
	assert.Equal(t, "Social", events.Category)
	assert.Empty(t, events.Type)

	jobs := c.ListParams(q, QueryType)
	assert.Equal(t, "Internship", jobs.Type)
	assert.Empty(t, jobs.Category)

	public := c.ListParams(url.Values{QueryAdmin: {"yes"}}, QueryCategory)
	assert.False(t, public.Admin)
}

func TestDataURI(t *testing.T) {
	c := NewConverter()
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", c.DataURI("image/png", []byte("hello")))
	assert.Equal(t, "data:video/mp4;base64,", c.DataURI("video/mp4", nil))
}

func TestAPIError(t *testing.T) {
	c := NewConverter()

	var apiErr *httpx.APIError
	err := c.APIError(&model.ValidationError{Errors: []model.FieldError{
		{Field: "title", Message: "title is required", Tag: "required"},
		{Field: "image", Message: "image is required", Tag: "required"},
	}}, model.MsgBlogNotFound)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Len(t, apiErr.Errors, 2)

	err = c.APIError(fmt.Errorf("update: %w", model.ErrNotFound), model.MsgEventNotFound)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, model.MsgEventNotFound, apiErr.Message)

	err = c.APIError(model.ErrInvalidID, model.MsgJobNotFound)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	err = c.APIError(model.ErrInvalidCredentials, "")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, MsgInvalidCredentials, apiErr.Message)

	storage := errors.New("connection reset")
	assert.Equal(t, storage, c.APIError(storage, model.MsgBlogNotFound))
	assert.Equal(t, http.StatusInternalServerError, httpx.AsAPIError(c.APIError(storage, "")).Status)
}
