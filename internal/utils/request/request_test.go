package request

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(body string, dst any) error {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	return Decode(httptest.NewRecorder(), req, dst)
}

func TestDecode(t *testing.T) {
	var tag types.CreateTagRequest
	require.NoError(t, decodeBody(`{"name":"Drone","color":"#fff"}`, &tag))
	assert.Equal(t, "Drone", tag.Name)
	assert.Equal(t, "#fff", *tag.Color)

	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"unknown field", `{"name":"Drone","extra":1}`},
		{"trailing data", `{"name":"Drone"} {"name":"Again"}`},
		{"malformed", `{"name":`},
		{"wrong type", `{"name":42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst types.CreateTagRequest
			assert.Error(t, decodeBody(tt.body, &dst))
		})
	}

	var dst types.CreateTagRequest
	assert.ErrorIs(t, decodeBody("", &dst), ErrEmptyBody)
}

func TestValidateUsesJSONNames(t *testing.T) {
	err := Validate(types.CreateVideoRequest{Title: "Reel", Category: "Documentary", Date: strPtr("14/02/2024")})

	var ve validator.ValidationErrors
	require.True(t, errors.As(err, &ve))

	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, fe.Field())
	}
	assert.ElementsMatch(t, []string{"category", "date"}, fields)
}

func TestValidateAcceptsKnownCategories(t *testing.T) {
	for _, c := range types.Categories {
		assert.NoError(t, Validate(types.CreateVideoRequest{Title: "Reel", Category: c}), c)
	}
}

func strPtr(s string) *string { return &s }
