package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mediahub/mediahub-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupRequest struct {
	Username string  `json:"username" validate:"required,alphanum,min=3,max=20"`
	Email    string  `json:"email"    validate:"required,email"`
	Nickname *string `json:"nickname,omitempty" validate:"omitempty,min=2"`
}

func (s *signupRequest) Normalize() {
	s.Username = strings.TrimSpace(s.Username)
	s.Email = strings.TrimSpace(s.Email)
	TrimPtr(s.Nickname)
}

type pairRequest struct {
	A *string `json:"a,omitempty"`
	B *string `json:"b,omitempty"`
}

func (p *pairRequest) CheckFields() []FieldError {
	if p.A == nil && p.B == nil {
		return []FieldError{{Field: "body", Rule: "required", Message: "at least one field must be provided"}}
	}
	return nil
}

func TestValidateRequest_CollectsAllFailures(t *testing.T) {
	req := &signupRequest{Username: "a!", Email: "nope"}

	err := ValidateRequest(req)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, errors.Is(err, domain.ErrValidation))

	got := map[string]string{}
	for _, fe := range verr.Errors {
		got[fe.Field] = fe.Rule
	}
	assert.Equal(t, map[string]string{"username": "alphanum", "email": "email"}, got)
}

func TestValidateRequest_Normalizes(t *testing.T) {
	nick := "  jo  "
	req := &signupRequest{Username: "  alice ", Email: " alice@example.com ", Nickname: &nick}

	require.NoError(t, ValidateRequest(req))
	assert.Equal(t, "alice", req.Username)
	assert.Equal(t, "alice@example.com", req.Email)
	assert.Equal(t, "jo", *req.Nickname)
}

func TestValidateRequest_WhitespaceOnlyIsMissing(t *testing.T) {
	req := &signupRequest{Username: "   ", Email: "alice@example.com"}

	err := ValidateRequest(req)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, FieldError{Field: "username", Rule: "required", Message: "username is required"}, verr.Errors[0])
}

func TestValidateRequest_FieldChecker(t *testing.T) {
	err := ValidateRequest(&pairRequest{})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "body", verr.Errors[0].Field)

	a := "x"
	assert.NoError(t, ValidateRequest(&pairRequest{A: &a}))
}

func TestFieldMessages(t *testing.T) {
	req := &signupRequest{Username: strings.Repeat("a", 21), Email: "alice@example.com"}

	err := ValidateRequest(req)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "username must be at most 20 characters long", verr.Errors[0].Message)
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "valid", body: `{"username":"alice"}`},
		{name: "empty body", body: ""},
		{name: "malformed", body: `{"username":`, wantErr: ErrInvalidRequestBody},
		{name: "wrong type", body: `{"username":5}`, wantErr: ErrInvalidRequestBody},
		{name: "trailing whitespace", body: "{\"username\":\"alice\"}\n"},
		{name: "unknown field", body: `{"username":"alice","user_id":99}`, wantErr: ErrInvalidRequestBody},
		{name: "trailing garbage", body: `{"username":"alice"} trailing-garbage`, wantErr: ErrInvalidRequestBody},
		{name: "second object", body: `{"username":"alice"}{"username":"bob"}`, wantErr: ErrInvalidRequestBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var v signupRequest
			err := DecodeJSON(httptest.NewRecorder(), req, &v)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}

	t.Run("oversized body", func(t *testing.T) {
		body := `{"username":"` + strings.Repeat("a", MaxJSONBodyBytes) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		var v signupRequest
		err := DecodeJSON(httptest.NewRecorder(), req, &v)

		var maxErr *http.MaxBytesError
		assert.True(t, errors.As(err, &maxErr))
	})
}
