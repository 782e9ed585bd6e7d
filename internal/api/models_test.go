package api

import (
	"errors"
	"testing"

	"github.com/mediahub/mediahub-api/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequest_PasswordIsNotTrimmed(t *testing.T) {
	req := &RegisterRequest{Username: " alice ", Password: "  spaced  ", Email: " a@example.com "}

	require.NoError(t, shared.ValidateRequest(req))
	assert.Equal(t, "alice", req.Username)
	assert.Equal(t, "a@example.com", req.Email)
	assert.Equal(t, "  spaced  ", req.Password)
}

func TestUpdateUserRequest_Rules(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name      string
		req       UpdateUserRequest
		wantField string
		wantRule  string
	}{
		{name: "username only", req: UpdateUserRequest{Username: str("carol")}},
		{name: "nothing", req: UpdateUserRequest{}, wantField: "body", wantRule: "required"},
		{name: "blank username", req: UpdateUserRequest{Username: str("  ")}, wantField: "username", wantRule: "alphanum"},
		{name: "bad email", req: UpdateUserRequest{Email: str("nope")}, wantField: "email", wantRule: "email"},
		{name: "short password", req: UpdateUserRequest{Password: str("short")}, wantField: "password", wantRule: "min"},
		{name: "bad role", req: UpdateUserRequest{Role: str("owner")}, wantField: "role", wantRule: "oneof"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := shared.ValidateRequest(&tt.req)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *shared.ValidationError
			require.True(t, errors.As(err, &verr))
			require.Len(t, verr.Errors, 1)
			assert.Equal(t, tt.wantField, verr.Errors[0].Field)
			assert.Equal(t, tt.wantRule, verr.Errors[0].Rule)
		})
	}
}

func TestUpdateMediaRequest_AtLeastOneField(t *testing.T) {
	err := shared.ValidateRequest(&UpdateMediaRequest{})
	var verr *shared.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "body", verr.Errors[0].Field)

	empty := ""
	assert.NoError(t, shared.ValidateRequest(&UpdateMediaRequest{Description: &empty}))
}
