package auth_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgibeparking/parking-api/auth"
)

func TestParseRoles(t *testing.T) {
	tests := []struct {
		name  string
		input string
		has   []string
		lacks []string
	}{
		{
			name:  "Single role",
			input: "MEMBER",
			has:   []string{"MEMBER"},
			lacks: []string{"ADMIN"},
		},
		{
			name:  "Delimited list",
			input: "ADMIN;MEMBER",
			has:   []string{"ADMIN", "MEMBER"},
		},
		{
			name:  "Empty string",
			input: "",
			lacks: []string{"MEMBER", "ADMIN", ""},
		},
		{
			name:  "No substring matches",
			input: "SUPERADMIN",
			has:   []string{"SUPERADMIN"},
			lacks: []string{"ADMIN"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := auth.ParseRoles(tt.input)
			for _, role := range tt.has {
				assert.True(t, rs.Has(role), "expected %q in %q", role, tt.input)
			}
			for _, role := range tt.lacks {
				assert.False(t, rs.Has(role), "did not expect %q in %q", role, tt.input)
			}
		})
	}
}

func TestRoleSetString(t *testing.T) {
	rs := auth.NewRoleSet("MEMBER", "ADMIN")
	assert.Equal(t, "ADMIN;MEMBER", rs.String())
	assert.Equal(t, "MEMBER", auth.NewRoleSet("MEMBER").String())
}

func TestRoleSetJSON(t *testing.T) {
	data, err := json.Marshal(auth.NewRoleSet("MEMBER"))
	require.NoError(t, err)
	assert.Equal(t, `"MEMBER"`, string(data))

	var rs auth.RoleSet
	require.NoError(t, json.Unmarshal([]byte(`"ADMIN;MEMBER"`), &rs))
	assert.True(t, rs.Has("ADMIN"))
	assert.True(t, rs.Has("MEMBER"))
}
