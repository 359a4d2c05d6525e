package auth

import (
	"encoding/json"
	"sort"
	"strings"
)

const (
	// RoleMember is the default role granted on activation.
	RoleMember = "MEMBER"
	// RoleAdmin gates mutating reservation routes.
	RoleAdmin = "ADMIN"
)

const roleDelimiter = ";"

// RoleSet is the set of roles held by a principal. The wire and storage
// representation stays the delimited string the frontend already consumes
// ("ADMIN;MEMBER"); membership checks are set containment, not substring
// matching.
type RoleSet map[string]struct{}

// NewRoleSet builds a RoleSet from individual role names.
func NewRoleSet(roles ...string) RoleSet {
	rs := RoleSet{}
	for _, role := range roles {
		if role != "" {
			rs[role] = struct{}{}
		}
	}
	return rs
}

// ParseRoles parses the delimited wire representation.
func ParseRoles(s string) RoleSet {
	return NewRoleSet(strings.Split(s, roleDelimiter)...)
}

// Has reports whether the given role is a member of the set.
func (rs RoleSet) Has(role string) bool {
	_, ok := rs[role]
	return ok
}

// String re-serializes the set in its delimited form, sorted for
// determinism.
func (rs RoleSet) String() string {
	names := make([]string, 0, len(rs))
	for role := range rs {
		names = append(names, role)
	}
	sort.Strings(names)
	return strings.Join(names, roleDelimiter)
}

func (rs RoleSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(rs.String())
}

func (rs *RoleSet) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*rs = ParseRoles(s)
	return nil
}
