package utils

import "testing"

func TestMatchesPermission(t *testing.T) {
	tests := []struct {
		name         string
		userPerm     string
		requiredPerm string
		expected     bool
	}{
		// Exact matches
		{"exact match same permission", "rfq:compare", "rfq:compare", true},
		{"exact match different action", "rfq:create", "rfq:read", false},
		{"exact match different resource", "rfq:create", "vendor:create", false},

		// Full wildcard tests
		{"full wildcard *:*:*", "*:*:*", "rfq:compare", true},
		{"full wildcard *", "*", "anything:goes", true},
		{"full wildcard matches all resources", "*:*:*", "vendor:delete", true},
		{"full wildcard matches all actions", "*:*:*", "compliance:export", true},

		// Resource wildcard tests
		{"resource wildcard matches create", "rfq:*", "rfq:create", true},
		{"resource wildcard matches compare", "rfq:*", "rfq:compare", true},
		{"resource wildcard matches update", "rfq:*", "rfq:update", true},
		{"resource wildcard doesn't match different resource", "rfq:*", "vendor:create", false},

		// Action wildcard tests
		{"action wildcard matches rfq", "*:read", "rfq:read", true},
		{"action wildcard matches vendor", "*:read", "vendor:read", true},
		{"action wildcard matches audit", "*:read", "audit:read", true},
		{"action wildcard doesn't match different action", "*:read", "rfq:compare", false},

		// Complex patterns
		{"resource wildcard on approve", "quote:*", "quote:approve", true},
		{"action wildcard on delete", "*:delete", "vendor:delete", true},

		// Old format backward compatibility
		{"old format exact match", "read_reports", "read_reports", true},
		{"old format no match", "read_reports", "create_reports", false},
		{"full wildcard covers old format", "*:*:*", "old_format_perm", true},

		// Edge cases
		{"empty required permission", "rfq:create", "", false},
		{"empty user permission", "", "rfq:create", false},
		{"both empty", "", "", true},
		{"single part permission", "admin", "admin", true},
		{"single part vs multi-part", "admin", "admin:read", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MatchesPermission(tt.userPerm, tt.requiredPerm)
			if result != tt.expected {
				t.Errorf("MatchesPermission(%q, %q) = %v, expected %v",
					tt.userPerm, tt.requiredPerm, result, tt.expected)
			}
		})
	}
}

func TestMatchesPermission_RoleScenarios(t *testing.T) {
	tests := []struct {
		name      string
		userPerms []string
		required  string
		expected  bool
	}{
		{
			"purchaser can run comparisons",
			[]string{"rfq:create", "rfq:read", "rfq:compare", "quote:create"},
			"rfq:compare",
			true,
		},
		{
			"purchaser cannot approve quotes",
			[]string{"rfq:create", "rfq:read", "rfq:compare", "quote:create"},
			"quote:approve",
			false,
		},
		{
			"fleet manager approves via explicit grant",
			[]string{"quote:read", "quote:approve", "po:create"},
			"quote:approve",
			true,
		},
		{
			"super admin wildcard grants everything",
			[]string{"*:*:*"},
			"documents:delete",
			true,
		},
		{
			"crew has no dashboard access",
			[]string{"requisition:create", "requisition:read", "documents:read"},
			"dashboard:read",
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			granted := false
			for _, userPerm := range tt.userPerms {
				if MatchesPermission(userPerm, tt.required) {
					granted = true
					break
				}
			}
			if granted != tt.expected {
				t.Errorf("permissions %v against %q = %v, expected %v",
					tt.userPerms, tt.required, granted, tt.expected)
			}
		})
	}
}
