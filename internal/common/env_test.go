package common

import "testing"

func TestEnvBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		set      bool
		expected bool
	}{
		{name: "unset", set: false, expected: false},
		{name: "true", value: "true", set: true, expected: true},
		{name: "mixed case true", value: "True", set: true, expected: true},
		{name: "one", value: "1", set: true, expected: true},
		{name: "yes", value: "yes", set: true, expected: true},
		{name: "uppercase yes", value: "YES", set: true, expected: true},
		{name: "on", value: "on", set: true, expected: true},
		{name: "false", value: "false", set: true, expected: false},
		{name: "zero", value: "0", set: true, expected: false},
		{name: "empty string", value: "", set: true, expected: false},
		{name: "garbage", value: "enabled", set: true, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const key = "CONN_DIAG_TEST_FLAG"
			if tt.set {
				t.Setenv(key, tt.value)
			}

			if got := EnvBool(key); got != tt.expected {
				t.Errorf("EnvBool(%q=%q) = %v, expected %v", key, tt.value, got, tt.expected)
			}
		})
	}
}
