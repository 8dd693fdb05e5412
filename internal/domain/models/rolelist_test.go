package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestRoleList_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    RoleList
		wantErr bool
	}{
		{name: "single string", input: `"reader"`, want: RoleList{"reader"}},
		{name: "array", input: `["reader","editor"]`, want: RoleList{"reader", "editor"}},
		{name: "empty array", input: `[]`, want: RoleList{}},
		{name: "null", input: `null`, want: nil},
		{name: "number", input: `7`, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got RoleList
			err := json.Unmarshal([]byte(tc.input), &got)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal %s failed: %v", tc.input, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}
