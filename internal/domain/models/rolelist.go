// internal/domain/models/rolelist.go
package models

import "encoding/json"

// RoleList decodes a JSON role field that callers send either as a single
// string or as an array of strings.
type RoleList []string

func (r *RoleList) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var one string
		if err := json.Unmarshal(b, &one); err != nil {
			return err
		}
		*r = RoleList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*r = RoleList(many)
	return nil
}
