package utils

import (
	"encoding/json"
)

// NullableString phân biệt 3 trạng thái của một field JSON:
// không gửi (Set=false), gửi null (Set=true, Value=nil), gửi chuỗi.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	// null
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n NullableString) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// Raw trả về chuỗi đã gửi, rỗng khi không gửi hoặc gửi null
func (n NullableString) Raw() string {
	if n.Value == nil {
		return ""
	}
	return *n.Value
}
