package jsonx

import (
	"encoding/json"
	"testing"
)

func TestFlexString_AcceptsStringAndNumber(t *testing.T) {
	var v struct {
		A FlexString `json:"a"`
		B FlexString `json:"b"`
		C FlexString `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":"vm-1","b":42,"c":null}`), &v); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v.A != "vm-1" || v.B != "42" || v.C != "" {
		t.Fatalf("unexpected values: %+v", v)
	}
}

func TestFlexString_RejectsObjects(t *testing.T) {
	var f FlexString
	if err := json.Unmarshal([]byte(`{"x":1}`), &f); err == nil {
		t.Fatalf("expected error")
	}
}
