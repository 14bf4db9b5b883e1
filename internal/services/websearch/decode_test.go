package websearch

import "testing"

type decodeTarget struct {
	Rating float64 `json:"rating"`
}

func TestDecodeReportJSONDirect(t *testing.T) {
	var target decodeTarget
	if err := DecodeReportJSON(`{"rating": 4.5}`, &target); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if target.Rating != 4.5 {
		t.Fatalf("rating = %v", target.Rating)
	}
}

func TestDecodeReportJSONCodeFence(t *testing.T) {
	var target decodeTarget
	if err := DecodeReportJSON("```json\n{\"rating\": 9.1}\n```", &target); err != nil {
		t.Fatalf("decode fenced: %v", err)
	}
	if target.Rating != 9.1 {
		t.Fatalf("rating = %v", target.Rating)
	}
}

func TestDecodeReportJSONSurroundingProse(t *testing.T) {
	var target decodeTarget
	payload := "Here is what I found:\n{\"rating\": 3.0}\nLet me know if you need more."
	if err := DecodeReportJSON(payload, &target); err != nil {
		t.Fatalf("decode with prose: %v", err)
	}
	if target.Rating != 3.0 {
		t.Fatalf("rating = %v", target.Rating)
	}
}

func TestDecodeReportJSONEmpty(t *testing.T) {
	var target decodeTarget
	if err := DecodeReportJSON("   ", &target); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestDecodeReportJSONGarbage(t *testing.T) {
	var target decodeTarget
	if err := DecodeReportJSON("no structured data here", &target); err == nil {
		t.Fatal("expected error for non-JSON payload")
	}
}
