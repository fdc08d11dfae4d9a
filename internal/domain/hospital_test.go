package domain_test

import (
	"encoding/json"
	"testing"

	"meditour_admin/internal/domain"
)

func TestHospitalName_ForLocale_Plain(t *testing.T) {
	n := domain.HospitalName{Plain: "Bangkok Clinic"}
	if got := n.ForLocale("ko_KR"); got != "Bangkok Clinic" {
		t.Fatalf("plain name ignored: %q", got)
	}
}

func TestHospitalName_ForLocale_RequestedLang(t *testing.T) {
	n := domain.HospitalName{Localized: map[string]string{
		"ko_KR": "서울병원",
		"en_US": "Seoul Hospital",
	}}
	if got := n.ForLocale("en_US"); got != "Seoul Hospital" {
		t.Fatalf("want requested lang, got %q", got)
	}
}

func TestHospitalName_ForLocale_FallbackOrder(t *testing.T) {
	// th_TH requested but absent; ko_KR wins over en_US per the fixed order.
	n := domain.HospitalName{Localized: map[string]string{
		"en_US": "Seoul Hospital",
		"ko_KR": "서울병원",
	}}
	if got := n.ForLocale("th_TH"); got != "서울병원" {
		t.Fatalf("want ko_KR fallback, got %q", got)
	}

	// Only en_US present.
	n = domain.HospitalName{Localized: map[string]string{"en_US": "Seoul Hospital"}}
	if got := n.ForLocale("th_TH"); got != "Seoul Hospital" {
		t.Fatalf("want en_US fallback, got %q", got)
	}
}

func TestHospitalName_ForLocale_AnyValueThenLiteral(t *testing.T) {
	n := domain.HospitalName{Localized: map[string]string{
		"ja_JP": "ソウル病院",
		"ko_KR": "   ",
	}}
	if got := n.ForLocale("en_US"); got != "ソウル病院" {
		t.Fatalf("want first non-empty map value, got %q", got)
	}

	n = domain.HospitalName{Localized: map[string]string{"ko_KR": ""}}
	if got := n.ForLocale("en_US"); got != "Hospital" {
		t.Fatalf("want literal fallback, got %q", got)
	}
	if got := (domain.HospitalName{}).ForLocale("en_US"); got != "Hospital" {
		t.Fatalf("want literal fallback for zero value, got %q", got)
	}
}

func TestHospitalName_JSONBothShapes(t *testing.T) {
	var n domain.HospitalName
	if err := json.Unmarshal([]byte(`"Plain Clinic"`), &n); err != nil {
		t.Fatalf("string shape: %v", err)
	}
	if n.Plain != "Plain Clinic" || n.Localized != nil {
		t.Fatalf("unexpected union state: %+v", n)
	}

	if err := json.Unmarshal([]byte(`{"ko_KR":"서울병원"}`), &n); err != nil {
		t.Fatalf("map shape: %v", err)
	}
	if n.Plain != "" || n.Localized["ko_KR"] != "서울병원" {
		t.Fatalf("unexpected union state: %+v", n)
	}

	if err := json.Unmarshal([]byte(`42`), &n); err == nil {
		t.Fatalf("expected error for non-string non-object name")
	}
}
