package domain

import (
	"encoding/json"
	"sort"
	"strings"
)

// HospitalName is a tagged union: hospitals ingested from older partner feeds
// carry a plain-text name, newer ones a locale-keyed mapping.
type HospitalName struct {
	Plain     string
	Localized map[string]string
}

// nameFallback is the fixed locale order tried when the requested language
// has no entry.
var nameFallback = []string{"ko_KR", "en_US", "th_TH"}

// ForLocale resolves a display name: plain value first, then the requested
// locale, then the fixed fallback order, then any non-empty value in the
// mapping (deterministic key order), and finally the literal "Hospital".
func (n HospitalName) ForLocale(lang string) string {
	if s := strings.TrimSpace(n.Plain); s != "" {
		return s
	}
	if s := strings.TrimSpace(n.Localized[lang]); s != "" {
		return s
	}
	for _, l := range nameFallback {
		if s := strings.TrimSpace(n.Localized[l]); s != "" {
			return s
		}
	}
	keys := make([]string, 0, len(n.Localized))
	for k := range n.Localized {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if s := strings.TrimSpace(n.Localized[k]); s != "" {
			return s
		}
	}
	return "Hospital"
}

// UnmarshalJSON accepts either a JSON string or a locale-keyed object, the
// two shapes the name column holds in practice.
func (n *HospitalName) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		n.Plain, n.Localized = s, nil
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	n.Plain, n.Localized = "", m
	return nil
}

func (n HospitalName) MarshalJSON() ([]byte, error) {
	if n.Localized != nil {
		return json.Marshal(n.Localized)
	}
	return json.Marshal(n.Plain)
}

type Hospital struct {
	ID   int64
	Name HospitalName
}

type User struct {
	ID          int64
	DisplayName string
	Name        string
}
