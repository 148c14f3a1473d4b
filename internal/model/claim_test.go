package model

import "testing"

func TestVerdict_IsValid(t *testing.T) {
	valid := []Verdict{VerdictSupported, VerdictWeak, VerdictUnsupported}
	for _, v := range valid {
		if !v.IsValid() {
			t.Errorf("expected %q valid", v)
		}
	}

	invalid := []Verdict{VerdictPending, "", "true", "SUPPORTED"}
	for _, v := range invalid {
		if v.IsValid() {
			t.Errorf("expected %q invalid", v)
		}
	}
}

func TestClaimType_IsValid(t *testing.T) {
	for _, ct := range []ClaimType{ClaimTypeFact, ClaimTypeNumber, ClaimTypeRecommendation} {
		if !ct.IsValid() {
			t.Errorf("expected %q valid", ct)
		}
	}
	if ClaimType("opinion").IsValid() {
		t.Error("expected unknown claim type invalid")
	}
}

func TestCriticality_IsValid(t *testing.T) {
	for _, c := range []Criticality{CriticalityLow, CriticalityMedium, CriticalityHigh} {
		if !c.IsValid() {
			t.Errorf("expected %q valid", c)
		}
	}
	if Criticality("severe").IsValid() {
		t.Error("expected unknown criticality invalid")
	}
}
