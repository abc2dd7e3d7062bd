package pyver

import "testing"

func TestSupports(t *testing.T) {
	tests := []struct {
		version string
		feature Feature
		want    bool
	}{
		{"3.7.0", FeatureWalrus, false},
		{"3.8.0", FeatureWalrus, true},
		{"3.9.0", FeaturePosOnlyParams, true},
		{"3.9.0", FeatureMatch, false},
		{"3.10.0", FeatureMatch, true},
		{"3.10.0", FeatureParenContextManagers, true},
		{"3.10.0", FeatureExceptStar, false},
		{"3.11.0", FeatureExceptStar, true},
		{"3.11.0", FeatureTypeAlias, false},
		{"3.12.0", FeatureTypeAlias, true},
	}
	for _, tt := range tests {
		v, err := ParseVersion(tt.version)
		if err != nil {
			t.Fatalf("ParseVersion(%q) failed: %v", tt.version, err)
		}
		if got := Supports(v, tt.feature); got != tt.want {
			t.Errorf("Supports(%s, %s) = %v, want %v", tt.version, tt.feature, got, tt.want)
		}
	}
}

func TestLatestSupportsEverything(t *testing.T) {
	features := []Feature{
		FeatureWalrus, FeaturePosOnlyParams, FeatureMatch,
		FeatureParenContextManagers, FeatureExceptStar, FeatureTypeAlias,
	}
	for _, f := range features {
		if !Supports(Latest(), f) {
			t.Errorf("latest version does not support %s", f)
		}
	}
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("3.10")
	if err != nil {
		t.Fatalf("ParseVersion(3.10) failed: %v", err)
	}
	if v.Major() != 3 || v.Minor() != 10 {
		t.Errorf("parsed %s, want 3.10", v)
	}
	if _, err := ParseVersion("not-a-version"); err == nil {
		t.Error("ParseVersion accepted garbage")
	}
}

func TestMinVersion(t *testing.T) {
	if got := MinVersion(FeatureMatch).String(); got != "3.10.0" {
		t.Errorf("MinVersion(match) = %s, want 3.10.0", got)
	}
}
