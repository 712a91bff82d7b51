package service

import "testing"

func TestResolveTiers(t *testing.T) {
	svc := NewAdminAuthService(testAdminSecrets())

	tests := []struct {
		name     string
		secret   string
		wantTier Tier
		wantWing *string
		wantOK   bool
	}{
		{"global", "ocs-secret", TierOCS, nil, true},
		{"legacy still global", "legacy-secret", TierOCS, nil, true},
		{"generic wing", "wing-generic", TierWing, nil, true},
		{"alpha wing", "alpha-secret", TierWing, strPtr("ALPHA WING"), true},
		{"beta wing", "beta-secret", TierWing, strPtr("BETA WING"), true},
		{"unknown", "nope", "", nil, false},
		{"empty", "", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, wing, ok := svc.Resolve(tt.secret)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if tier != tt.wantTier {
				t.Fatalf("tier = %q, want %q", tier, tt.wantTier)
			}
			switch {
			case tt.wantWing == nil && wing != nil:
				t.Fatalf("wing = %q, want nil", *wing)
			case tt.wantWing != nil && (wing == nil || *wing != *tt.wantWing):
				t.Fatalf("wing = %v, want %q", wing, *tt.wantWing)
			}
		})
	}
}

func TestEmptySecretsNeverMatch(t *testing.T) {
	svc := NewAdminAuthService(testAdminSecrets())

	// An unconfigured (empty) secret slot must not make "" a valid credential.
	if _, _, ok := svc.Resolve(""); ok {
		t.Fatal("empty secret resolved to a tier")
	}
}

func TestEffectiveWing(t *testing.T) {
	svc := NewAdminAuthService(testAdminSecrets())
	alpha := strPtr("ALPHA WING")
	beta := strPtr("BETA WING")

	// Wing tier: the resolved wing always wins, requested filter is ignored.
	if got := svc.EffectiveWing(TierWing, alpha, beta); got == nil || *got != "ALPHA WING" {
		t.Fatalf("wing tier honored a foreign wing filter: %v", got)
	}
	if got := svc.EffectiveWing(TierWing, alpha, nil); got == nil || *got != "ALPHA WING" {
		t.Fatalf("wing tier lost its own wing: %v", got)
	}

	// OCS tier: requested filter passes through, absent filter means all wings.
	if got := svc.EffectiveWing(TierOCS, nil, beta); got == nil || *got != "BETA WING" {
		t.Fatalf("ocs tier dropped requested filter: %v", got)
	}
	if got := svc.EffectiveWing(TierOCS, nil, nil); got != nil {
		t.Fatalf("ocs tier with no filter should see all wings: %v", got)
	}
}
