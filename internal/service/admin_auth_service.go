package service

import (
	"github.com/wingops/wingscore/internal/config"
)

// Tier is an admin privilege level.
type Tier string

const (
	// TierOCS is organization-wide admin.
	TierOCS Tier = "OCS"
	// TierWing is admin scoped to a single wing.
	TierWing Tier = "WING"
)

// AdminAuthService resolves a shared admin secret to a tier and, for
// wing-scoped secrets, the wing it administers. Secrets are distributed
// out-of-band and matched by exact string equality; unlike password
// verification this path is not constant-time.
type AdminAuthService interface {
	Resolve(secret string) (Tier, *string, bool)
	// EffectiveWing applies the authorization rule: a WING-tier admin always
	// operates on its own wing regardless of the requested filter, while an
	// OCS-tier admin may filter freely or see everything.
	EffectiveWing(tier Tier, adminWing *string, requested *string) *string
}

type adminAuthService struct {
	secrets config.AdminSecrets
}

func NewAdminAuthService(secrets config.AdminSecrets) AdminAuthService {
	return &adminAuthService{secrets: secrets}
}

func (s *adminAuthService) Resolve(secret string) (Tier, *string, bool) {
	if secret == "" {
		return "", nil, false
	}

	if s.secrets.Global != "" && secret == s.secrets.Global {
		return TierOCS, nil, true
	}
	if s.secrets.LegacyGlobal != "" && secret == s.secrets.LegacyGlobal {
		return TierOCS, nil, true
	}
	if s.secrets.GenericWing != "" && secret == s.secrets.GenericWing {
		return TierWing, nil, true
	}
	for wing, wingSecret := range s.secrets.PerWing {
		if secret == wingSecret {
			w := wing
			return TierWing, &w, true
		}
	}

	return "", nil, false
}

func (s *adminAuthService) EffectiveWing(tier Tier, adminWing *string, requested *string) *string {
	if tier == TierWing {
		return adminWing
	}
	return requested
}
