package session

import "context"

const (
	PathRegister   = "/register"
	PathOnboarding = "/onboarding"
)

// Gate returns where a visitor must go before reaching the dashboard, or ""
// when both a user and a company are present.
func Gate(ctx context.Context, s *Session) (string, error) {
	if s == nil {
		return PathRegister, nil
	}
	hasUser, err := s.Has(ctx, KeyUser)
	if err != nil {
		return "", err
	}
	if !hasUser {
		return PathRegister, nil
	}
	hasCompany, err := s.Has(ctx, KeyCompany)
	if err != nil {
		return "", err
	}
	if !hasCompany {
		return PathOnboarding, nil
	}
	return "", nil
}
