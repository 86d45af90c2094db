package common

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/andrescamacho/hideout-go/internal/domain/progress"
)

// ProfileResolver resolves a profile reference that is either a profile id
// or a profile name.
//
// Business rules:
//   - A reference that parses as a UUID is looked up by id first
//   - Anything else, or an id miss, is looked up by name
type ProfileResolver struct {
	profileRepo progress.ProfileRepository
}

// NewProfileResolver creates a new profile resolver
func NewProfileResolver(profileRepo progress.ProfileRepository) *ProfileResolver {
	return &ProfileResolver{profileRepo: profileRepo}
}

// Resolve loads the referenced profile
func (r *ProfileResolver) Resolve(ctx context.Context, ref string) (*progress.Profile, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("profile reference is required")
	}

	if _, err := uuid.Parse(ref); err == nil {
		p, err := r.profileRepo.FindByID(ctx, ref)
		if err == nil {
			return p, nil
		}
	}

	p, err := r.profileRepo.FindByName(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve profile %q: %w", ref, err)
	}
	return p, nil
}
