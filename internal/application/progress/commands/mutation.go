package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/hideout-go/internal/application/common"
	"github.com/andrescamacho/hideout-go/internal/domain/progress"
	"github.com/andrescamacho/hideout-go/internal/domain/shared"
)

// profileMutator runs one load-mutate-save cycle against a profile. Every
// command goes through it so a mutation is a single atomic step.
type profileMutator struct {
	resolver    *common.ProfileResolver
	profileRepo progress.ProfileRepository
	clock       shared.Clock
}

func newProfileMutator(profileRepo progress.ProfileRepository, clock shared.Clock) profileMutator {
	clock = shared.ClockOrSystem(clock)
	return profileMutator{
		resolver:    common.NewProfileResolver(profileRepo),
		profileRepo: profileRepo,
		clock:       clock,
	}
}

func (m profileMutator) mutate(ctx context.Context, ref string, fn func(p *progress.Profile) error) (*progress.Profile, error) {
	p, err := m.resolver.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	if err := fn(p); err != nil {
		return nil, err
	}

	p.Touch(m.clock.Now())
	if err := m.profileRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return p, nil
}
