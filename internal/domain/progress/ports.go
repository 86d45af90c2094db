package progress

import "context"

// ProfileRepository persists profiles.
type ProfileRepository interface {
	FindByID(ctx context.Context, id string) (*Profile, error)
	FindByName(ctx context.Context, name string) (*Profile, error)
	List(ctx context.Context) ([]*Profile, error)
	// Save replaces the stored state of the profile as one transaction.
	Save(ctx context.Context, profile *Profile) error
	Delete(ctx context.Context, id string) error
	// Replace deletes the profile stored under replacedID and saves profile
	// in its place. Either both happen or neither does.
	Replace(ctx context.Context, replacedID string, profile *Profile) error
}
