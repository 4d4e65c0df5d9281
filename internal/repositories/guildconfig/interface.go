package guildconfig

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/lamdn/attendbot/internal/repositories/guildconfig Repository

// Repository defines the storage interface for per-guild settings
type Repository interface {
	// Save durably stores a guild's settings
	Save(ctx context.Context, input *SaveInput) error

	// Get retrieves a guild's settings; an unconfigured guild yields a
	// zero-value config, not an error
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// ListGuilds returns the guilds with stored settings
	ListGuilds(ctx context.Context) (*ListGuildsOutput, error)
}
