package preferences

import "context"

const (
	KeyPlayerName    = "player_name"
	KeyServerAddress = "server_address"
)

type Repository interface {
	Close(ctx context.Context) error
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Preferences are the values remembered between runs.
type Preferences struct {
	PlayerName    string
	ServerAddress string
}

// Load reads every preference. Missing keys are left empty.
func Load(ctx context.Context, r Repository) (Preferences, error) {
	var p Preferences
	for key, dst := range map[string]*string{
		KeyPlayerName:    &p.PlayerName,
		KeyServerAddress: &p.ServerAddress,
	} {
		v, err := r.Get(ctx, key)
		if err != nil {
			if IsNotFound(err) {
				continue
			}
			return Preferences{}, err
		}
		*dst = v
	}
	return p, nil
}

// Save writes every preference in p.
func Save(ctx context.Context, r Repository, p Preferences) error {
	if err := r.Set(ctx, KeyPlayerName, p.PlayerName); err != nil {
		return err
	}
	return r.Set(ctx, KeyServerAddress, p.ServerAddress)
}
