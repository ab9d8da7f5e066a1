package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/tradelens/internal/config"
	"github.com/sells-group/tradelens/internal/profile"
	"github.com/sells-group/tradelens/internal/rowsource"
)

// openSource builds the configured row-store client. A driver with missing
// connection details reports ErrSourceNotConfigured so callers can surface
// the standard message instead of a connection failure.
func openSource(ctx context.Context, cfg config.SourceConfig) (rowsource.Client, error) {
	switch cfg.Driver {
	case "postgrest":
		if cfg.URL == "" {
			return nil, eris.Wrap(profile.ErrSourceNotConfigured, "postgrest url missing")
		}
		var opts []rowsource.PostgRESTOption
		if cfg.Schema != "" {
			opts = append(opts, rowsource.WithSchema(cfg.Schema))
		}
		if cfg.RateLimit > 0 {
			opts = append(opts, rowsource.WithRateLimit(cfg.RateLimit, int(cfg.RateLimit)*2))
		}
		return rowsource.NewPostgREST(cfg.URL, cfg.Key, opts...), nil

	case "postgres":
		if cfg.URL == "" {
			return nil, eris.Wrap(profile.ErrSourceNotConfigured, "postgres url missing")
		}
		pool, err := pgxpool.New(ctx, cfg.URL)
		if err != nil {
			return nil, eris.Wrap(err, "source: connect postgres")
		}
		return rowsource.NewPostgres(pool), nil

	case "sqlite":
		if cfg.SnapshotPath == "" {
			return nil, eris.Wrap(profile.ErrSourceNotConfigured, "sqlite snapshot path missing")
		}
		return rowsource.OpenSnapshot(cfg.SnapshotPath)

	default:
		return nil, eris.Wrapf(profile.ErrSourceNotConfigured, "unknown source driver %q", cfg.Driver)
	}
}

func newLoader(src rowsource.Client) *profile.Loader {
	opts := []profile.LoaderOption{
		profile.WithFlowLimit(cfg.Profile.FlowLimit),
		profile.WithFetchLimit(cfg.Profile.FetchLimit),
	}
	if cfg.Profile.RequireEmail {
		opts = append(opts, profile.WithDedupePolicy(profile.RequireEmail))
	}
	return profile.NewLoader(src, opts...)
}
