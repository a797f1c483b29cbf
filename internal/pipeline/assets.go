package pipeline

import (
	"context"

	"selfplay-gen/internal/config"
	"selfplay-gen/internal/fetch"
)

// assetFetcher resolves the configured run dependencies through the
// download cache.
type assetFetcher struct {
	cfg config.AssetsConfig
	f   *fetch.Fetcher
}

// NewAssetFetcher returns a Fetcher downloading into the configured
// asset directory.
func NewAssetFetcher(cfg config.AssetsConfig) Fetcher {
	return &assetFetcher{cfg: cfg, f: &fetch.Fetcher{Dir: cfg.Dir}}
}

func (a *assetFetcher) Run(ctx context.Context) (Assets, error) {
	runner, err := a.f.EnsureExecutable(ctx, a.cfg.RunnerURL, a.cfg.RunnerName)
	if err != nil {
		return Assets{}, err
	}
	bookPath, err := a.f.EnsureFromZip(ctx, a.cfg.BookURL, a.cfg.BookFile)
	if err != nil {
		return Assets{}, err
	}
	return Assets{RunnerPath: runner, BookPath: bookPath}, nil
}
