package usecase

import (
	"context"

	"PumpStat/internal/domain/models"
)

// SourceSet groups the ordered source lists behind each volume endpoint.
type SourceSet struct {
	Feeds   []Source // public feed mirrors, tried in order
	Channel []Source // rendered channel page, then a feed mirror
	Bot     []Source // bot inbox; empty when no bot credential is configured
}

// VolumeService resolves the latest volume report per endpoint.
type VolumeService struct {
	resolver *Resolver
	sources  SourceSet
}

// NewVolumeService creates a VolumeService.
func NewVolumeService(resolver *Resolver, sources SourceSet) *VolumeService {
	return &VolumeService{resolver: resolver, sources: sources}
}

// FromFeeds resolves from the feed mirrors.
func (s *VolumeService) FromFeeds(ctx context.Context) models.ResolvedReport {
	return s.resolver.Resolve(ctx, s.sources.Feeds)
}

// FromChannel resolves from the channel page, then its feed mirror.
func (s *VolumeService) FromChannel(ctx context.Context) models.ResolvedReport {
	return s.resolver.Resolve(ctx, s.sources.Channel)
}

// FromBot resolves from reports forwarded to the bot.
func (s *VolumeService) FromBot(ctx context.Context) models.ResolvedReport {
	return s.resolver.Resolve(ctx, s.sources.Bot)
}

// BotConfigured reports whether a bot source is available.
func (s *VolumeService) BotConfigured() bool {
	return len(s.sources.Bot) > 0
}
