package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/opsboard/pkg/domain/model"
	"github.com/secmon-lab/opsboard/pkg/service/slack"
	"github.com/secmon-lab/opsboard/pkg/utils/logging"
)

// DigestUseCase posts dashboard summaries to Slack
type DigestUseCase struct {
	dashboard *DashboardUseCase
	slackSvc  slack.Service
	settings  Settings
}

func NewDigestUseCase(dashboard *DashboardUseCase, slackSvc slack.Service, settings Settings) *DigestUseCase {
	return &DigestUseCase{
		dashboard: dashboard,
		slackSvc:  slackSvc,
		settings:  settings.withDefaults(),
	}
}

// Available reports whether Slack is configured
func (uc *DigestUseCase) Available() bool {
	return uc.slackSvc != nil
}

// DigestResult identifies a posted digest message
type DigestResult struct {
	ChannelID  string `json:"channel_id"`
	Timestamp  string `json:"ts"`
	SnapshotID string `json:"snapshot_id"`
}

// Post builds the dashboard for filter and posts its KPIs and insights to channel.
// channel may be a channel ID or a "#name" of a joined channel.
func (uc *DigestUseCase) Post(ctx context.Context, channel string, filter model.Filter) (*DigestResult, error) {
	if uc.slackSvc == nil {
		return nil, goerr.Wrap(ErrSlackNotConfigured, "cannot post digest")
	}

	channelID, err := uc.slackSvc.ResolveChannel(ctx, channel)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve channel", goerr.V("channel", channel))
	}

	dashboard, err := uc.dashboard.Build(ctx, filter)
	if err != nil {
		return nil, err
	}

	blocks, text := slack.BuildDigestBlocks(uc.settings.Title, dashboard)
	ts, err := uc.slackSvc.PostMessage(ctx, channelID, blocks, text)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to post digest", goerr.V("channel_id", channelID))
	}

	logging.From(ctx).Info("Digest posted",
		"channel_id", channelID,
		"ts", ts,
		"snapshot_id", dashboard.SnapshotID)

	return &DigestResult{
		ChannelID:  channelID,
		Timestamp:  ts,
		SnapshotID: dashboard.SnapshotID,
	}, nil
}
