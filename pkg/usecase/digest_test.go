package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/opsboard/pkg/domain/model"
	"github.com/secmon-lab/opsboard/pkg/repository/memory"
	slacksvc "github.com/secmon-lab/opsboard/pkg/service/slack"
	"github.com/secmon-lab/opsboard/pkg/usecase"
	"github.com/slack-go/slack"
)

type postedMessage struct {
	channelID string
	blocks    []slack.Block
	text      string
}

type fakeSlack struct {
	channels map[string]string
	posted   []postedMessage
}

var _ slacksvc.Service = &fakeSlack{}

func (f *fakeSlack) ListJoinedChannels(ctx context.Context) ([]slacksvc.Channel, error) {
	var result []slacksvc.Channel
	for name, id := range f.channels {
		result = append(result, slacksvc.Channel{ID: id, Name: name})
	}
	return result, nil
}

func (f *fakeSlack) ResolveChannel(ctx context.Context, ref string) (string, error) {
	if slacksvc.IsChannelID(ref) {
		return ref, nil
	}
	if id, ok := f.channels[slacksvc.NormalizeChannelName(ref)]; ok {
		return id, nil
	}
	return "", goerr.Wrap(slacksvc.ErrChannelNotFound, "not joined", goerr.V("ref", ref))
}

func (f *fakeSlack) PostMessage(ctx context.Context, channelID string, blocks []slack.Block, text string) (string, error) {
	f.posted = append(f.posted, postedMessage{channelID: channelID, blocks: blocks, text: text})
	return "1700000000.000100", nil
}

func TestDigestUseCase_Post(t *testing.T) {
	ctx := context.Background()

	t.Run("posts dashboard digest", func(t *testing.T) {
		fake := &fakeSlack{channels: map[string]string{"ops-risk": "C0123456789"}}
		uc := usecase.New(seedRepository(t, "snap-1"),
			usecase.WithSlackService(fake),
			usecase.WithSettings(usecase.Settings{Title: "Weekly Ops"}),
		)
		f, err := uc.Dashboard.DefaultFilter(ctx)
		gt.NoError(t, err).Required()

		result, err := uc.Digest.Post(ctx, "#ops-risk", *f)
		gt.NoError(t, err).Required()
		gt.V(t, result.ChannelID).Equal("C0123456789")
		gt.V(t, result.Timestamp).Equal("1700000000.000100")
		gt.V(t, result.SnapshotID).Equal("snap-1")

		gt.A(t, fake.posted).Length(1)
		gt.V(t, fake.posted[0].channelID).Equal("C0123456789")
		gt.S(t, fake.posted[0].text).Contains("Weekly Ops")
		gt.B(t, len(fake.posted[0].blocks) > 3).True()
	})

	t.Run("empty dashboard posts placeholder", func(t *testing.T) {
		fake := &fakeSlack{}
		uc := usecase.New(seedRepository(t, "snap-1"), usecase.WithSlackService(fake))

		_, err := uc.Digest.Post(ctx, "C0123456789", model.Filter{Start: day("2030-01-01"), End: day("2030-01-02")})
		gt.NoError(t, err).Required()
		gt.A(t, fake.posted).Length(1)
		gt.A(t, fake.posted[0].blocks).Length(3)
		gt.S(t, fake.posted[0].text).Contains(usecase.EmptyDashboardMessage)
	})

	t.Run("unknown channel", func(t *testing.T) {
		fake := &fakeSlack{}
		uc := usecase.New(seedRepository(t, "snap-1"), usecase.WithSlackService(fake))

		_, err := uc.Digest.Post(ctx, "#nowhere", model.Filter{})
		gt.Error(t, err).Is(slacksvc.ErrChannelNotFound)
		gt.A(t, fake.posted).Length(0)
	})

	t.Run("slack not configured", func(t *testing.T) {
		uc := usecase.New(memory.New())
		gt.B(t, uc.Digest.Available()).False()

		_, err := uc.Digest.Post(ctx, "C0123456789", model.Filter{})
		gt.Error(t, err).Is(usecase.ErrSlackNotConfigured)
	})
}
