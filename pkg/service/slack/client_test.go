package slack_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/opsboard/pkg/service/slack"
	goslack "github.com/slack-go/slack"
)

func TestNew(t *testing.T) {
	t.Run("returns error when token is empty", func(t *testing.T) {
		_, err := slack.New("")
		gt.Value(t, err).NotNil()
	})

	t.Run("creates service when token is provided", func(t *testing.T) {
		svc, err := slack.New("test-token")
		gt.NoError(t, err).Required()
		gt.Value(t, svc).NotNil()
	})
}

func newFakeSlack(t *testing.T, listCalls *int32) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/conversations.list", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(listCalls, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"channels":[` +
			`{"id":"C0000OPS1","name":"ops-alerts","is_member":true},` +
			`{"id":"C0000RND1","name":"random","is_member":false}` +
			`],"response_metadata":{"next_cursor":""}}`))
	})
	mux.HandleFunc("/chat.postMessage", func(w http.ResponseWriter, r *http.Request) {
		gt.NoError(t, r.ParseForm())
		gt.V(t, r.Form.Get("channel")).Equal("C0000OPS1")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"channel":"C0000OPS1","ts":"1700000000.000100"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientWithFakeAPI(t *testing.T) {
	ctx := context.Background()
	var listCalls int32
	srv := newFakeSlack(t, &listCalls)

	svc, err := slack.New("xoxb-test", slack.WithAPIURL(srv.URL+"/"))
	gt.NoError(t, err).Required()

	t.Run("ListJoinedChannels returns member channels only", func(t *testing.T) {
		channels, err := svc.ListJoinedChannels(ctx)
		gt.NoError(t, err).Required()
		gt.A(t, channels).Length(1)
		gt.V(t, channels[0]).Equal(slack.Channel{ID: "C0000OPS1", Name: "ops-alerts"})
	})

	t.Run("ResolveChannel by name is cached", func(t *testing.T) {
		before := atomic.LoadInt32(&listCalls)

		id, err := svc.ResolveChannel(ctx, "#ops-alerts")
		gt.NoError(t, err).Required()
		gt.V(t, id).Equal("C0000OPS1")

		id, err = svc.ResolveChannel(ctx, "Ops Alerts")
		gt.NoError(t, err).Required()
		gt.V(t, id).Equal("C0000OPS1")

		gt.V(t, atomic.LoadInt32(&listCalls)-before).Equal(int32(1))
	})

	t.Run("ResolveChannel passes IDs through", func(t *testing.T) {
		id, err := svc.ResolveChannel(ctx, "C0000XYZ9")
		gt.NoError(t, err).Required()
		gt.V(t, id).Equal("C0000XYZ9")
	})

	t.Run("ResolveChannel unknown name", func(t *testing.T) {
		_, err := svc.ResolveChannel(ctx, "#random")
		gt.Error(t, err).Is(slack.ErrChannelNotFound)
	})

	t.Run("PostMessage returns timestamp", func(t *testing.T) {
		blocks := []goslack.Block{
			goslack.NewSectionBlock(goslack.NewTextBlockObject(goslack.MarkdownType, "hello", false, false), nil, nil),
		}
		ts, err := svc.PostMessage(ctx, "C0000OPS1", blocks, "hello")
		gt.NoError(t, err).Required()
		gt.V(t, ts).Equal("1700000000.000100")
	})
}

func TestIntegration(t *testing.T) {
	token := os.Getenv("TEST_SLACK_BOT_TOKEN")
	if token == "" {
		t.Skip("TEST_SLACK_BOT_TOKEN is not set")
	}
	channel := os.Getenv("TEST_SLACK_CHANNEL")
	if channel == "" {
		t.Skip("TEST_SLACK_CHANNEL is not set")
	}

	ctx := context.Background()
	svc, err := slack.New(token)
	gt.NoError(t, err).Required()

	channelID, err := svc.ResolveChannel(ctx, channel)
	gt.NoError(t, err).Required()

	blocks := []goslack.Block{
		goslack.NewSectionBlock(goslack.NewTextBlockObject(goslack.MarkdownType, "opsboard integration test", false, false), nil, nil),
	}
	ts, err := svc.PostMessage(ctx, channelID, blocks, "opsboard integration test")
	gt.NoError(t, err).Required()
	gt.String(t, ts).NotEqual("")
}
