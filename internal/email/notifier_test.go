package email_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pharmadesk/report-dispatch/internal/email"
	"github.com/pharmadesk/report-dispatch/internal/mocks"
	"github.com/pharmadesk/report-dispatch/internal/settings"
	"github.com/pharmadesk/report-dispatch/internal/store"
)

type staticResolver settings.DeliveryConfig

func (r staticResolver) Resolve(context.Context) settings.DeliveryConfig {
	return settings.DeliveryConfig(r)
}

type recordingLog struct {
	entries []store.LogEmailParams
	err     error
}

func (l *recordingLog) LogEmail(_ context.Context, p store.LogEmailParams) error {
	l.entries = append(l.entries, p)
	return l.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fastSender(tr email.Transport) *email.Sender {
	return email.NewSender(
		func(string) email.Transport { return tr },
		email.SenderConfig{MaxAttempts: 3, BaseDelay: time.Millisecond},
		discardLogger(),
	)
}

func TestNotify_MissingCredentialsNeverSends(t *testing.T) {
	cases := map[string]settings.DeliveryConfig{
		"no api key":   {Recipient: "owner@pharmacy.test", From: settings.DefaultFrom},
		"no recipient": {APIKey: "re_x", From: settings.DefaultFrom},
		"nothing":      {From: settings.DefaultFrom},
		"only commas":  {APIKey: "re_x", Recipient: " , ,", From: settings.DefaultFrom},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			tr := mocks.NewMockTransport(ctrl)
			tr.EXPECT().Send(gomock.Any(), gomock.Any()).Times(0)

			log := &recordingLog{}
			n := email.NewNotifier(staticResolver(cfg), fastSender(tr), log, discardLogger())

			out, err := n.Notify(context.Background(), "Daily", "<p/>")
			assert.ErrorIs(t, err, email.ErrNotConfigured)
			assert.Equal(t, email.Outcome{}, out)
			assert.Empty(t, log.entries)
		})
	}
}

func TestNotify_RetriesThenRecordsOutcome(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := mocks.NewMockTransport(ctrl)

	gomock.InOrder(
		tr.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("timeout")),
		tr.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, msg email.Message) error {
				assert.Equal(t, []string{"a@pharmacy.test", "b@pharmacy.test"}, msg.To)
				assert.Equal(t, "Monthly", msg.Subject)
				assert.Equal(t, "Reports <r@pharmacy.test>", msg.From)
				return nil
			}),
	)

	log := &recordingLog{}
	cfg := settings.DeliveryConfig{
		APIKey:    "re_x",
		Recipient: "a@pharmacy.test, b@pharmacy.test",
		From:      "Reports <r@pharmacy.test>",
	}
	n := email.NewNotifier(staticResolver(cfg), fastSender(tr), log, discardLogger())

	out, err := n.Notify(context.Background(), "Monthly", "<p/>")
	require.NoError(t, err)
	assert.Equal(t, email.Outcome{Sent: true, Attempts: 2}, out)

	require.Len(t, log.entries, 1)
	assert.True(t, log.entries[0].Sent)
	assert.Equal(t, 2, log.entries[0].Attempts)
	assert.Equal(t, "Monthly", log.entries[0].Subject)
}

func TestNotify_ExhaustedIsOutcomeNotError(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := mocks.NewMockTransport(ctrl)
	tr.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("502 bad gateway")).Times(3)

	log := &recordingLog{err: errors.New("log table missing")}
	cfg := settings.DeliveryConfig{APIKey: "re_x", Recipient: "a@pharmacy.test", From: "x@pharmacy.test"}
	n := email.NewNotifier(staticResolver(cfg), fastSender(tr), log, discardLogger())

	out, err := n.Notify(context.Background(), "Annual", "<p/>")
	require.NoError(t, err, "log failure and delivery failure are both non-fatal")
	assert.False(t, out.Sent)
	assert.Equal(t, 3, out.Attempts)
	assert.Equal(t, "502 bad gateway", out.Error)
}
