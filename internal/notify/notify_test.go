package notify_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailcast/internal/contact"
	"github.com/dmitrymomot/mailcast/internal/notify"
	"github.com/dmitrymomot/mailcast/pkg/mailer"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, email *mailer.Email) error {
	return m.Called(ctx, email).Error(0)
}

type mockStore struct {
	contact.Store
	mock.Mock
}

func (m *mockStore) GetByID(ctx context.Context, id int64) (contact.Contact, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(contact.Contact), args.Error(1)
}

type countingRecorder struct {
	counts map[string]int
}

func (r *countingRecorder) EmailDelivery(result string) {
	r.counts[result]++
}

var fixedClock = func() time.Time {
	return time.Date(2031, time.March, 4, 10, 0, 0, 0, time.UTC)
}

func newRenderer() *mailer.Renderer {
	return mailer.NewRenderer(fstest.MapFS{
		"email_template.html": {Data: []byte(`<p>{{.Name}}</p><div>{{.Content}}</div><footer>{{.Year}}</footer>`)},
	})
}

func toAddress(addr string) any {
	return mock.MatchedBy(func(e *mailer.Email) bool {
		return len(e.To) == 1 && e.To[0] == addr
	})
}

func TestNotifier_Broadcast_SkipsUnknownIDs(t *testing.T) {
	t.Parallel()

	store := contact.NewMemoryStore(
		contact.Contact{ID: 1, Email: "a@example.com", Name: "A"},
		contact.Contact{ID: 3, Email: "c@example.com", Name: "C"},
	)
	sender := &mockSender{}
	sender.On("Send", mock.Anything, toAddress("a@example.com")).Return(nil).Once()
	sender.On("Send", mock.Anything, toAddress("c@example.com")).Return(nil).Once()

	rec := &countingRecorder{counts: map[string]int{}}
	n := notify.New(store, newRenderer(), sender, notify.WithClock(fixedClock), notify.WithRecorder(rec))

	report, err := n.Broadcast(context.Background(), notify.Broadcast{
		Subject:    "News",
		Content:    "hello",
		ContactIDs: []int64{1, 2, 3},
	})

	require.NoError(t, err)
	require.Equal(t, notify.Report{Sent: 2, Skipped: 1}, report)
	sender.AssertNumberOfCalls(t, "Send", 2)
	sender.AssertExpectations(t)
	require.Equal(t, map[string]int{notify.ResultSent: 2, notify.ResultSkipped: 1}, rec.counts)
}

func TestNotifier_Broadcast_RendersTemplate(t *testing.T) {
	t.Parallel()

	store := contact.NewMemoryStore(contact.Contact{ID: 7, Email: "bob@example.com", Name: "Bob"})
	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.MatchedBy(func(e *mailer.Email) bool {
		return e.Subject == "Quarterly" &&
			e.HTML == "<p>Bob</p><div>Q1 numbers</div><footer>2031</footer>"
	})).Return(nil).Once()

	n := notify.New(store, newRenderer(), sender, notify.WithClock(fixedClock))
	_, err := n.Broadcast(context.Background(), notify.Broadcast{
		Subject:    "Quarterly",
		Content:    "Q1 numbers",
		ContactIDs: []int64{7},
	})

	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestNotifier_Broadcast_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	store := contact.NewMemoryStore(
		contact.Contact{ID: 1, Email: "a@example.com", Name: "A"},
		contact.Contact{ID: 2, Email: "b@example.com", Name: "B"},
	)
	sender := &mockSender{}
	sender.On("Send", mock.Anything, toAddress("a@example.com")).
		Return(errors.New("550 mailbox unavailable")).Once()

	n := notify.New(store, newRenderer(), sender, notify.WithClock(fixedClock))
	report, err := n.Broadcast(context.Background(), notify.Broadcast{
		Subject:    "News",
		ContactIDs: []int64{1, 2},
	})

	var sendErr *notify.SendError
	require.ErrorAs(t, err, &sendErr)
	require.Equal(t, "a@example.com", sendErr.Address)
	require.Equal(t, "Failed to send email to a@example.com: 550 mailbox unavailable", err.Error())
	require.Zero(t, report.Sent)
	sender.AssertNumberOfCalls(t, "Send", 1)
}

func TestNotifier_Broadcast_SkipsIncompleteContacts(t *testing.T) {
	t.Parallel()

	store := contact.NewMemoryStore(
		contact.Contact{ID: 1, Email: "", Name: "No Email"},
		contact.Contact{ID: 2, Email: "noname@example.com", Name: ""},
		contact.Contact{ID: 3, Email: "ok@example.com", Name: "Ok"},
	)
	sender := &mockSender{}
	sender.On("Send", mock.Anything, toAddress("ok@example.com")).Return(nil).Once()

	report, err := notify.New(store, newRenderer(), sender).Broadcast(context.Background(), notify.Broadcast{
		Subject:    "News",
		ContactIDs: []int64{1, 2, 3},
	})

	require.NoError(t, err)
	require.Equal(t, notify.Report{Sent: 1, Skipped: 2}, report)
	sender.AssertExpectations(t)
}

func TestNotifier_Broadcast_StoreFailure(t *testing.T) {
	t.Parallel()

	storeErr := errors.Join(contact.ErrStore, errors.New("connection refused"))
	store := &mockStore{}
	store.On("GetByID", mock.Anything, int64(1)).Return(contact.Contact{}, storeErr).Once()
	sender := &mockSender{}

	_, err := notify.New(store, newRenderer(), sender).Broadcast(context.Background(), notify.Broadcast{
		Subject:    "News",
		ContactIDs: []int64{1, 2},
	})

	require.ErrorIs(t, err, contact.ErrStore)
	store.AssertNumberOfCalls(t, "GetByID", 1)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestNotifier_Broadcast_TemplateMissing(t *testing.T) {
	t.Parallel()

	store := contact.NewMemoryStore(contact.Contact{ID: 1, Email: "a@example.com", Name: "A"})
	sender := &mockSender{}

	_, err := notify.New(store, newRenderer(), sender, notify.WithTemplate("other")).
		Broadcast(context.Background(), notify.Broadcast{Subject: "News", ContactIDs: []int64{1}})

	require.ErrorIs(t, err, mailer.ErrTemplateNotFound)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestNotifier_Broadcast_CallerCancellation(t *testing.T) {
	t.Parallel()

	store := contact.NewMemoryStore(
		contact.Contact{ID: 1, Email: "a@example.com", Name: "A"},
		contact.Contact{ID: 2, Email: "b@example.com", Name: "B"},
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sender := &mockSender{}
	sender.On("Send", mock.Anything, toAddress("a@example.com")).
		Run(func(mock.Arguments) { cancel() }).
		Return(nil).Once()
	sender.On("Send", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil }), toAddress("b@example.com")).
		Return(nil).Once()

	report, err := notify.New(store, newRenderer(), sender).Broadcast(ctx, notify.Broadcast{
		Subject:    "News",
		ContactIDs: []int64{1, 2},
	})

	require.NoError(t, err)
	require.Equal(t, 2, report.Sent)
	sender.AssertExpectations(t)
}

func TestNotifier_Broadcast_AuthFailure(t *testing.T) {
	t.Parallel()

	store := contact.NewMemoryStore(
		contact.Contact{ID: 1, Email: "a@example.com", Name: "A"},
		contact.Contact{ID: 2, Email: "b@example.com", Name: "B"},
	)
	sender := &mockSender{}
	sender.On("Send", mock.Anything, toAddress("a@example.com")).
		Return(fmt.Errorf("%w: 535 5.7.8 authentication failed", mailer.ErrAuth)).Once()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	_, err := notify.New(store, newRenderer(), sender, notify.WithLogger(log)).
		Broadcast(context.Background(), notify.Broadcast{Subject: "News", ContactIDs: []int64{1, 2}})

	var sendErr *notify.SendError
	require.ErrorAs(t, err, &sendErr)
	require.ErrorIs(t, err, mailer.ErrAuth)
	require.Equal(t, 1, strings.Count(buf.String(), `"msg":"mail is not properly configured"`))
	require.Contains(t, buf.String(), `"level":"ERROR"`)
	sender.AssertNumberOfCalls(t, "Send", 1)
}

func TestNotifier_Broadcast_DeliveryFailureIsNotConfigError(t *testing.T) {
	t.Parallel()

	store := contact.NewMemoryStore(contact.Contact{ID: 1, Email: "a@example.com", Name: "A"})
	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(errors.New("550 mailbox unavailable")).Once()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	_, err := notify.New(store, newRenderer(), sender, notify.WithLogger(log)).
		Broadcast(context.Background(), notify.Broadcast{Subject: "News", ContactIDs: []int64{1}})

	require.Error(t, err)
	require.NotContains(t, buf.String(), "mail is not properly configured")
}

func TestSendError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("timeout")
	err := error(&notify.SendError{Address: "a@example.com", Err: cause})
	require.ErrorIs(t, err, cause)
}
