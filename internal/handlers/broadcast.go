package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrymomot/mailcast"
	"github.com/dmitrymomot/mailcast/internal/notify"
)

// Broadcaster sends one message to a list of contacts.
type Broadcaster interface {
	Broadcast(ctx context.Context, b notify.Broadcast) (notify.Report, error)
}

// Broadcasts serves POST /send-email.
type Broadcasts struct {
	notifier Broadcaster
}

func NewBroadcasts(n Broadcaster) *Broadcasts {
	return &Broadcasts{notifier: n}
}

// Routes implements mailcast.Handler.
func (h *Broadcasts) Routes(r mailcast.Router) {
	r.POST("/send-email", h.send)
}

// sendRequest.ToEmails holds contact ids, not addresses.
type sendRequest struct {
	Subject  string      `json:"subject"`
	Content  string      `json:"content"`
	ToEmails []contactID `json:"to_emails"`
}

// contactID accepts both 3 and "3".
type contactID int64

func (id *contactID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(strings.TrimSpace(s))
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return err
	}
	*id = contactID(v)
	return nil
}

func (r sendRequest) contactIDs() []int64 {
	ids := make([]int64, len(r.ToEmails))
	for i, id := range r.ToEmails {
		ids[i] = int64(id)
	}
	return ids
}

func (h *Broadcasts) send(c mailcast.Context) error {
	var req sendRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.Subject == "" || len(req.ToEmails) == 0 {
		return errInvalidInput()
	}

	report, err := h.notifier.Broadcast(c, notify.Broadcast{
		Subject:    req.Subject,
		Content:    req.Content,
		ContactIDs: req.contactIDs(),
	})
	if err != nil {
		return err
	}

	c.LogInfo("broadcast finished",
		slog.Int("requested", len(req.ToEmails)),
		slog.Int("sent", report.Sent),
		slog.Int("skipped", report.Skipped),
	)
	return c.JSON(http.StatusOK, message("All emails sent successfully"))
}
