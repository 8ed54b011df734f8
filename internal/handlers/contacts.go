package handlers

import (
	"net/http"

	"github.com/dmitrymomot/mailcast"
	"github.com/dmitrymomot/mailcast/internal/contact"
)

// Contacts serves the /emails endpoints.
type Contacts struct {
	store contact.Store
}

func NewContacts(store contact.Store) *Contacts {
	return &Contacts{store: store}
}

// Routes implements mailcast.Handler.
func (h *Contacts) Routes(r mailcast.Router) {
	r.GET("/emails", h.list)
	r.POST("/emails", h.add)
	r.PUT("/emails", h.edit)
	r.DELETE("/emails", h.remove)
}

type addRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type editRequest struct {
	OldEmail string `json:"oldEmail"`
	NewEmail string `json:"newEmail"`
	Name     string `json:"name"`
}

type removeRequest struct {
	Email string `json:"email"`
}

func (h *Contacts) list(c mailcast.Context) error {
	contacts, err := h.store.List(c)
	if err != nil {
		return err
	}
	if contacts == nil {
		contacts = []contact.Contact{}
	}
	return c.JSON(http.StatusOK, contacts)
}

func (h *Contacts) add(c mailcast.Context) error {
	var req addRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if !present(req.Email, req.Name) {
		return errInvalidInput()
	}

	created, err := h.store.Add(c, req.Email, req.Name)
	if err != nil {
		return err
	}

	c.LogInfo("contact added", "contact_id", created.ID)
	return c.JSON(http.StatusCreated, message("Email added successfully"))
}

// edit matches rows by their current email. Unknown emails still succeed.
func (h *Contacts) edit(c mailcast.Context) error {
	var req editRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if !present(req.OldEmail, req.NewEmail, req.Name) {
		return errInvalidInput()
	}

	if err := h.store.Edit(c, req.OldEmail, req.NewEmail, req.Name); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message("Email updated successfully"))
}

func (h *Contacts) remove(c mailcast.Context) error {
	var req removeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if !present(req.Email) {
		return errInvalidInput()
	}

	if err := h.store.Remove(c, req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message("Email removed successfully"))
}
