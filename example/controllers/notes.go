package controllers

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/pebble"
	"github.com/dmitrymomot/pebble/pkg/db"
	"github.com/dmitrymomot/pebble/pkg/sanitizer"
	"github.com/dmitrymomot/pebble/pkg/slug"
)

// Notes lists, shows and creates markdown notes.
type Notes struct {
	db *db.Helper
}

// NewNotes is registered as the "Notes" controller factory.
func NewNotes(app *pebble.App) pebble.Controller {
	return &Notes{db: app.DB()}
}

func (n *Notes) Actions() map[string]pebble.HandlerFunc {
	return map[string]pebble.HandlerFunc{
		"list":   n.list,
		"show":   n.show,
		"create": n.create,
	}
}

func (n *Notes) list(c pebble.Context) error {
	notes, err := n.db.Fetch(c, "SELECT slug, title FROM notes ORDER BY id DESC", nil)
	if err != nil {
		return err
	}
	return c.View(http.StatusOK, "pages/notes", pebble.Tree{"notes": notes})
}

func (n *Notes) show(c pebble.Context) error {
	found, err := n.db.FindBy(c, "notes", "slug", c.Param("slug"))
	if err != nil {
		return err
	}
	if len(found) == 0 {
		return pebble.ErrNotFound("Note not found")
	}

	note := found[0]
	c.InjectCurrentPage(pebble.Tree{"title": note.Get("title")})
	return c.View(http.StatusOK, "pages/note", pebble.Tree{"note": note})
}

func (n *Notes) create(c pebble.Context) error {
	title := strings.TrimSpace(sanitizer.StripHTML(c.Form("title")))
	body := strings.TrimSpace(c.Form("body"))
	if title == "" || body == "" {
		return pebble.ErrBadRequest("Title and body are required")
	}

	noteSlug := slug.Make(title, slug.MaxLength(80))
	if _, err := n.db.InsertInto(c, "notes", map[string]any{
		"slug":  noteSlug,
		"title": title,
		"body":  body,
	}); err != nil {
		return pebble.ErrBadRequest("Note could not be saved", pebble.WithError(err))
	}

	c.LogInfo("note created", "slug", noteSlug)
	return c.RedirectToRoute("note", map[string]string{"slug": noteSlug})
}
