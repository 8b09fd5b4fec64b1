package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plantkeeper/plantkeeper-backend/internal/auth"
	"github.com/plantkeeper/plantkeeper-backend/internal/listing"
	"github.com/plantkeeper/plantkeeper-backend/internal/plants/domain"
)

// list serves the raw catalog array consumed by the SPA's loaders.
func (h *Handler) list(c *gin.Context) {
	plants, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plants)
}

// view serves one windowed page of the catalog, computed server-side with
// the same engine the client uses.
func (h *Handler) view(c *gin.Context) {
	plants, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	q := parseQuery(c, listing.NewCatalogQuery())
	res := listing.Apply(plants, q, listing.Scope{})

	c.JSON(http.StatusOK, viewResponse{
		Items:         res.Visible,
		TotalMatched:  res.TotalMatched,
		TotalPages:    res.TotalPages,
		EffectivePage: res.EffectivePage,
	})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "plant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) create(c *gin.Context) {
	var req plantPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	id, err := h.svc.Create(c.Request.Context(), req.toDomain(), auth.UserEmail(c), auth.UserName(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"insertedId": id})
}

func (h *Handler) update(c *gin.Context) {
	var req plantPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	n, err := h.svc.Update(c.Request.Context(), c.Param("id"), req.toDomain(), auth.UserEmail(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"modifiedCount": n})
}

func (h *Handler) remove(c *gin.Context) {
	n, err := h.svc.Delete(c.Request.Context(), c.Param("id"), auth.UserEmail(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deletedCount": n})
}

// myList serves the caller's own plants as a raw array.
func (h *Handler) myList(c *gin.Context) {
	plants, err := h.svc.ListByOwner(c.Request.Context(), auth.UserEmail(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plants)
}

// myView serves one windowed page of the caller's plants. The owner scope
// is implicit and cannot be removed through query params; with no verified
// email it matches nothing.
func (h *Handler) myView(c *gin.Context) {
	email := auth.UserEmail(c)

	plants, err := h.svc.ListByOwner(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	q := parseQuery(c, listing.NewOwnerQuery())
	res := listing.Apply(plants, q, listing.Scope{Owned: true, OwnerEmail: email})

	c.JSON(http.StatusOK, viewResponse{
		Items:         res.Visible,
		TotalMatched:  res.TotalMatched,
		TotalPages:    res.TotalPages,
		EffectivePage: res.EffectivePage,
	})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "plant not found"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "not your plant"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
