package api

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ashureev/matter/internal/domain"
	"github.com/ashureev/matter/internal/identity"
	"github.com/ashureev/matter/internal/journal"
)

// JournalHandler serves the intention, progression and statistics endpoints.
type JournalHandler struct {
	*Handler
}

// NewJournalHandler creates a new journal handler.
func NewJournalHandler(base *Handler) *JournalHandler {
	return &JournalHandler{Handler: base}
}

// RegisterRoutes registers journal routes.
func (h *JournalHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/state", h.GetState)
		r.Post("/session", h.StartSession)
		r.Post("/intentions", h.AddIntention)
		r.Post("/intentions/{id}/complete", h.CompleteIntention)
		r.Put("/landscape", h.SelectLandscape)
		r.Get("/calendar", h.GetCalendar)
		r.Get("/stats", h.GetStats)
		r.Get("/inventory", h.GetInventory)
		r.Get("/catalog", h.GetCatalog)
		r.Get("/export", h.Export)
		r.Post("/import", h.Import)
	})
}

// GetState returns the document and today's view of it.
func (h *JournalHandler) GetState(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	JSON(w, http.StatusOK, h.journal.State(r.Context(), userID, h.loc(r)))
}

// StartSession applies the day rollover for a freshly opened client.
func (h *JournalHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	res, err := h.journal.StartSession(r.Context(), userID, h.loc(r))
	if err != nil {
		ServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, res)
}

type addIntentionRequest struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// AddIntention creates an intention for today.
func (h *JournalHandler) AddIntention(w http.ResponseWriter, r *http.Request) {
	var req addIntentionRequest
	if err := decodeBody(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := identity.UserIDFromContext(r.Context())
	res, err := h.journal.AddIntention(r.Context(), userID, req.Text, req.Category, h.loc(r))
	if err != nil {
		ServiceError(w, r, err)
		return
	}
	if !res.Accepted {
		Rejected(w, res.Reason)
		return
	}
	JSON(w, http.StatusCreated, res.Goal)
}

type completeRequest struct {
	Reflection string `json:"reflection"`
}

// CompleteIntention completes an intention with the user's reflection.
func (h *JournalHandler) CompleteIntention(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if r.ContentLength != 0 {
		if err := decodeBody(w, r, &req); err != nil {
			Error(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	userID := identity.UserIDFromContext(r.Context())
	goalID := chi.URLParam(r, "id")
	res, err := h.journal.CompleteIntention(r.Context(), userID, goalID, req.Reflection, h.loc(r))
	if err != nil {
		ServiceError(w, r, err)
		return
	}
	if !res.Accepted {
		Rejected(w, res.Reason)
		return
	}
	JSON(w, http.StatusOK, map[string]interface{}{
		"goal":     res.Goal,
		"response": res.Goal.ReflectionResponse,
		"gift":     res.Gift,
	})
}

type selectLandscapeRequest struct {
	ID string `json:"id"`
}

// SelectLandscape switches the displayed landscape.
func (h *JournalHandler) SelectLandscape(w http.ResponseWriter, r *http.Request) {
	var req selectLandscapeRequest
	if err := decodeBody(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := identity.UserIDFromContext(r.Context())
	res, err := h.journal.SelectLandscape(r.Context(), userID, req.ID, h.loc(r))
	if err != nil {
		ServiceError(w, r, err)
		return
	}
	if !res.Accepted {
		Rejected(w, res.Reason)
		return
	}
	JSON(w, http.StatusOK, map[string]string{"current_landscape_id": req.ID})
}

// GetCalendar returns completed intentions for ?month=YYYY-MM, defaulting to
// the current month.
func (h *JournalHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	loc := h.loc(r)
	now := h.journal.Now(loc)
	year, month := now.Year(), now.Month()

	if raw := r.URL.Query().Get("month"); raw != "" {
		t, err := time.Parse("2006-01", raw)
		if err != nil {
			Error(w, http.StatusBadRequest, "month must be YYYY-MM")
			return
		}
		year, month = t.Year(), t.Month()
	}

	userID := identity.UserIDFromContext(r.Context())
	view, err := h.journal.Calendar(r.Context(), userID, year, month, loc)
	if err != nil {
		ServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, view)
}

// GetStats returns the category distribution for ?scope=month|year.
func (h *JournalHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	loc := h.loc(r)
	now := h.journal.Now(loc)
	q := r.URL.Query()

	scope := journal.Scope(q.Get("scope"))
	if scope == "" {
		scope = journal.ScopeMonth
	}
	year, ok := intParam(q.Get("year"), now.Year())
	if !ok {
		Error(w, http.StatusBadRequest, "year must be a number")
		return
	}
	month, ok := intParam(q.Get("month"), int(now.Month()))
	if !ok {
		Error(w, http.StatusBadRequest, "month must be a number")
		return
	}

	userID := identity.UserIDFromContext(r.Context())
	view, err := h.journal.Stats(r.Context(), userID, scope, year, time.Month(month), loc)
	if err != nil {
		ServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, view)
}

func intParam(raw string, fallback int) (int, bool) {
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// GetInventory returns the collected gifts.
func (h *JournalHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	snap := h.journal.State(r.Context(), userID, h.loc(r))
	JSON(w, http.StatusOK, map[string]interface{}{
		"gifts":                     snap.State.Inventory,
		"gifts_received_this_month": snap.State.GiftsReceivedThisMonth,
		"last_gift_month":           snap.State.LastGiftMonth,
	})
}

type categoryEntry struct {
	Name        domain.Category `json:"name"`
	Description string          `json:"description"`
}

// GetCatalog returns the fixed catalogs the client renders from.
func (h *JournalHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	categories := make([]categoryEntry, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		categories = append(categories, categoryEntry{Name: c, Description: c.Description()})
	}
	JSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"landscapes": domain.Landscapes,
		"gifts":      domain.GiftCatalog,
	})
}

// Export downloads the stored document.
func (h *JournalHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	raw, err := h.journal.Export(r.Context(), userID, h.loc(r))
	if err != nil {
		ServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="matter-export.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// Import replaces the stored document with the uploaded one.
func (h *JournalHandler) Import(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		Error(w, http.StatusBadRequest, "failed to read body")
		return
	}

	userID := identity.UserIDFromContext(r.Context())
	snap, err := h.journal.Import(r.Context(), userID, raw, h.loc(r))
	if err != nil {
		ServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, snap)
}
