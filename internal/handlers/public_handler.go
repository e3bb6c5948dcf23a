package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/neuromancers/session-scheduler/internal/domain/filterstate"
	domain "github.com/neuromancers/session-scheduler/internal/domain/session"
	"github.com/neuromancers/session-scheduler/internal/httperr"
	"github.com/neuromancers/session-scheduler/internal/httpresp"
	"github.com/neuromancers/session-scheduler/internal/models"
	ucSession "github.com/neuromancers/session-scheduler/internal/usecase/session"
)

// ======================================================
// HANDLER
// ======================================================

// PublicHandler serves the unauthenticated browse surface: the session
// listing with its filter panel, session details, reviews, and the
// calendar slots for one day.
type PublicHandler struct {
	db             *gorm.DB
	listUC         *ucSession.ListSessions
	availabilityUC *ucSession.GetAvailability
}

func NewPublicHandler(
	db *gorm.DB,
	listUC *ucSession.ListSessions,
	availabilityUC *ucSession.GetAvailability,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		listUC:         listUC,
		availabilityUC: availabilityUC,
	}
}

// ======================================================
// FILTER CATALOG
// ======================================================

// filterCatalog builds the site-wide filter groups. Languages come from
// what hosts actually offer; the rest are fixed vocabularies.
func (h *PublicHandler) filterCatalog() *filterstate.State {
	langGroup := filterstate.Group{
		Key:   filterstate.GroupLanguages,
		Label: "Languages",
	}
	for _, lang := range h.distinctLanguages() {
		langGroup.Options = append(langGroup.Options, filterstate.Option{
			Value: lang,
			Label: lang,
		})
	}

	typeGroup := filterstate.Group{
		Key:   filterstate.GroupType,
		Label: "Session type",
		Options: []filterstate.Option{
			{Value: "one_to_one", Label: "One to one"},
			{Value: "group", Label: "Group"},
		},
	}

	topicsGroup := filterstate.Group{
		Key:   "topics",
		Label: "Topics",
		Options: []filterstate.Option{
			{Value: "anxiety", Label: "Anxiety"},
			{Value: "bereavement", Label: "Bereavement"},
			{Value: "loneliness", Label: "Loneliness"},
			{Value: "relationships", Label: "Relationships"},
			{Value: "work", Label: "Work and study"},
		},
	}

	return &filterstate.State{
		Groups:  []filterstate.Group{langGroup, typeGroup, topicsGroup},
		Toggles: map[string]string{"free": ""},
	}
}

func (h *PublicHandler) distinctLanguages() []string {
	var rows []string
	h.db.Model(&models.Session{}).
		Where("is_published = true").
		Distinct().
		Pluck("languages", &rows)

	seen := map[string]bool{}
	var out []string
	for _, row := range rows {
		s := models.Session{Languages: row}
		for _, lang := range s.LanguageList() {
			if !seen[lang] {
				seen[lang] = true
				out = append(out, lang)
			}
		}
	}
	return out
}

// toListFilter maps restored filter state onto the repository query.
func toListFilter(state *filterstate.State) domain.ListFilter {
	filter := domain.ListFilter{
		Filters:  map[string][]string{},
		Sort:     state.Sort,
		FreeOnly: state.Toggles["free"] == "true",
	}

	for i := range state.Groups {
		g := &state.Groups[i]
		selected := g.SelectedValues()
		if len(selected) == 0 {
			continue
		}
		if g.Key == filterstate.GroupLanguages {
			filter.Languages = selected
			continue
		}
		filter.Filters[g.Key] = selected
	}

	return filter
}

// ======================================================
// LISTING
// ======================================================

func (h *PublicHandler) ListSessions(c *gin.Context) {
	state := h.filterCatalog()
	state.Restore(c.Request.URL.Query())

	sessions, err := h.listUC.Execute(c.Request.Context(), toListFilter(state))
	if err != nil {
		httperr.Internal(c, "listing_failed", "Could not list sessions.")
		return
	}

	nav := filterstate.NewNav(state)

	httpresp.OK(c, gin.H{
		"data":       sessions,
		"total":      len(sessions),
		"nav":        navJSON(nav.Snapshot()),
		"submit_url": state.SubmitURL(c.Request.URL.Path),
	})
}

func navJSON(v filterstate.View) gin.H {
	if v.Inline {
		return gin.H{"inline": true}
	}

	entries := make([]gin.H, 0, len(v.Entries))
	for _, e := range v.Entries {
		entries = append(entries, gin.H{
			"key":   e.Key,
			"label": e.Label,
			"badge": e.Badge,
		})
	}
	return gin.H{"inline": false, "entries": entries}
}

// ======================================================
// DETAIL / AVAILABILITY / REVIEWS
// ======================================================

func (h *PublicHandler) GetSession(c *gin.Context) {
	sessionID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var s models.Session
	if err := h.db.
		Preload("Host").
		Where("id = ? AND is_published = true", sessionID).
		First(&s).Error; err != nil {
		httperr.NotFound(c, "session_not_found", "Not found.")
		return
	}

	httpresp.OK(c, s)
}

func (h *PublicHandler) Availability(c *gin.Context) {
	sessionID, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	day, ok := parseDay(c)
	if !ok {
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), domain.AvailabilityInput{
		SessionID: sessionID,
		Day:       day,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.List(c, slots)
}

func (h *PublicHandler) ListReviews(c *gin.Context) {
	sessionID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var reviews []models.SessionReview
	if err := h.db.
		Preload("Attendee").
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		httperr.Internal(c, "listing_failed", "Could not list reviews.")
		return
	}

	httpresp.List(c, reviews)
}
