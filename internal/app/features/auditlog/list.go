// internal/app/features/auditlog/list.go
package auditlog

import (
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/clubsphere/internal/app/store/audit"
	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"github.com/dalemusser/clubsphere/internal/app/system/paging"
	"github.com/dalemusser/clubsphere/internal/app/system/respond"
	"github.com/dalemusser/clubsphere/internal/app/system/timeouts"
)

// listResponse is the JSON page returned by ServeList.
type listResponse struct {
	Events     []audit.Event `json:"events"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
	Categories []string      `json:"categories"`
}

func allCategories() []string {
	return []string{
		audit.CategoryMembership,
		audit.CategoryRegistration,
		audit.CategoryPayment,
		audit.CategoryAdmin,
	}
}

// parseFilter reads the list filters from the query string. Dates are
// YYYY-MM-DD in UTC; end_date covers the whole day.
func parseFilter(r *http.Request) (audit.QueryFilter, int, error) {
	q := r.URL.Query()

	page := paging.ParsePage(r)

	filter := audit.QueryFilter{
		ActorEmail: strings.ToLower(strings.TrimSpace(q.Get("actor"))),
		Category:   strings.TrimSpace(q.Get("category")),
		EventType:  strings.TrimSpace(q.Get("event_type")),
		TargetID:   strings.TrimSpace(q.Get("target_id")),
		Limit:      paging.PageSize,
		Offset:     paging.Offset(page, paging.PageSize),
	}

	if s := strings.TrimSpace(q.Get("start_date")); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return filter, 0, apperr.New(apperr.InvalidInput, "start_date must be YYYY-MM-DD")
		}
		filter.StartTime = &t
	}
	if s := strings.TrimSpace(q.Get("end_date")); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return filter, 0, apperr.New(apperr.InvalidInput, "end_date must be YYYY-MM-DD")
		}
		endOfDay := t.Add(24*time.Hour - time.Nanosecond)
		filter.EndTime = &endOfDay
	}
	return filter, page, nil
}

// ServeList handles GET /api/audit: one page of audit events, newest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	filter, page, err := parseFilter(r)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long)
	defer cancel()

	events, err := h.Audit.Query(ctx, filter)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	total, err := h.Audit.CountByFilter(ctx, filter)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	respond.JSON(w, http.StatusOK, listResponse{
		Events:     events,
		Total:      total,
		Page:       page,
		TotalPages: paging.TotalPages(total, paging.PageSize),
		Categories: allCategories(),
	})
}
