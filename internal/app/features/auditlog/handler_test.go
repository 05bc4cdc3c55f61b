package auditlog_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/clubsphere/internal/app/features/auditlog"
	"github.com/dalemusser/clubsphere/internal/app/store/audit"
	userstore "github.com/dalemusser/clubsphere/internal/app/store/users"
	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/dalemusser/clubsphere/internal/app/system/authz"
	"github.com/dalemusser/clubsphere/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type listBody struct {
	Events     []audit.Event `json:"events"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
}

func newRouter(t *testing.T) (chi.Router, *mongo.Database, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := auditlog.NewHandler(audit.New(db), logger)
	az := authz.NewAuthority(userstore.New(db), logger)
	return auditlog.Routes(h, auth.NewMiddleware(nil, logger), az), db, testutil.NewFixtures(t, db)
}

func seed(t *testing.T, db *mongo.Database, events ...audit.Event) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := audit.New(db)
	for _, e := range events {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("seed audit event: %v", err)
		}
	}
}

func TestServeList_Unauthenticated(t *testing.T) {
	r, _, _ := newRouter(t)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/"))

	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestServeList_NonAdminForbidden(t *testing.T) {
	r, _, fx := newRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx.CreateManager(ctx, "manager@example.com")

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/", "manager@example.com", nil))

	rec.AssertStatus(t, http.StatusForbidden)
	if kind := rec.ErrorKind(t); kind != "Forbidden" {
		t.Errorf("error kind: got %q, want Forbidden", kind)
	}
}

func TestServeList_AdminSeesEvents(t *testing.T) {
	r, db, fx := newRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx.CreateAdmin(ctx, "admin@example.com")

	seed(t, db,
		audit.Event{Category: audit.CategoryMembership, EventType: audit.EventMembershipJoined, ActorEmail: "a@example.com", Success: true},
		audit.Event{Category: audit.CategoryPayment, EventType: audit.EventPaymentConfirmed, ActorEmail: "b@example.com", Success: true},
		audit.Event{Category: audit.CategoryAdmin, EventType: audit.EventRoleChanged, ActorEmail: "admin@example.com", Success: true},
	)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/", "admin@example.com", nil))

	rec.AssertStatus(t, http.StatusOK)
	var body listBody
	rec.DecodeJSON(t, &body)
	if body.Total != 3 || len(body.Events) != 3 {
		t.Errorf("got total=%d events=%d, want 3 and 3", body.Total, len(body.Events))
	}
	if body.Page != 1 || body.TotalPages != 1 {
		t.Errorf("paging: got page=%d totalPages=%d, want 1 and 1", body.Page, body.TotalPages)
	}
}

func TestServeList_Filters(t *testing.T) {
	r, db, fx := newRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx.CreateAdmin(ctx, "admin@example.com")

	old := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	recent := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	seed(t, db,
		audit.Event{Timestamp: old, Category: audit.CategoryMembership, EventType: audit.EventMembershipJoined, Success: true},
		audit.Event{Timestamp: recent, Category: audit.CategoryMembership, EventType: audit.EventMembershipCancelled, Success: true},
		audit.Event{Timestamp: recent, Category: audit.CategoryPayment, EventType: audit.EventPaymentFailed},
	)

	tests := []struct {
		name  string
		query string
		want  int64
	}{
		{"category", "/?category=membership", 2},
		{"event type", "/?event_type=payment_failed", 1},
		{"start date", "/?start_date=2024-03-01", 2},
		{"end date is inclusive", "/?end_date=2024-01-10", 1},
		{"combined", "/?category=membership&start_date=2024-02-01&end_date=2024-03-31", 1},
		{"no match", "/?category=admin", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			r.ServeHTTP(rec, testutil.NewAuthenticatedRequest(t, http.MethodGet, tt.query, "admin@example.com", nil))

			rec.AssertStatus(t, http.StatusOK)
			var body listBody
			rec.DecodeJSON(t, &body)
			if body.Total != tt.want {
				t.Errorf("total: got %d, want %d", body.Total, tt.want)
			}
		})
	}
}

func TestServeList_BadDate(t *testing.T) {
	r, _, fx := newRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx.CreateAdmin(ctx, "admin@example.com")

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/?start_date=yesterday", "admin@example.com", nil))

	rec.AssertStatus(t, http.StatusBadRequest)
	if kind := rec.ErrorKind(t); kind != "InvalidInput" {
		t.Errorf("error kind: got %q, want InvalidInput", kind)
	}
}
