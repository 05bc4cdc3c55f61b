package events_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/clubsphere/internal/app/features/events"
	clubstore "github.com/dalemusser/clubsphere/internal/app/store/clubs"
	eventstore "github.com/dalemusser/clubsphere/internal/app/store/events"
	registrationstore "github.com/dalemusser/clubsphere/internal/app/store/registrations"
	userstore "github.com/dalemusser/clubsphere/internal/app/store/users"
	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/dalemusser/clubsphere/internal/app/system/authz"
	"github.com/dalemusser/clubsphere/internal/app/system/gates"
	"github.com/dalemusser/clubsphere/internal/domain/models"
	"github.com/dalemusser/clubsphere/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type env struct {
	router chi.Router
	fx     *testutil.Fixtures
}

func newEnv(t *testing.T) env {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	es := eventstore.New(db)
	gate := gates.New(clubstore.New(db), es)
	az := authz.NewAuthority(userstore.New(db), logger)
	h := events.NewHandler(gate, es, registrationstore.New(db), logger)
	return env{
		router: events.Routes(h, auth.NewMiddleware(nil, logger), az),
		fx:     testutil.NewFixtures(t, db),
	}
}

func (e env) do(r *http.Request) *testutil.ResponseRecorder {
	rec := testutil.NewRecorder()
	e.router.ServeHTTP(rec, r)
	return rec
}

func TestCreate(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	e.fx.CreateManager(ctx, "owner@example.com")
	e.fx.CreateManager(ctx, "other@example.com")
	e.fx.CreateAdmin(ctx, "admin@example.com")
	approved := e.fx.CreateClub(ctx, "owner@example.com", models.ClubApproved, 0)
	pending := e.fx.CreateClub(ctx, "owner@example.com", models.ClubPending, 0)

	date := time.Date(2030, 5, 1, 18, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		caller string
		body   map[string]any
		status int
		kind   string
	}{
		{"owner free event", "owner@example.com",
			map[string]any{"clubId": approved.ID.Hex(), "title": "Open night", "eventDate": date, "feeCents": 900},
			http.StatusCreated, ""},
		{"admin paid event", "admin@example.com",
			map[string]any{"clubId": approved.ID.Hex(), "title": "Gala", "isPaid": true, "feeCents": 1500, "maxAttendees": 20},
			http.StatusCreated, ""},
		{"non-owner", "other@example.com",
			map[string]any{"clubId": approved.ID.Hex(), "title": "Hijack"},
			http.StatusForbidden, "Forbidden"},
		{"pending club", "owner@example.com",
			map[string]any{"clubId": pending.ID.Hex(), "title": "Too early"},
			http.StatusForbidden, "Unapproved"},
		{"paid without fee", "owner@example.com",
			map[string]any{"clubId": approved.ID.Hex(), "title": "Free?", "isPaid": true},
			http.StatusBadRequest, "InvalidAmount"},
		{"zero capacity", "owner@example.com",
			map[string]any{"clubId": approved.ID.Hex(), "title": "Nobody", "maxAttendees": 0},
			http.StatusBadRequest, "InvalidInput"},
		{"unknown club", "admin@example.com",
			map[string]any{"clubId": "64b7f0c2a1b2c3d4e5f60718", "title": "Ghost"},
			http.StatusNotFound, "NotFound"},
		{"bad club id", "admin@example.com",
			map[string]any{"clubId": "nope", "title": "Ghost"},
			http.StatusBadRequest, "InvalidInput"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.do(testutil.NewAuthenticatedRequest(t, http.MethodPost, "/", tt.caller, tt.body))
			rec.AssertStatus(t, tt.status)
			if tt.kind != "" {
				if kind := rec.ErrorKind(t); kind != tt.kind {
					t.Errorf("error kind: got %q, want %q", kind, tt.kind)
				}
			}
		})
	}
}

func TestCreate_UnpaidEventDropsFee(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	e.fx.CreateManager(ctx, "owner@example.com")
	club := e.fx.CreateClub(ctx, "owner@example.com", models.ClubApproved, 0)

	rec := e.do(testutil.NewAuthenticatedRequest(t, http.MethodPost, "/", "owner@example.com",
		map[string]any{"clubId": club.ID.Hex(), "title": "Picnic", "isPaid": false, "feeCents": 700}))
	rec.AssertStatus(t, http.StatusCreated)

	var ev models.Event
	rec.DecodeJSON(t, &ev)
	if ev.FeeCents != 0 || ev.IsPaid {
		t.Errorf("unpaid event: got isPaid=%v feeCents=%d, want false and 0", ev.IsPaid, ev.FeeCents)
	}
	if ev.ClubID != club.ID {
		t.Errorf("clubId: got %s, want %s", ev.ClubID.Hex(), club.ID.Hex())
	}
}

func TestUpdate(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	e.fx.CreateManager(ctx, "owner@example.com")
	e.fx.CreateManager(ctx, "other@example.com")
	club := e.fx.CreateClub(ctx, "owner@example.com", models.ClubApproved, 0)
	cap5 := int64(5)
	ev := e.fx.CreateEvent(ctx, club.ID, false, 0, &cap5)

	rec := e.do(testutil.NewAuthenticatedRequest(t, http.MethodPatch, "/"+ev.ID.Hex(), "other@example.com",
		map[string]any{"title": "Mine now"}))
	rec.AssertStatus(t, http.StatusForbidden)

	rec = e.do(testutil.NewAuthenticatedRequest(t, http.MethodPatch, "/"+ev.ID.Hex(), "owner@example.com",
		map[string]any{"title": "Renamed", "isPaid": true, "feeCents": 1200}))
	rec.AssertStatus(t, http.StatusOK)

	var got models.Event
	rec.DecodeJSON(t, &got)
	if got.Title != "Renamed" || !got.IsPaid || got.FeeCents != 1200 {
		t.Errorf("updated event: got %+v", got)
	}
	if got.MaxAttendees != nil {
		t.Errorf("omitted maxAttendees should remove the bound, got %d", *got.MaxAttendees)
	}
}

func TestGet_WithRegistrationCount(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	club := e.fx.CreateClub(ctx, "owner@example.com", models.ClubApproved, 0)
	ev := e.fx.CreateEvent(ctx, club.ID, false, 0, nil)
	e.fx.CreateRegistration(ctx, "a@example.com", ev, models.RegistrationRegistered)
	e.fx.CreateRegistration(ctx, "b@example.com", ev, models.RegistrationCancelled)

	rec := e.do(testutil.NewRequest(http.MethodGet, "/"+ev.ID.Hex()))
	rec.AssertStatus(t, http.StatusOK)

	var body struct {
		ID                string `json:"id"`
		RegistrationCount int64  `json:"registrationCount"`
	}
	rec.DecodeJSON(t, &body)
	if body.ID != ev.ID.Hex() {
		t.Errorf("id: got %q", body.ID)
	}
	if body.RegistrationCount != 1 {
		t.Errorf("registrationCount: got %d, want 1", body.RegistrationCount)
	}

	rec = e.do(testutil.NewRequest(http.MethodGet, "/64b7f0c2a1b2c3d4e5f60718"))
	rec.AssertStatus(t, http.StatusNotFound)
}
