// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	membershipstore "github.com/dalemusser/clubsphere/internal/app/store/memberships"
	registrationstore "github.com/dalemusser/clubsphere/internal/app/store/registrations"
	"github.com/dalemusser/clubsphere/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.

The partial unique indexes on memberships and event_registrations are what
make join and register safe under concurrency; startup must not continue
without them.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureClubs(ctx, db); err != nil {
		problems = append(problems, "clubs: "+err.Error())
	}
	if err := ensureEvents(ctx, db); err != nil {
		problems = append(problems, "events: "+err.Error())
	}
	if err := ensureMemberships(ctx, db); err != nil {
		problems = append(problems, "memberships: "+err.Error())
	}
	if err := ensureRegistrations(ctx, db); err != nil {
		problems = append(problems, "event_registrations: "+err.Error())
	}
	if err := ensurePayments(ctx, db); err != nil {
		problems = append(problems, "payments: "+err.Error())
	}
	if err := ensureAuditEvents(ctx, db); err != nil {
		problems = append(problems, "audit_events: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name    string `bson:"name"`
	Key     bson.D `bson:"key"`
	Unique  *bool  `bson:"unique,omitempty"`
	Partial bson.D `bson:"partialFilterExpression,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func partialSig(expr interface{}) string {
	switch v := expr.(type) {
	case nil:
		return ""
	case bson.D:
		if len(v) == 0 {
			return ""
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func boolVal(b *bool) bool {
	return b != nil && *b
}

// Best-effort duplicate-detector (works cross-vendors)
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, want []mongo.IndexModel) error {
	var errs []string

	existing := map[string]existingIndex{} // key sig -> index
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return fmt.Errorf("list indexes: %w", err)
	}
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		existing[keySig(idx.Key)] = idx
	}
	cur.Close(ctx)

	for _, m := range want {
		var desiredName string
		var desiredUnique *bool
		var desiredPartial interface{}
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			desiredUnique = m.Options.Unique
			desiredPartial = m.Options.PartialFilterExpression
		}
		desiredSig := keySig(m.Keys.(bson.D))
		start := time.Now()

		if ex, ok := existing[desiredSig]; ok {
			sameOpts := boolVal(desiredUnique) == boolVal(ex.Unique) &&
				partialSig(desiredPartial) == partialSig(ex.Partial)
			if sameOpts && (desiredName == "" || ex.Name == desiredName) {
				zap.L().Debug("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", desiredSig))
				continue
			}

			// Options or name differ: drop and recreate.
			zap.L().Info("replacing index",
				zap.String("collection", coll.Name()),
				zap.String("from", ex.Name),
				zap.String("to", desiredName),
				zap.String("keys", desiredSig))
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isDuplicateKeyErr(err) && boolVal(desiredUnique) {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), desiredName))
			} else {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			}
			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", desiredSig),
				zap.Error(err))
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", boolVal(desiredUnique)),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("users"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_users_role_created"),
		},
	})
}

func ensureClubs(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("clubs"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("idx_clubs_status_name"),
		},
		{
			Keys:    bson.D{{Key: "manager_email", Value: 1}},
			Options: options.Index().SetName("idx_clubs_manager"),
		},
	})
}

func ensureEvents(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("events"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "club_id", Value: 1}, {Key: "event_date", Value: 1}},
			Options: options.Index().SetName("idx_events_club_date"),
		},
	})
}

func ensureMemberships(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("memberships"), []mongo.IndexModel{
		// At most one active membership per (user, club). Cancelled and
		// expired rows fall outside the filter and never block a rejoin.
		{
			Keys: bson.D{{Key: "user_email", Value: 1}, {Key: "club_id", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetName(membershipstore.IndexActiveUserClub).
				SetPartialFilterExpression(bson.D{{Key: "status", Value: models.MembershipActive}}),
		},
		// A completed payment activates at most one membership.
		{
			Keys: bson.D{{Key: "payment_ref", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetName(membershipstore.IndexPaymentRef).
				SetPartialFilterExpression(bson.D{{Key: "payment_ref", Value: bson.D{{Key: "$type", Value: "string"}}}}),
		},
		{
			Keys:    bson.D{{Key: "club_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_memberships_club_status"),
		},
		{
			Keys:    bson.D{{Key: "user_email", Value: 1}, {Key: "joined_at", Value: -1}},
			Options: options.Index().SetName("idx_memberships_user_joined"),
		},
	})
}

func ensureRegistrations(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("event_registrations"), []mongo.IndexModel{
		// At most one registered row per (user, event).
		{
			Keys: bson.D{{Key: "user_email", Value: 1}, {Key: "event_id", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetName(registrationstore.IndexRegisteredUserEvent).
				SetPartialFilterExpression(bson.D{{Key: "status", Value: models.RegistrationRegistered}}),
		},
		{
			Keys: bson.D{{Key: "payment_ref", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetName(registrationstore.IndexPaymentRef).
				SetPartialFilterExpression(bson.D{{Key: "payment_ref", Value: bson.D{{Key: "$type", Value: "string"}}}}),
		},
		// Capacity counts
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_registrations_event_status"),
		},
		{
			Keys:    bson.D{{Key: "user_email", Value: 1}, {Key: "registered_at", Value: -1}},
			Options: options.Index().SetName("idx_registrations_user_registered"),
		},
	})
}

func ensurePayments(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("payments"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "processor_ref", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_payments_processor_ref"),
		},
		{
			Keys: bson.D{
				{Key: "user_email", Value: 1},
				{Key: "type", Value: 1},
				{Key: "target_id", Value: 1},
				{Key: "status", Value: 1},
			},
			Options: options.Index().SetName("idx_payments_user_target_status"),
		},
		{
			Keys:    bson.D{{Key: "user_email", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_payments_user_created"),
		},
		// Expiry sweep
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_payments_status_created"),
		},
	})
}

func ensureAuditEvents(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("audit_events"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_audit_timestamp"),
		},
		{
			Keys:    bson.D{{Key: "actor_email", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_audit_actor_timestamp"),
		},
		{
			Keys: bson.D{
				{Key: "category", Value: 1},
				{Key: "event_type", Value: 1},
				{Key: "timestamp", Value: -1},
			},
			Options: options.Index().SetName("idx_audit_category_type_timestamp"),
		},
	})
}
