// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/clubsphere/internal/app/store/audit"
	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"github.com/dalemusser/clubsphere/internal/app/system/ratelimit"
	"github.com/dalemusser/clubsphere/internal/domain/models"
	"go.uber.org/zap"
)

// Destinations accepted for each category setting.
const (
	ModeAll = "all" // MongoDB + zap
	ModeDB  = "db"  // MongoDB only
	ModeLog = "log" // zap only
	ModeOff = "off"
)

// ValidMode reports whether s is a recognised destination setting.
func ValidMode(s string) bool {
	switch s {
	case ModeAll, ModeDB, ModeLog, ModeOff:
		return true
	}
	return false
}

// Config holds audit logging configuration, one destination per category.
type Config struct {
	// Lifecycle covers membership and registration events.
	Lifecycle string
	Payment   string
	Admin     string
}

// Uniform returns a Config sending every category to mode.
func Uniform(mode string) Config {
	return Config{Lifecycle: mode, Payment: mode, Admin: mode}
}

// Logger provides convenience methods for logging audit events.
// It logs to both MongoDB (via audit.Store) and structured logs (via zap).
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.ActorEmail != "" {
		fields = append(fields, zap.String("actor", event.ActorEmail))
	}
	if event.SubjectEmail != "" {
		fields = append(fields, zap.String("subject", event.SubjectEmail))
	}
	if event.TargetID != "" {
		fields = append(fields, zap.String("target_id", event.TargetID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryMembership, audit.CategoryRegistration:
		setting = l.config.Lifecycle
	case audit.CategoryPayment:
		setting = l.config.Payment
	case audit.CategoryAdmin:
		setting = l.config.Admin
	default:
		setting = ModeAll
	}

	if setting == ModeOff {
		return
	}
	if setting == ModeAll || setting == ModeLog {
		l.logToZap(event)
	}
	if setting == ModeAll || setting == ModeDB {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// requestEvent fills in the request-derived fields.
func requestEvent(r *http.Request, e audit.Event) audit.Event {
	if r != nil {
		e.IP = ratelimit.ClientIP(r)
		e.UserAgent = r.UserAgent()
	}
	return e
}

// reason returns the failure kind of err for the audit trail. Internal
// errors are recorded without their cause.
func reason(err error) string {
	if kind, ok := apperr.KindOf(err); ok {
		return string(kind)
	}
	return "internal"
}

// --- Membership and registration events ---

// MembershipJoined logs an activated membership.
func (l *Logger) MembershipJoined(ctx context.Context, r *http.Request, m *models.Membership) {
	details := map[string]string{"club_id": m.ClubID.Hex()}
	if m.PaymentRef != nil {
		details["payment_ref"] = *m.PaymentRef
	}
	l.Log(ctx, requestEvent(r, audit.Event{
		Category:   audit.CategoryMembership,
		EventType:  audit.EventMembershipJoined,
		ActorEmail: m.UserEmail,
		TargetID:   m.ID.Hex(),
		Success:    true,
		Details:    details,
	}))
}

// MembershipJoinRejected logs a refused join.
func (l *Logger) MembershipJoinRejected(ctx context.Context, r *http.Request, userEmail, clubID string, err error) {
	l.Log(ctx, requestEvent(r, audit.Event{
		Category:      audit.CategoryMembership,
		EventType:     audit.EventMembershipJoinRejected,
		ActorEmail:    userEmail,
		TargetID:      clubID,
		Success:       false,
		FailureReason: reason(err),
	}))
}

// MembershipCancelled logs a cancelled membership.
func (l *Logger) MembershipCancelled(ctx context.Context, r *http.Request, m *models.Membership) {
	l.Log(ctx, requestEvent(r, audit.Event{
		Category:   audit.CategoryMembership,
		EventType:  audit.EventMembershipCancelled,
		ActorEmail: m.UserEmail,
		TargetID:   m.ID.Hex(),
		Success:    true,
		Details:    map[string]string{"club_id": m.ClubID.Hex()},
	}))
}

// RegistrationCreated logs a new event registration.
func (l *Logger) RegistrationCreated(ctx context.Context, r *http.Request, reg *models.EventRegistration) {
	details := map[string]string{
		"event_id": reg.EventID.Hex(),
		"club_id":  reg.ClubID.Hex(),
	}
	if reg.PaymentRef != nil {
		details["payment_ref"] = *reg.PaymentRef
	}
	l.Log(ctx, requestEvent(r, audit.Event{
		Category:   audit.CategoryRegistration,
		EventType:  audit.EventRegistrationCreated,
		ActorEmail: reg.UserEmail,
		TargetID:   reg.ID.Hex(),
		Success:    true,
		Details:    details,
	}))
}

// RegistrationRejected logs a refused registration.
func (l *Logger) RegistrationRejected(ctx context.Context, r *http.Request, userEmail, eventID string, err error) {
	l.Log(ctx, requestEvent(r, audit.Event{
		Category:      audit.CategoryRegistration,
		EventType:     audit.EventRegistrationRejected,
		ActorEmail:    userEmail,
		TargetID:      eventID,
		Success:       false,
		FailureReason: reason(err),
	}))
}

// RegistrationCancelled logs a cancelled registration.
func (l *Logger) RegistrationCancelled(ctx context.Context, r *http.Request, reg *models.EventRegistration) {
	l.Log(ctx, requestEvent(r, audit.Event{
		Category:   audit.CategoryRegistration,
		EventType:  audit.EventRegistrationCancelled,
		ActorEmail: reg.UserEmail,
		TargetID:   reg.ID.Hex(),
		Success:    true,
		Details:    map[string]string{"event_id": reg.EventID.Hex()},
	}))
}

// --- Payment events ---

func paymentDetails(p *models.Payment) map[string]string {
	return map[string]string{
		"type":      p.Type,
		"target_id": p.TargetID.Hex(),
		"amount":    strconv.FormatInt(p.Amount, 10),
		"currency":  p.Currency,
	}
}

// PaymentIntentCreated logs a new pending payment.
func (l *Logger) PaymentIntentCreated(ctx context.Context, r *http.Request, p *models.Payment) {
	l.Log(ctx, requestEvent(r, audit.Event{
		Category:   audit.CategoryPayment,
		EventType:  audit.EventPaymentIntentCreated,
		ActorEmail: p.UserEmail,
		TargetID:   p.ProcessorRef,
		Success:    true,
		Details:    paymentDetails(p),
	}))
}

// PaymentSettled logs a confirmation or failure applied through channel
// ("poll" or "webhook").
func (l *Logger) PaymentSettled(ctx context.Context, r *http.Request, p *models.Payment, channel string) {
	eventType := audit.EventPaymentConfirmed
	success := true
	if p.Status == models.PaymentFailed {
		eventType = audit.EventPaymentFailed
		success = false
	}
	details := paymentDetails(p)
	details["channel"] = channel
	l.Log(ctx, requestEvent(r, audit.Event{
		Category:   audit.CategoryPayment,
		EventType:  eventType,
		ActorEmail: p.UserEmail,
		TargetID:   p.ProcessorRef,
		Success:    success,
		Details:    details,
	}))
}

// PaymentsExpired logs a sweep that failed stale pending payments.
func (l *Logger) PaymentsExpired(ctx context.Context, count int64) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryPayment,
		EventType: audit.EventPaymentExpired,
		Success:   true,
		Details:   map[string]string{"count": strconv.FormatInt(count, 10)},
	})
}

// --- Admin events ---

// RoleChanged logs a role change made by an admin.
func (l *Logger) RoleChanged(ctx context.Context, r *http.Request, actorEmail, targetEmail, oldRole, newRole string) {
	l.Log(ctx, requestEvent(r, audit.Event{
		Category:     audit.CategoryAdmin,
		EventType:    audit.EventRoleChanged,
		ActorEmail:   actorEmail,
		SubjectEmail: targetEmail,
		Success:      true,
		Details: map[string]string{
			"old_role": oldRole,
			"new_role": newRole,
		},
	}))
}

// ClubStatusChanged logs an approval decision.
func (l *Logger) ClubStatusChanged(ctx context.Context, r *http.Request, actorEmail string, club *models.Club, oldStatus string) {
	l.Log(ctx, requestEvent(r, audit.Event{
		Category:   audit.CategoryAdmin,
		EventType:  audit.EventClubStatusChanged,
		ActorEmail: actorEmail,
		TargetID:   club.ID.Hex(),
		Success:    true,
		Details: map[string]string{
			"old_status": oldStatus,
			"new_status": club.Status,
		},
	}))
}

// BootstrapAdmin logs the startup promotion of the configured admin.
func (l *Logger) BootstrapAdmin(ctx context.Context, email string, created bool) {
	l.Log(ctx, audit.Event{
		Category:     audit.CategoryAdmin,
		EventType:    audit.EventBootstrapAdmin,
		SubjectEmail: email,
		Success:      true,
		Details:      map[string]string{"created": strconv.FormatBool(created)},
	})
}
