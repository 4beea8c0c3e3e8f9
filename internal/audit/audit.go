package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"supply-service/internal/auth"
)

// ActorType represents the type of entity performing an action
type ActorType string

const (
	ActorTypeUser      ActorType = "user"
	ActorTypeAnonymous ActorType = "anonymous"
)

// Status represents the outcome of an authorization check
type Status string

const (
	StatusAllowed Status = "allowed"
	StatusDenied  Status = "denied"
)

const eventAuthorization = "authorization"

// Event represents an audit event
type Event struct {
	ID        uuid.UUID
	EventType string
	ActorType ActorType
	ActorID   string
	Username  string
	Role      string
	Module    string
	Action    string
	Route     string
	Status    Status
	Reason    string
	IPAddress string
	UserAgent string
	RequestID string
	CreatedAt time.Time
}

// Logger writes audit events as structured log lines
type Logger struct {
	log *zap.Logger
}

func NewLogger(log *zap.Logger) *Logger {
	return &Logger{log: log.Named("audit")}
}

// Log records an audit event. Denials are logged at warn level.
func (l *Logger) Log(event *Event) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	fields := []zap.Field{
		zap.String("event_id", event.ID.String()),
		zap.String("event_type", event.EventType),
		zap.String("actor_type", string(event.ActorType)),
		zap.String("status", string(event.Status)),
		zap.Time("created_at", event.CreatedAt),
	}
	if event.ActorID != "" {
		fields = append(fields, zap.String("actor_id", event.ActorID))
	}
	if event.Username != "" {
		fields = append(fields, zap.String("username", event.Username), zap.String("role", event.Role))
	}
	if event.Module != "" {
		fields = append(fields, zap.String("module", event.Module), zap.String("action", event.Action))
	}
	if event.Route != "" {
		fields = append(fields, zap.String("route", event.Route))
	}
	if event.Reason != "" {
		fields = append(fields, zap.String("reason", event.Reason))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if event.IPAddress != "" {
		fields = append(fields, zap.String("ip_address", event.IPAddress))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}

	if event.Status == StatusDenied {
		l.log.Warn("access denied", fields...)
		return
	}
	l.log.Info("access granted", fields...)
}

// LogDecision records an authorization outcome for the current request.
// A nil reason means the check was allowed.
func (l *Logger) LogDecision(c echo.Context, module, action, route string, reason error) {
	event := &Event{
		EventType: eventAuthorization,
		ActorType: ActorTypeAnonymous,
		Module:    module,
		Action:    action,
		Route:     route,
		Status:    StatusAllowed,
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
		RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
	}

	if reason != nil {
		event.Status = StatusDenied
		event.Reason = reason.Error()
	}

	if user := auth.GetUser(c); user != nil {
		event.ActorType = ActorTypeUser
		event.ActorID = user.ID
		event.Username = user.Username
		event.Role = user.Role
	}

	l.Log(event)
}
