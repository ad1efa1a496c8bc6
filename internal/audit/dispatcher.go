package audit

import (
	"go.uber.org/zap"

	"github.com/CastingWorksHQ/casting-api/internal/metrics"
)

const (
	ActionAccountDelete             = "ACCOUNT_DELETE"
	ActionRoleChange                = "USER_ROLE_CHANGE"
	ActionSubscriptionGrantLifetime = "SUBSCRIPTION_GRANT_LIFETIME"
	ActionSubscriptionCancel        = "SUBSCRIPTION_CANCEL"
	ActionSubscriptionReactivate    = "SUBSCRIPTION_REACTIVATE"
	ActionApplicationDecision       = "APPLICATION_DECISION"
	ActionDiscountCreate            = "DISCOUNT_CREATE"
	ActionDiscountUpdate            = "DISCOUNT_UPDATE"
	ActionDiscountDelete            = "DISCOUNT_DELETE"
	ActionActorConvert              = "ACTOR_CONVERT"
)

type Event struct {
	Action    string
	AdminID   *uint
	TargetID  *uint
	Details   any
	IPAddress string
	UserAgent string
}

// Dispatcher writes audit entries best-effort off the request path. A
// full queue drops the event; a failed write is logged and swallowed.
// Audit can never fail the primary operation.
type Dispatcher struct {
	logger *Logger
	log    *zap.Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.Action,
			ev.AdminID,
			ev.TargetID,
			ev.Details,
			ev.IPAddress,
			ev.UserAgent,
		); err != nil {
			d.log.Warn("audit write failed",
				zap.String("action", ev.Action),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		metrics.AuditDroppedTotal.Inc()
		d.log.Warn("audit queue full, dropping event",
			zap.String("action", ev.Action),
		)
	}
}
