package notify

import (
	"context"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/pkg/metrics"
)

var (
	_ ports.Notifier = (*LogNotifier)(nil)
	_ ports.Notifier = Fanout(nil)
)

// LogNotifier — уведомления в лог (всегда включён).
type LogNotifier struct {
	log ports.Logger
}

func NewLogNotifier(log ports.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, note domain.Notification) {
	n.log.Warnf(ctx, "notification severity=%s op=%s product=%d message=%q",
		note.Severity, note.Op, note.ProductID, note.Message)
	metrics.NotificationsPublished.WithLabelValues("log", "ok").Inc()
}

// Fanout — рассылка уведомления всем получателям по очереди. nil-получатели пропускаются.
type Fanout []ports.Notifier

func (f Fanout) Notify(ctx context.Context, note domain.Notification) {
	for _, n := range f {
		if n != nil {
			n.Notify(ctx, note)
		}
	}
}
