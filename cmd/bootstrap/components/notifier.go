package components

import (
	"log/slog"

	"drive-booking/internal/infra/mailer"
	"drive-booking/internal/notify"
	"drive-booking/internal/pkg/config"
	"drive-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var NotifierModule = fx.Module("notifier",
	fx.Provide(
		NewMailer,
		NewDeduper,
		fx.Annotate(
			NewDispatcher,
			fx.As(new(commands.Dispatcher)),
		),
	),
)

// NewMailer selects the outbound email channel from MAIL_DRIVER. A nil
// mailer disables the channel without disabling dispatch: the WhatsApp
// link side is pure computation and always available.
func NewMailer(cfg config.Config, logger *slog.Logger) (notify.Mailer, error) {
	switch cfg.Mail.Driver {
	case "relay":
		m, err := mailer.NewRelayMailer(cfg.Mail)
		if err != nil {
			return nil, err
		}
		return m, nil
	case "smtp":
		m, err := mailer.NewSMTPMailer(cfg.Mail)
		if err != nil {
			return nil, err
		}
		return m, nil
	case "disabled":
		logger.Info("email channel disabled by configuration")
		return nil, nil
	default:
		logger.Warn("unknown mail driver, email channel disabled", "driver", cfg.Mail.Driver)
		return nil, nil
	}
}

func NewDeduper(_ config.Config) (notify.Deduper, error) {
	return notify.NewLRUDeduper(notify.DefaultDedupSize)
}

func NewDispatcher(m notify.Mailer, dedup notify.Deduper, cfg config.Config, logger *slog.Logger) *notify.Dispatcher {
	return notify.NewDispatcher(m, dedup, cfg.Owner.Phone, logger)
}
