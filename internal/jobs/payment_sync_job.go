package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"nfc-store/internal/services"
)

const pendingOlderThan = 10 * time.Minute

// PaymentSyncJob периодически сверяет подвисшие платежи с ЮKassa.
// Вебхук может потеряться, поэтому каждые 5 минут опрашиваем статусы
// заказов, которые давно висят в pending.
type PaymentSyncJob struct {
	paymentService *services.PaymentService
	cron           *cron.Cron
	logger         *zap.Logger
}

func NewPaymentSyncJob(paymentService *services.PaymentService, logger *zap.Logger) *PaymentSyncJob {
	return &PaymentSyncJob{
		paymentService: paymentService,
		cron:           cron.New(),
		logger:         logger.Named("payment_sync_job"),
	}
}

func (j *PaymentSyncJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if err := j.paymentService.SyncPendingPayments(ctx, pendingOlderThan); err != nil {
			j.logger.Error("Сверка платежей завершилась с ошибкой", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Фоновая сверка платежей запущена", zap.String("schedule", "*/5 * * * *"))
	return nil
}

func (j *PaymentSyncJob) Stop() {
	j.cron.Stop()
	j.logger.Info("Фоновая сверка платежей остановлена")
}
