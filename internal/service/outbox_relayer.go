package service

import (
	"context"
	"log"
	"time"

	"whome/internal/model"
	"whome/internal/pkg"
	"whome/internal/repository/mysql"

	"gorm.io/gorm"
)

type Sender func(ctx context.Context, ob *model.EventOutbox) error

// OutboxRelayer 定时扫描 event_outbox，把 pending 事件交给 sender 投递
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(db *gorm.DB, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      &mysql.OutboxRepository{DB: db},
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		log.Printf("outbox query err: %v", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err := r.sender(ctx, &ob); err != nil {
			_ = r.repo.RetryUpdate(ctx, ob.ID)
			continue
		}
		_ = r.repo.SuccessUpdate(ctx, ob.ID)
	}
}

// LogSender 默认 sender：没配 Kafka 时只打日志
func LogSender(ctx context.Context, ob *model.EventOutbox) error {
	log.Printf("OUTBOX SEND type=%s actor=%d subject=%d payload=%s", ob.EventType, ob.ActorID, ob.SubjectID, ob.Payload)
	return nil
}

// KafkaSender 事件按 subject 分区写入 Kafka
func KafkaSender(producer *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.EventOutbox) error {
		return producer.Send(ctx, pkg.MakeKeyFromID(ob.SubjectID), []byte(ob.Payload))
	}
}
