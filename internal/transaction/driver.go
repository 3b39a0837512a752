package transaction

import (
	"errors"
	"fmt"

	"github.com/AgentTarik/receipt-feed/telemetry"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ReceiptRepo keeps accepted records.
type ReceiptRepo interface {
	Save(Record) error
}

// Driver pulls raw records from a Feed and keeps the complete ones.
type Driver struct {
	log  *zap.Logger
	repo ReceiptRepo
	v    *validator.Validate
}

// NewDriver wires a driver. repo may be nil; v defaults to NewValidator().
func NewDriver(log *zap.Logger, repo ReceiptRepo, v *validator.Validate) *Driver {
	if v == nil {
		v = NewValidator()
	}
	return &Driver{
		log:  log,
		repo: repo,
		v:    v,
	}
}

// TakeComplete builds records from feed until n complete ones are collected
// or the feed runs out. Incomplete records are skipped and do not count.
func (d *Driver) TakeComplete(feed *Feed, n int) ([]Record, error) {
	out := make([]Record, 0, max(n, 0))
	for len(out) < n {
		raw, ok := feed.Next()
		if !ok {
			break
		}
		rec := NewRecord(raw)
		if err := d.v.Struct(rec); err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				return out, fmt.Errorf("validate record: %w", err)
			}
			missing := MissingFields(err)
			for _, f := range missing {
				telemetry.IncReceiptsRejected(f)
			}
			d.log.Debug("record skipped", zap.Any("id", raw["id"]), zap.Strings("invalid", missing))
			continue
		}
		if d.repo != nil {
			if err := d.repo.Save(rec); err != nil {
				return out, fmt.Errorf("save receipt %d: %w", *rec.ID, err)
			}
		}
		telemetry.IncReceiptsAccepted()
		out = append(out, rec)
	}
	d.log.Info("receipts collected", zap.Int("accepted", len(out)), zap.Int("remaining", feed.Remaining()))
	return out, nil
}
