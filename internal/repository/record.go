package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/simforge/tictactoe-sim/internal/entity"
)

const (
	recordsKey = "records:completed"

	// older records beyond this fall off the list
	retentionLimit = 500
)

type RecordRepository interface {
	SaveBatch(ctx context.Context, records []entity.GameRecord) error
	ListRecent(ctx context.Context, limit int) ([]entity.GameRecord, error)
}

type dbRecords struct {
	client *redis.Client
}

func NewRecordRepository(client *redis.Client) RecordRepository {
	return &dbRecords{
		client: client,
	}
}

// SaveBatch - pushes the batch onto the head of the list in arrival order, so
// LRANGE reads newest first, and trims the tail past the retention limit.
func (that *dbRecords) SaveBatch(ctx context.Context, records []entity.GameRecord) error {
	pipe := that.client.TxPipeline()

	for _, record := range records {
		recordJSON, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("could not marshal record %s: %w", record.ID, err)
		}

		pipe.LPush(ctx, recordsKey, recordJSON)
	}

	pipe.LTrim(ctx, recordsKey, 0, retentionLimit-1)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save batch: %w", err)
	}

	return nil
}

func (that *dbRecords) ListRecent(ctx context.Context, limit int) ([]entity.GameRecord, error) {
	rawRecords, err := that.client.LRange(ctx, recordsKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	records := make([]entity.GameRecord, 0, len(rawRecords))
	for _, raw := range rawRecords {
		var record entity.GameRecord
		if err = json.Unmarshal([]byte(raw), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record: %w", err)
		}

		records = append(records, record)
	}

	return records, nil
}
