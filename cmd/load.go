package main

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/sells-group/state-scatter/internal/config"
	"github.com/sells-group/state-scatter/internal/dataset"
	"github.com/sells-group/state-scatter/internal/model"
)

// loadRecords reads the dataset named by location, or the configured path
// when location is empty. A load failure is logged and returned; callers
// draw nothing.
func loadRecords(ctx context.Context, c config.DatasetConfig, location string) ([]model.StateRecord, error) {
	opts, err := c.LoadOptions(location)
	if err != nil {
		return nil, err
	}

	records, err := dataset.Load(ctx, opts)
	if err != nil {
		var le *dataset.LoadError
		if errors.As(err, &le) {
			zap.L().Error("dataset load failed",
				zap.String("source", le.Source),
				zap.Error(le.Err),
			)
		}
		return nil, err
	}
	return records, nil
}
