package daemon

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/campushub/campushub/internal/db/models"
)

// seedIfEmpty imports the seed directory when the user table is empty.
func (d *Daemon) seedIfEmpty(ctx context.Context) error {
	var count int64
	if err := d.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Debug().Int64("users", count).Msg("database not empty, skipping seed")
		return nil
	}

	summary, err := d.Seeder.Run(ctx)
	if err != nil {
		return err
	}

	log.Info().Interface("imported", summary.Imported).Interface("skipped", summary.Skipped).
		Msg("seeded empty database")

	return nil
}
