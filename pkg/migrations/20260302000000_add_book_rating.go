package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`ALTER TABLE book ADD COLUMN rating INTEGER CHECK (rating BETWEEN 1 AND 10)`)
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`ALTER TABLE book DROP COLUMN rating`)
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}
