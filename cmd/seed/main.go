package main

import (
	"fmt"
	"os"

	"github.com/bookshelf-app/bookshelf/pkg/config"
	"github.com/bookshelf-app/bookshelf/pkg/database"
	"github.com/bookshelf-app/bookshelf/pkg/migrations"
	"github.com/bookshelf-app/bookshelf/pkg/seed"
	"github.com/robinjoseph08/golib/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	log := logger.New()

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "load the sample catalog",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "preserve",
				Usage: "keep existing authors and books instead of clearing them first",
			},
			&cli.BoolFlag{
				Name:  "with-ratings",
				Usage: "also rate the books that have a sample rating",
			},
		},
		Action: func(c *cli.Context) error {
			ctx := log.WithContext(c.Context)

			if _, err := migrations.BringUpToDate(ctx, db); err != nil {
				return err
			}

			if !c.Bool("preserve") {
				if err := seed.Clear(ctx, db); err != nil {
					return err
				}
				fmt.Printf("Cleared existing catalog\n")
			}

			result, err := seed.Run(ctx, db, seed.Catalog, seed.Options{WithRatings: c.Bool("with-ratings")})
			if err != nil {
				return err
			}

			fmt.Printf("Added %d authors and %d books", result.Authors, result.Books)
			if result.Rated > 0 {
				fmt.Printf(", rated %d", result.Rated)
			}
			if result.Skipped > 0 {
				fmt.Printf(", skipped %d duplicates", result.Skipped)
			}
			fmt.Printf("\n")
			return nil
		},
	}
	runErr := app.Run(os.Args)
	if err := db.Close(); err != nil {
		log.Err(err).Error("database close error")
	}
	if runErr != nil {
		log.Err(runErr).Fatal("app run error")
	}
}
