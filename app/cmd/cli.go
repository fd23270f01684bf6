package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gsk-limited/storefront/app/configs"
	"github.com/gsk-limited/storefront/app/db/seeders"
	"github.com/gsk-limited/storefront/app/models"
	"github.com/gsk-limited/storefront/app/models/migrations"
	"github.com/gsk-limited/storefront/app/repositories"
	"github.com/gsk-limited/storefront/app/routes"
	"github.com/gsk-limited/storefront/app/services"
	"github.com/gsk-limited/storefront/app/storage"
	"github.com/urfave/cli/v3"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

// NewCommand builds the storefront CLI. Without a subcommand it serves HTTP.
func NewCommand(env configs.ENV) *cli.Command {
	return &cli.Command{
		Name:  "storefront",
		Usage: "GSK Limited catalog and storefront",
		Action: func(ctx context.Context, c *cli.Command) error {
			return serve(ctx, env)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, c *cli.Command) error {
					return serve(ctx, env)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withDB(ctx, env, func(db *gorm.DB) error {
						if err := migrations.AutoMigrate(db); err != nil {
							return err
						}
						log.Println("✅ Migration complete")
						return nil
					})
				},
			},
			{
				Name:  "seed",
				Usage: "Fill the catalog with demo categories, products and partners",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withDB(ctx, env, seeders.DBSeed)
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate new session authentication, encryption and CSRF keys for .env",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Value: ".env.keys", Usage: "file the keys are written to"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := configs.GenerateSessionKeys(os.Stdout, c.String("out")); err != nil {
						return err
					}
					log.Println("✅ Key generation complete. Please copy the keys to your .env file.")
					return nil
				},
			},
			{
				Name:  "create-user",
				Usage: "Create a user, typically the first ADMIN",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.StringFlag{Name: "role", Value: string(models.RoleAdmin), Usage: "ADMIN or VIEW_ONLY"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return withDB(ctx, env, func(db *gorm.DB) error {
						auth := services.NewAuthService(repositories.NewUserRepository(db), services.BcryptHasher{})
						user, err := auth.CreateUser(ctx, services.SignUpInput{
							Name:     c.String("name"),
							Username: c.String("username"),
							Email:    c.String("email"),
							Password: c.String("password"),
						}, models.Role(c.String("role")))
						if err != nil {
							var verr *services.ValidationError
							if errors.As(err, &verr) {
								return fmt.Errorf("invalid user: %s", verr.Error())
							}
							return err
						}
						log.Printf("✅ Created %s user %s (%s)", user.Role, user.Username, user.ID)
						return nil
					})
				},
			},
			{
				Name:  "purge-orphans",
				Usage: "Retry deleting stored images whose owning record is gone",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withDB(ctx, env, func(db *gorm.DB) error {
						store, err := configs.OpenObjectStore(ctx, env)
						if err != nil {
							return err
						}
						svc := services.NewOrphanService(repositories.NewOrphanRepository(db), storage.NewImageUploader(store))
						report, err := svc.Purge(ctx)
						if err != nil {
							return err
						}
						log.Printf("✅ Purged %d orphaned objects, %d still failing", report.Deleted, report.Failed)
						return nil
					})
				},
			},
		},
	}
}

func withDB(ctx context.Context, env configs.ENV, fn func(db *gorm.DB) error) error {
	db, err := configs.OpenConnection(ctx, env)
	if err != nil {
		return err
	}
	defer func() {
		if err := configs.CloseConnection(db); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()
	return fn(db)
}

// serve runs until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, env configs.ENV) error {
	keys, err := configs.LoadSessionKeys(env)
	if err != nil {
		return err
	}

	return withDB(ctx, env, func(db *gorm.DB) error {
		store, err := configs.OpenObjectStore(ctx, env)
		if err != nil {
			return err
		}

		server := &http.Server{
			Addr: env.Port,
			Handler: routes.NewRouter(routes.Dependencies{
				Env:          env,
				DB:           db,
				Keys:         keys,
				Store:        store,
				TemplatesDir: "templates",
			}),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Printf("🚀 Server starting on %s", server.Addr)
			errCh <- server.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server failed: %w", err)
		case <-ctx.Done():
		}

		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		log.Println("✅ Server stopped")
		return nil
	})
}
