package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Arfushs/AztekAuditSystemFrontend/internal/bulkops"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/config"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/handlers"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/middleware"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/session"
	"github.com/Arfushs/AztekAuditSystemFrontend/pkg/logger"
	"github.com/Arfushs/AztekAuditSystemFrontend/web"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	logger.Init()

	cfg := config.Load()

	sessions := session.NewManager(cfg.Session.Secret, cfg.Session.TTL)
	guard := middleware.NewGuard(sessions)
	bulk := bulkops.New()

	base := &handlers.Base{
		BackendURL: cfg.Backend.URL,
		Sessions:   sessions,
	}
	authHandler := handlers.NewAuthHandler(base)
	adminHandler := handlers.NewAdminHandler(base)
	inspectorHandler := handlers.NewInspectorHandler(base, bulk)
	reporterHandler := handlers.NewReporterHandler(base, bulk)
	sharedHandler := handlers.NewSharedHandler(base)

	app := fiber.New(fiber.Config{
		Views:     web.Engine(),
		BodyLimit: 100 * 1024 * 1024,
	})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.RequestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/login", fiber.StatusFound)
	})
	app.Get("/login", guard.RedirectIfAuthenticated, authHandler.ShowLogin)
	app.Post("/login", guard.RedirectIfAuthenticated, authHandler.Login)
	app.Post("/logout", authHandler.Logout)

	admin := app.Group("/admin", guard.RequireRole(session.RoleAdmin))
	admin.Get("/", adminHandler.Dashboard)
	admin.Get("/users", adminHandler.Users)
	admin.Post("/users", adminHandler.CreateUser)
	admin.Post("/users/:id/delete", adminHandler.DeleteUser)
	admin.Get("/reports", adminHandler.Reports)
	admin.Get("/assign", adminHandler.AssignBoard)
	admin.Post("/assign", adminHandler.Assign)
	admin.Post("/unassign", adminHandler.Unassign)

	inspector := app.Group("/inspector", guard.RequireRole(session.RoleInspector))
	inspector.Get("/", inspectorHandler.Reports)
	inspector.Post("/reports", inspectorHandler.CreateReport)
	inspector.Get("/reports/:id", inspectorHandler.ReportDetail)
	inspector.Post("/reports/:id/upload", inspectorHandler.Upload)
	inspector.Post("/reports/:id/delete-files", inspectorHandler.DeleteFiles)

	reporter := app.Group("/reporter", guard.RequireRole(session.RoleReporter))
	reporter.Get("/", reporterHandler.Reports)
	reporter.Get("/reports/:id", reporterHandler.ReportDetail)
	reporter.Post("/reports/:id/upload", reporterHandler.Upload)
	reporter.Post("/reports/:id/delete-files", reporterHandler.DeleteFiles)

	app.Get("/reports/:id/download", guard.RequireAuth, sharedHandler.Download)

	listenAddr := fmt.Sprintf(":%s", cfg.Server.Port)

	logger.Info(nil, "server_starting", map[string]interface{}{
		"port":    cfg.Server.Port,
		"backend": cfg.Backend.URL,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(listenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("shutting down server due to signal: %s", sig)
		shutdownDone := make(chan struct{})
		go func() {
			_ = app.Shutdown()
			close(shutdownDone)
		}()
		select {
		case <-shutdownDone:
		case <-time.After(10 * time.Second):
			log.Print("forced shutdown timeout reached")
		}
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}
