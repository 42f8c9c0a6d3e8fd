package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tkrendel/attest/internal/application/handlers"
	"github.com/tkrendel/attest/internal/domain/services"
	"github.com/tkrendel/attest/internal/infrastructure/config"
	"github.com/tkrendel/attest/internal/infrastructure/store/sqlite"
)

// Deps holds high-level dependencies for commands. Only handlers are exposed
// - services and the repository are internal.
type Deps struct {
	Config           *config.Config
	DirectoryHandler *handlers.DirectoryHandler
	AuditHandler     *handlers.AuditHandler
}

// withDeps loads config and builds dependencies, then calls the provided
// function. It handles cleanup automatically.
func withDeps(fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: cfg.SQLitePath(cwd)})
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer repo.Close()

	if err := repo.EnsureSchema(context.Background()); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	resolver := services.NewResolver(repo)
	directory := services.NewDirectory(repo, resolver)
	auditor := services.NewAuditor(repo)

	deps := &Deps{
		Config:           cfg,
		DirectoryHandler: handlers.NewDirectoryHandler(directory),
		AuditHandler:     handlers.NewAuditHandler(auditor),
	}

	return fn(deps)
}

// withDirectoryHandler provides access to the DirectoryHandler.
func withDirectoryHandler(fn func(*handlers.DirectoryHandler) error) error {
	return withDeps(func(d *Deps) error {
		return fn(d.DirectoryHandler)
	})
}

// withAuditHandler provides access to the AuditHandler.
func withAuditHandler(fn func(*handlers.AuditHandler) error) error {
	return withDeps(func(d *Deps) error {
		return fn(d.AuditHandler)
	})
}
