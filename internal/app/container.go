// Package app wires application services with infrastructure adapters.
package app

import (
	"context"
	"time"

	"github.com/doeshing/arcgen/internal/infrastructure/ai"
	"github.com/doeshing/arcgen/internal/infrastructure/cache"
	"github.com/doeshing/arcgen/internal/infrastructure/config"
	"github.com/doeshing/arcgen/internal/infrastructure/history"
	"github.com/doeshing/arcgen/internal/infrastructure/preview"
	"github.com/doeshing/arcgen/internal/infrastructure/sandbox"
	"github.com/doeshing/arcgen/internal/infrastructure/security"
	"github.com/doeshing/arcgen/internal/infrastructure/workspace"
	"github.com/doeshing/arcgen/internal/pipeline"
	"github.com/doeshing/arcgen/internal/pkg/logger"
	"github.com/doeshing/arcgen/internal/ports"
	"github.com/doeshing/arcgen/internal/services"
)

// Container holds the wired dependency graph for the CLI.
type Container struct {
	Pipeline       *pipeline.Service
	Session        *pipeline.SessionContext
	Doctor         *services.DoctorService
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Artifacts      ports.ArtifactRepository
	HistoryStore   ports.HistoryRepository
	CacheStore     ports.CacheRepository
	Previewer      ports.Previewer
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose || cfg.Preferences.Verbose)

	artifacts, err := workspace.NewStore(cfg.Workspace.Dir)
	if err != nil {
		return nil, err
	}

	guardrail, err := security.NewGuardrail(cfg.Security.RulesFile)
	if err != nil {
		guardrail, err = security.NewGuardrail("")
		if err != nil {
			return nil, err
		}
	}

	historyStore := history.NewSQLiteStore()
	if cfg.History.RetentionDays > 0 {
		_ = historyStore.PruneOlderThan(cfg.History.RetentionDays)
	}

	ttl, err := time.ParseDuration(cfg.Cache.TTL)
	if err != nil {
		ttl = 0
	}
	cacheStore := cache.NewFileCache(ttl, cfg.Cache.MaxEntries)

	previewer := preview.NewCommandRenderer(cfg.Preview.Command)

	pipelineService := &pipeline.Service{
		ConfigProvider:  cfgLoader,
		ProviderFactory: ai.NewFactory(cfg.Preferences.RequestsPerMinute),
		Artifacts:       artifacts,
		Runner:          sandbox.NewRunner(cfg.Workspace.Interpreter, cfg.Workspace.Dir),
		Security:        guardrail,
		Cache:           cacheStore,
		Logger:          log,
	}
	if cfg.History.Enabled {
		pipelineService.HistoryStore = historyStore
	}

	doctor := &services.DoctorService{
		ConfigProvider: cfgLoader,
		Security:       guardrail,
		Artifacts:      artifacts,
		History:        historyStore,
		Previewer:      previewer,
	}

	return &Container{
		Pipeline:       pipelineService,
		Session:        pipeline.NewSession(),
		Doctor:         doctor,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Artifacts:      artifacts,
		HistoryStore:   historyStore,
		CacheStore:     cacheStore,
		Previewer:      previewer,
	}, nil
}
