package main

import (
	"context"
	"errors"
	"time"

	staticcatalog "wagontrail/internal/adapter/catalog/static"
	httpadapter "wagontrail/internal/adapter/http"
	metricsinmem "wagontrail/internal/adapter/metrics/inmemory"
	gormrepo "wagontrail/internal/adapter/repo/gorm"
	memrepo "wagontrail/internal/adapter/repo/memory"
	"wagontrail/internal/app/event"
	"wagontrail/internal/app/hazard"
	"wagontrail/internal/app/hunt"
	"wagontrail/internal/app/newgame"
	"wagontrail/internal/app/observe"
	"wagontrail/internal/app/ports"
	"wagontrail/internal/app/replay"
	"wagontrail/internal/app/turn"
	"wagontrail/internal/domain/trail"

	"github.com/caarlos0/env/v11"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/sirupsen/logrus"
)

type config struct {
	Addr          string `env:"WAGONTRAIL_ADDR" envDefault:":8080"`
	DBDSN         string `env:"WAGONTRAIL_DB_DSN"`
	MigrationsDir string `env:"WAGONTRAIL_MIGRATIONS_DIR" envDefault:"./migrations"`
	CatalogDir    string `env:"WAGONTRAIL_CATALOG_DIR"`
	LogLevel      string `env:"WAGONTRAIL_LOG_LEVEL" envDefault:"info"`
}

func main() {
	log := logrus.New()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.WithError(err).Fatal("parse config")
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	sessionRepo, turnRepo, journalRepo, txManager := buildRepos(cfg, log)
	seedDemoSlot(sessionRepo, log)

	catalogs := &staticcatalog.Provider{Root: cfg.CatalogDir, Log: log}
	tables, err := catalogs.Load(context.Background())
	if err != nil {
		log.WithError(err).Fatal("load catalogs")
	}
	engine := trail.NewEngine(tables)
	kpiRecorder := metricsinmem.NewRecorder()

	h := httpadapter.Handler{
		NewGameUC: newgame.UseCase{
			TxManager:   txManager,
			SessionRepo: sessionRepo,
			Journal:     journalRepo,
			Now:         time.Now,
		},
		ObserveUC: observe.UseCase{SessionRepo: sessionRepo, Engine: engine},
		TurnUC: turn.UseCase{
			TxManager:   txManager,
			SessionRepo: sessionRepo,
			TurnRepo:    turnRepo,
			Journal:     journalRepo,
			Engine:      engine,
			Metrics:     kpiRecorder,
			Now:         time.Now,
		},
		EventUC: &event.UseCase{
			TxManager:   txManager,
			SessionRepo: sessionRepo,
			Journal:     journalRepo,
			Engine:      engine,
			Metrics:     kpiRecorder,
			Now:         time.Now,
		},
		HazardUC: hazard.UseCase{
			TxManager:   txManager,
			SessionRepo: sessionRepo,
			Journal:     journalRepo,
			Catalogs:    catalogs,
			Engine:      engine,
			Metrics:     kpiRecorder,
			Now:         time.Now,
		},
		HuntUC: &hunt.UseCase{
			TxManager:   txManager,
			SessionRepo: sessionRepo,
			Journal:     journalRepo,
			Engine:      engine,
			Metrics:     kpiRecorder,
			Now:         time.Now,
		},
		ReplayUC: replay.UseCase{Journal: journalRepo},
		KPI:      kpiRecorder,
	}

	s := server.Default(server.WithHostPorts(cfg.Addr))
	h.RegisterRoutes(s)

	log.WithField("addr", cfg.Addr).Info("trail server listening")
	s.Spin()
}

// seedDemoSlot makes sure a playable slot exists out of the box.
func seedDemoSlot(repo ports.SessionRepository, log *logrus.Logger) {
	const demoSlot = "demo-slot"
	_, err := repo.GetBySlotID(context.Background(), demoSlot)
	if err == nil {
		return
	}
	if !errors.Is(err, ports.ErrNotFound) {
		log.WithError(err).Fatal("load demo slot (did the migrations run?)")
	}
	session := trail.NewSession(demoSlot, uint32(time.Now().UnixNano()), nil)
	if err := repo.SaveWithVersion(context.Background(), session, 0); err != nil {
		log.WithError(err).Fatal("seed demo slot")
	}
	log.WithField("slot", demoSlot).Info("seeded demo slot")
}

func buildRepos(cfg config, log *logrus.Logger) (ports.SessionRepository, ports.TurnExecutionRepository, ports.JournalRepository, ports.TxManager) {
	if cfg.DBDSN == "" {
		log.Warn("WAGONTRAIL_DB_DSN not set, using in-memory storage")
		store := memrepo.NewStore()
		return memrepo.NewSessionRepo(store), memrepo.NewTurnExecutionRepo(store), memrepo.NewJournalRepo(store), memrepo.NewTxManager(store)
	}

	db, err := gormrepo.OpenPostgres(cfg.DBDSN)
	if err != nil {
		log.WithError(err).Fatal("open postgres")
	}
	if err := gormrepo.ApplyMigrations(context.Background(), db, cfg.MigrationsDir); err != nil {
		log.WithError(err).Fatal("apply migrations")
	}
	return gormrepo.NewSessionRepo(db), gormrepo.NewTurnExecutionRepo(db), gormrepo.NewJournalRepo(db), gormrepo.NewTxManager(db)
}
