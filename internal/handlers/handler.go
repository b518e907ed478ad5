package handlers

import (
	"log/slog"

	"github.com/fez-github/Doom-Mod-Records/internal/config"
	"github.com/fez-github/Doom-Mod-Records/internal/services"

	"gorm.io/gorm"
)

type Handler struct {
	cfg            config.Config
	logger         *slog.Logger
	db             *gorm.DB
	accountService *services.AccountService
	catalogService *services.CatalogService
	trackerService *services.TrackerService
	archiveService *services.ArchiveService
	auditService   *services.AuditService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	db *gorm.DB,
	accountService *services.AccountService,
	catalogService *services.CatalogService,
	trackerService *services.TrackerService,
	archiveService *services.ArchiveService,
	auditService *services.AuditService,
) *Handler {
	return &Handler{
		cfg:            cfg,
		logger:         logger,
		db:             db,
		accountService: accountService,
		catalogService: catalogService,
		trackerService: trackerService,
		archiveService: archiveService,
		auditService:   auditService,
	}
}
