package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GunarsK-portfolio/pos-service/internal/metrics"
	"github.com/GunarsK-portfolio/pos-service/internal/models"
	"github.com/GunarsK-portfolio/pos-service/internal/repository"
	"github.com/GunarsK-portfolio/pos-service/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgInvalidUsers  = "Format data pengguna tidak valid."
	msgInvalidMenu   = "Format data menu tidak valid."
	msgUsersUpdated  = "Data pengguna berhasil diperbarui."
	msgMenuUpdated   = "Data menu berhasil diperbarui."
	msgSaveFailed    = "Gagal menyimpan data."
	msgExportFailed  = "Gagal membuat file ekspor menu."
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	menuExportHeader = `attachment; filename="menu.xlsx"`
)

var errNotArray = errors.New("collection must be a JSON array")

// DataHandler serves the POS document and its admin updates.
type DataHandler struct {
	store    repository.SnapshotReader
	userRepo repository.UserRepository
	menuRepo repository.MenuRepository
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewDataHandler creates a new DataHandler instance.
func NewDataHandler(
	store repository.SnapshotReader,
	userRepo repository.UserRepository,
	menuRepo repository.MenuRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) *DataHandler {
	return &DataHandler{
		store:    store,
		userRepo: userRepo,
		menuRepo: menuRepo,
		metrics:  m,
		logger:   logger,
	}
}

// UpdateUsersRequest carries a full replacement user collection.
type UpdateUsersRequest struct {
	Users json.RawMessage `json:"users"`
}

// UpdateMenuRequest carries a full replacement menu.
type UpdateMenuRequest struct {
	MenuItems json.RawMessage `json:"menuItems"`
}

// GetData godoc
// @Summary Get POS data
// @Description Return the whole document: users, menu items and sales data
// @Tags data
// @Produce json
// @Success 200 {object} models.Snapshot
// @Failure 500 {object} map[string]string
// @Router /get-data [get]
func (h *DataHandler) GetData(c *gin.Context) {
	snap, err := h.store.Snapshot(c.Request.Context())
	if err != nil {
		logAndRespondError(c, h.logger, http.StatusInternalServerError, err, msgInternalError)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// UpdateUsers godoc
// @Summary Replace users
// @Description Replace the whole user collection
// @Tags data
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UpdateUsersRequest true "Replacement users"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /update-users [post]
func (h *DataHandler) UpdateUsers(c *gin.Context) {
	var req UpdateUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidUsers)
		return
	}

	var users []models.User
	if err := decodeArray(req.Users, &users); err != nil {
		h.rejectWrite(c, "users", err, msgInvalidUsers)
		return
	}
	if err := models.ValidateUsers(users); err != nil {
		h.rejectWrite(c, "users", err, msgInvalidUsers)
		return
	}

	if err := h.userRepo.ReplaceUsers(c.Request.Context(), users); err != nil {
		h.metrics.StoreWrites.WithLabelValues("users", "error").Inc()
		logAndRespondError(c, h.logger, http.StatusInternalServerError, err, msgSaveFailed)
		return
	}

	h.metrics.StoreWrites.WithLabelValues("users", "success").Inc()
	h.logger.Info("users replaced", zap.Int("count", len(users)))
	c.JSON(http.StatusOK, gin.H{"message": msgUsersUpdated})
}

// UpdateMenu godoc
// @Summary Replace menu
// @Description Replace the whole menu
// @Tags data
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UpdateMenuRequest true "Replacement menu items"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /update-menu [post]
func (h *DataHandler) UpdateMenu(c *gin.Context) {
	var req UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidMenu)
		return
	}

	var items []models.MenuItem
	if err := decodeArray(req.MenuItems, &items); err != nil {
		h.rejectWrite(c, "menuItems", err, msgInvalidMenu)
		return
	}
	if err := models.ValidateMenuItems(items); err != nil {
		h.rejectWrite(c, "menuItems", err, msgInvalidMenu)
		return
	}

	if err := h.menuRepo.ReplaceMenuItems(c.Request.Context(), items); err != nil {
		h.metrics.StoreWrites.WithLabelValues("menuItems", "error").Inc()
		logAndRespondError(c, h.logger, http.StatusInternalServerError, err, msgSaveFailed)
		return
	}

	h.metrics.StoreWrites.WithLabelValues("menuItems", "success").Inc()
	h.logger.Info("menu replaced", zap.Int("count", len(items)))
	c.JSON(http.StatusOK, gin.H{"message": msgMenuUpdated})
}

// ExportMenu godoc
// @Summary Export menu
// @Description Download the menu as an xlsx workbook
// @Tags data
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /export-menu [get]
func (h *DataHandler) ExportMenu(c *gin.Context) {
	items, err := h.menuRepo.ListMenuItems(c.Request.Context())
	if err != nil {
		logAndRespondError(c, h.logger, http.StatusInternalServerError, err, msgInternalError)
		return
	}

	buf, err := service.BuildMenuWorkbook(items)
	if err != nil {
		logAndRespondError(c, h.logger, http.StatusInternalServerError, err, msgExportFailed)
		return
	}

	c.Header("Content-Disposition", menuExportHeader)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *DataHandler) rejectWrite(c *gin.Context, collection string, err error, message string) {
	h.metrics.StoreWrites.WithLabelValues(collection, "invalid").Inc()
	h.logger.Warn("rejected collection update",
		zap.String("collection", collection),
		zap.Error(err))
	respondError(c, http.StatusBadRequest, message)
}

// decodeArray accepts only a JSON array; null, objects and scalars are rejected.
func decodeArray(raw json.RawMessage, out interface{}) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return errNotArray
	}
	return json.Unmarshal(trimmed, out)
}
