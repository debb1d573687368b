package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/railfit/internal/domain/models"
	"github.com/mamadbah2/railfit/internal/repository"
	"github.com/mamadbah2/railfit/internal/service/inventory"
	"github.com/mamadbah2/railfit/internal/service/reporting"
	"github.com/mamadbah2/railfit/internal/service/users"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DashboardHandler serves the inventory, user and analytics pages.
type DashboardHandler struct {
	inventory *inventory.Service
	users     *users.Service
	reporting *reporting.Service
	logger    *zap.Logger
}

// NewDashboardHandler constructs the HTTP handler adapter.
func NewDashboardHandler(inv *inventory.Service, usr *users.Service, rep *reporting.Service, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{inventory: inv, users: usr, reporting: rep, logger: logger}
}

// ListInventory returns filtered inventory items.
func (h *DashboardHandler) ListInventory(c *gin.Context) {
	listing, err := h.inventory.List(c.Request.Context(), inventoryFilter(c))
	if err != nil {
		if errors.Is(err, inventory.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed listing inventory", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load inventory"})
		return
	}

	c.JSON(http.StatusOK, listing)
}

// ExportInventory streams the filtered inventory as an XLSX workbook.
func (h *DashboardHandler) ExportInventory(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.inventory.Export(c.Request.Context(), inventoryFilter(c), &buf); err != nil {
		if errors.Is(err, inventory.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed exporting inventory", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to export inventory"})
		return
	}

	filename := "inventory-" + time.Now().Format(models.DateLayout) + ".xlsx"
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ListUsers returns filtered users.
func (h *DashboardHandler) ListUsers(c *gin.Context) {
	filter := models.UserFilter{Search: c.Query("search"), Role: models.Role(c.Query("role"))}

	list, err := h.users.List(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, users.ErrInvalidRole) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed listing users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": list, "total": len(list)})
}

// CreateUser registers a new user.
func (h *DashboardHandler) CreateUser(c *gin.Context) {
	var req models.NewUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid user payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.users.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, users.ErrInvalidUser) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed creating user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to create user"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// DeleteUser removes a user by id.
func (h *DashboardHandler) DeleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.logger.Error("failed deleting user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to delete user"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Overview returns the landing page KPIs.
func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.reporting.Overview(c.Request.Context())
	if err != nil {
		h.logger.Error("failed building overview", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to build overview"})
		return
	}
	c.JSON(http.StatusOK, overview)
}

// Analytics returns the chart data of the analytics page.
func (h *DashboardHandler) Analytics(c *gin.Context) {
	analytics, err := h.reporting.Analytics(c.Request.Context())
	if err != nil {
		h.logger.Error("failed building analytics", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to build analytics"})
		return
	}
	c.JSON(http.StatusOK, analytics)
}

func inventoryFilter(c *gin.Context) models.InventoryFilter {
	return models.InventoryFilter{
		Search:   c.Query("search"),
		Vendor:   c.Query("vendor"),
		ItemType: c.Query("itemType"),
		Status:   models.InspectionStatus(c.Query("status")),
	}
}
