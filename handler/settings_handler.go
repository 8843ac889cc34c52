package handler

import (
	"log"
	"net/http"

	"github.com/Aashish23092/drive-decision/config"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsStore *config.SettingsStore
}

func NewSettingsHandler(settingsStore *config.SettingsStore) *SettingsHandler {
	return &SettingsHandler{settingsStore: settingsStore}
}

// GetSettings handles GET /settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.settingsStore.Snapshot())
}

// UpdateSettings handles PUT /settings. Fields left out keep their value.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	next := h.settingsStore.Snapshot()
	if err := c.ShouldBindJSON(&next); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid settings", err)
		return
	}

	stored, err := h.settingsStore.Update(next)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to save settings", err)
		return
	}

	log.Println("Settings saved")
	c.JSON(http.StatusOK, stored)
}
