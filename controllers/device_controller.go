package controllers

import (
	"net/http"

	"github.com/petrepopa00/gurmaio/services"

	"github.com/gin-gonic/gin"
)

type DeviceController struct {
	Push *services.PushService
}

func NewDeviceController(ps *services.PushService) *DeviceController {
	return &DeviceController{Push: ps}
}

// pushAvailable rejects device calls when the server booted without SNS
// credentials.
func (dc *DeviceController) pushAvailable(c *gin.Context) bool {
	if dc.Push == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "push notifications not configured"})
		return false
	}
	return true
}

type registerDeviceReq struct {
	Platform string `json:"platform" binding:"required"` // "android" | "ios"
	Token    string `json:"token" binding:"required"`
}

func (dc *DeviceController) Register(c *gin.Context) {
	if !dc.pushAvailable(c) {
		return
	}
	uid := c.GetUint("userID")

	var req registerDeviceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dev, err := dc.Push.RegisterDevice(uid, req.Platform, req.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"endpoint_arn": dev.EndpointARN})
}

func (dc *DeviceController) Unregister(c *gin.Context) {
	if !dc.pushAvailable(c) {
		return
	}
	uid := c.GetUint("userID")

	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := dc.Push.RemoveDevice(uid, req.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "device removed"})
}

func (dc *DeviceController) GetReminder(c *gin.Context) {
	if !dc.pushAvailable(c) {
		return
	}
	uid := c.GetUint("userID")

	setting, err := dc.Push.GetReminderSetting(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"enabled": setting.Enabled, "time_of_day": setting.TimeOfDay})
}

func (dc *DeviceController) UpdateReminder(c *gin.Context) {
	if !dc.pushAvailable(c) {
		return
	}
	uid := c.GetUint("userID")

	var req struct {
		Enabled   bool   `json:"enabled"`
		TimeOfDay string `json:"time_of_day" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	setting, err := dc.Push.UpsertReminderSetting(uid, req.Enabled, req.TimeOfDay)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"enabled": setting.Enabled, "time_of_day": setting.TimeOfDay})
}
