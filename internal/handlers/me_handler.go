package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/neuromancers/session-scheduler/internal/httperr"
	"github.com/neuromancers/session-scheduler/internal/httpresp"
	"github.com/neuromancers/session-scheduler/internal/media"
	"github.com/neuromancers/session-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type MeHandler struct {
	db       *gorm.DB
	uploader *media.Uploader
}

func NewMeHandler(db *gorm.DB, uploader *media.Uploader) *MeHandler {
	return &MeHandler{db: db, uploader: uploader}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateProfileRequest struct {
	DisplayName        *string `json:"display_name"`
	Bio                *string `json:"bio"`
	TermsAndConditions *string `json:"terms_and_conditions"`
}

type UpdateNotificationSettingsRequest struct {
	Account  *string `json:"account"`
	Payment  *string `json:"payment"`
	Session  *string `json:"session"`
	Reminder *string `json:"reminder"`
}

func validChannel(v string) bool {
	switch v {
	case models.NotifyNone, models.NotifyWeb, models.NotifyEmail, models.NotifyAll:
		return true
	}
	return false
}

// ======================================================
// HANDLERS
// ======================================================

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := currentUserID(c)

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Not found.")
		return
	}

	var profile models.Profile
	h.db.Where("user_id = ?", userID).First(&profile)

	httpresp.OK(c, gin.H{
		"user":    user,
		"profile": profile,
	})
}

func (h *MeHandler) UpdateProfile(c *gin.Context) {
	userID := currentUserID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var profile models.Profile
	if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		profile = models.Profile{UserID: userID}
	}

	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.TermsAndConditions != nil {
		profile.TermsAndConditions = *req.TermsAndConditions
	}

	if err := h.db.Save(&profile).Error; err != nil {
		httperr.Internal(c, "update_failed", "Could not update profile.")
		return
	}

	httpresp.OK(c, profile)
}

func (h *MeHandler) UploadAvatar(c *gin.Context) {
	userID := currentUserID(c)

	file, _, err := c.Request.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Expected an avatar file.")
		return
	}
	defer file.Close()

	url, err := h.uploader.UploadAvatar(c.Request.Context(), userID, file)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	if err := h.db.Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Update("avatar_url", url).Error; err != nil {
		httperr.Internal(c, "update_failed", "Could not save avatar.")
		return
	}

	httpresp.OK(c, gin.H{"avatar_url": url})
}

func (h *MeHandler) GetNotificationSettings(c *gin.Context) {
	userID := currentUserID(c)

	var settings models.NotificationSettings
	if err := h.db.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		settings = models.NotificationSettings{
			UserID:   userID,
			Account:  models.NotifyAll,
			Payment:  models.NotifyAll,
			Session:  models.NotifyAll,
			Reminder: models.NotifyAll,
		}
	}

	httpresp.OK(c, settings)
}

func (h *MeHandler) UpdateNotificationSettings(c *gin.Context) {
	userID := currentUserID(c)

	var req UpdateNotificationSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var settings models.NotificationSettings
	if err := h.db.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		settings = models.NotificationSettings{UserID: userID}
	}

	for _, f := range []struct {
		value *string
		dst   *string
	}{
		{req.Account, &settings.Account},
		{req.Payment, &settings.Payment},
		{req.Session, &settings.Session},
		{req.Reminder, &settings.Reminder},
	} {
		if f.value == nil {
			continue
		}
		if !validChannel(*f.value) {
			httperr.BadRequest(c, "invalid_channel", "Unknown delivery channel.")
			return
		}
		*f.dst = *f.value
	}

	if err := h.db.Save(&settings).Error; err != nil {
		httperr.Internal(c, "update_failed", "Could not update settings.")
		return
	}

	httpresp.OK(c, settings)
}
