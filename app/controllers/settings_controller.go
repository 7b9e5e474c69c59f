package controllers

import (
	"net/http"

	"github.com/lumicea/lumicea/app/repositories"
	"github.com/lumicea/lumicea/pkg/bind"
	"github.com/lumicea/lumicea/pkg/response"
)

// SettingsController exposes shop-wide key/value settings. The public
// endpoint serves the whole map so the storefront can render banners and
// shipping copy; writes are admin only.
type SettingsController struct {
	settings *repositories.SettingsRepository
}

func NewSettingsController(settings *repositories.SettingsRepository) *SettingsController {
	return &SettingsController{settings: settings}
}

// Index returns every setting.
func (c *SettingsController) Index(w http.ResponseWriter, r *http.Request) {
	all, err := c.settings.All()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load settings")
		return
	}
	response.Success(w, all)
}

// Update upserts a batch of settings.
func (c *SettingsController) Update(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Settings map[string]string `json:"settings" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	if len(body.Settings) == 0 {
		response.ValidationError(w, map[string]string{"settings": "The settings field is required"})
		return
	}

	for key, value := range body.Settings {
		if err := c.settings.Set(key, value); err != nil {
			response.Error(w, http.StatusInternalServerError, "Could not save settings")
			return
		}
	}

	all, err := c.settings.All()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Settings saved but reload failed")
		return
	}
	response.Success(w, all)
}
