package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barber-backoffice/internal/media"
)

// paramID reads a positive numeric path parameter, writing 400 invalid_id otherwise.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.FromError(c, httperr.ErrBusiness("invalid_id"))
		return 0, false
	}
	return uint(id), true
}

// queryUint returns 0 for a missing or malformed value.
func queryUint(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}

func queryInt(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return v
}

// queryBool reads "true"/"false"; anything else means unset.
func queryBool(c *gin.Context, name string) *bool {
	switch c.Query(name) {
	case "true", "1":
		v := true
		return &v
	case "false", "0":
		v := false
		return &v
	}
	return nil
}

func notFoundAs(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return false
	}
	return true
}

// uploadImage reads the multipart "file" field and stores it under kind.
func uploadImage(c *gin.Context, uploader *media.Uploader, organizationID uint, kind string) (string, bool) {
	if !uploader.Enabled() {
		httperr.FromError(c, httperr.ErrBusiness("uploads_disabled"))
		return "", false
	}

	fh, err := c.FormFile("file")
	if err != nil {
		httperr.FromError(c, httperr.ErrBusiness("invalid_image"))
		return "", false
	}
	if fh.Size > media.MaxUploadBytes {
		httperr.FromError(c, httperr.ErrBusiness("image_too_large"))
		return "", false
	}

	f, err := fh.Open()
	if err != nil {
		httperr.FromError(c, httperr.ErrBusiness("invalid_image"))
		return "", false
	}
	defer f.Close()

	url, err := uploader.Upload(c.Request.Context(), organizationID, kind, f)
	if err != nil {
		httperr.FromError(c, err)
		return "", false
	}
	return url, true
}
