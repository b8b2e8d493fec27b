package handler

import (
	"errors"

	"restaurant_site/constants"
	"restaurant_site/storage"
	"restaurant_site/utils"

	"github.com/gofiber/fiber/v2"
)

var errStorageDisabled = errors.New("image storage is not configured")

// formImage uploads the optional "image" file of a multipart request. It
// returns nil when the request carries no file.
func (h *Handler) formImage(c *fiber.Ctx, bucket string) (*storage.Object, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}
	if h.storage == nil {
		return nil, errStorageDisabled
	}
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	obj, err := h.storage.Upload(c.UserContext(), bucket, file.Filename, f)
	if err != nil {
		return nil, err
	}
	return &obj, nil
}

func uploadError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errStorageDisabled):
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, constants.UPLOAD_FAILED, err)
	case errors.Is(err, storage.ErrNotImage), errors.Is(err, storage.ErrUnknownBucket):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.UPLOAD_FAILED, err)
	}
	return utils.ErrorResponse(c, fiber.StatusBadGateway, constants.UPLOAD_FAILED, err)
}

func (h *Handler) discard(c *fiber.Ctx, publicID *string) {
	if h.storage == nil || publicID == nil {
		return
	}
	h.storage.Discard(c.UserContext(), *publicID)
}

// Upload stores a standalone image in a bucket and returns its public URL.
func (h *Handler) Upload(c *fiber.Ctx) error {
	bucket := c.Locals("bucket").(string)
	obj, err := h.formImage(c, bucket)
	if err != nil {
		return uploadError(c, err)
	}
	if obj == nil {
		return utils.ValidationErrorResponse(c, constants.VALIDATION_FAILED, map[string]string{"image": "required"})
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, obj)
}
