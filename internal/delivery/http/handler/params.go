package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/geoquiz-service/internal/pkg/errors"
)

// exerciseID читает :id из пути
func exerciseID(c *fiber.Ctx) (int64, error) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.ErrInvalidRequest.WithMessage("invalid exercise id %q", raw)
	}
	return id, nil
}

func invalidBody(err error) error {
	return errors.ErrInvalidRequest.WithMessage("invalid request body").WithCause(err)
}
