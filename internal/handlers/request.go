package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/rep-messaging/internal/apperr"
	"github.com/noteduco342/rep-messaging/internal/httpx"
	"github.com/noteduco342/rep-messaging/internal/validation"
)

// currentUser returns the member id placed in Locals by the auth middleware.
func currentUser(c *fiber.Ctx) (uint, error) {
	id, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return 0, apperr.Auth("unauthorized")
	}
	return id, nil
}

// bind parses the JSON body into dst and validates it.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperr.Validation("invalid request body")
	}
	return validation.Struct(dst)
}

func param(c *fiber.Ctx, name string) (uint, error) {
	id, err := httpx.ParamUint(c, name)
	if err != nil {
		return 0, apperr.Validation(name + " is invalid")
	}
	return id, nil
}

func query(c *fiber.Ctx, name string) (uint, error) {
	id, err := httpx.QueryUint(c, name)
	if err != nil {
		return 0, apperr.Validation(name + " is invalid")
	}
	return id, nil
}
