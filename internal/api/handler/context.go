package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/favboard/favboard-api/internal/api/middleware"
	"github.com/favboard/favboard-api/internal/core/domain"
)

// caller returns the identity attached by the Gate. Routes registered without
// a Gate have none; reaching here without one is treated as unauthenticated.
func caller(c echo.Context) (*domain.User, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return identity, nil
}

// normalizer is implemented by requests that clean up their fields before
// validation.
type normalizer interface {
	normalize()
}

// bindAndValidate decodes the JSON body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.WithMessage(domain.ErrInvalidInput, "invalid payload")
	}
	if n, ok := req.(normalizer); ok {
		n.normalize()
	}
	return c.Validate(req)
}
