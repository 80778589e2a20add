package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/redwanJemal/renderforge/internal/core/schema"
	"github.com/redwanJemal/renderforge/internal/core/service"
)

// mapError translates the service error taxonomy into transport errors.
func mapError(err error) error {
	var verr *service.ValidationError
	var perr *schema.ValidationError
	switch {
	case errors.As(err, &verr):
		return huma.Error400BadRequest(verr.Message)
	case errors.As(err, &perr):
		return huma.Error400BadRequest(perr.Error())
	case errors.Is(err, service.ErrTemplateNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, service.ErrJobNotFound):
		return huma.Error404NotFound("job not found")
	case errors.Is(err, service.ErrNotReady):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, service.ErrOutputReclaimed):
		return huma.Error410Gone(err.Error())
	}
	return huma.Error500InternalServerError(err.Error())
}
