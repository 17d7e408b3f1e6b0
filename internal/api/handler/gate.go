package handler

import (
	"errors"

	"companion/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupGate struct {
	container *do.Injector
}

type completeGateRequest struct {
	ImageStyle string `json:"image_style"`
}

func (gr *groupGate) Begin(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveValidUser(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceGate, err := do.Invoke[*services.ServiceRewardGate](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	session, err := serviceGate.Begin(ctx, user, c.Param("message"))
	if err != nil {
		return httpx.RestAbort(c, nil, wrapGateError(err))
	}

	return httpx.RestAbort(c, session, nil)
}

func (gr *groupGate) Complete(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveValidUser(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var req completeGateRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	serviceGate, err := do.Invoke[*services.ServiceRewardGate](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	message, progression, err := serviceGate.Complete(ctx, user, c.Param("message"), services.StyleOptions{
		ImageStyle: req.ImageStyle,
	})
	if err != nil {
		return httpx.RestAbort(c, nil, wrapGateError(err))
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"message":     message,
		"progression": progression,
	}, nil)
}

func (gr *groupGate) Cancel(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveValidUser(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceGate, err := do.Invoke[*services.ServiceRewardGate](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	if err := serviceGate.Cancel(ctx, user, c.Param("message")); err != nil {
		return httpx.RestAbort(c, nil, wrapGateError(err))
	}

	return httpx.RestAbort(c, nil, nil)
}

func wrapGateError(err error) error {
	switch {
	case errors.Is(err, services.ErrGateBusy),
		errors.Is(err, services.ErrGateNotPending),
		errors.Is(err, services.ErrInvalidGateTarget):
		return errorx.Wrap(err, errorx.Invalid)
	case errors.Is(err, services.ErrGateLocked):
		return err
	default:
		return errorx.Wrap(err, errorx.Service)
	}
}
