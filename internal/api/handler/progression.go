package handler

import (
	"companion/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupProgression struct {
	container *do.Injector
}

func (gr *groupProgression) GetProgression(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveValidUser(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceProgression, err := do.Invoke[*services.ServiceProgression](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	serviceChat, err := do.Invoke[*services.ServiceChat](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	progression, err := serviceProgression.GetOrCreateProgression(ctx, user.ID)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	tasks := services.ComputeDailyTasks(
		progression.DailyMessagesSent,
		progression.DailyImagesUnlocked,
		serviceChat.SessionElapsed(ctx, user.ID),
	)

	return httpx.RestAbort(c, map[string]interface{}{
		"progression": progression,
		"tasks":       tasks,
	}, nil)
}
