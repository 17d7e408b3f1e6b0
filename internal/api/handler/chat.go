package handler

import (
	"errors"

	"companion/internal/interfaces"
	"companion/internal/services"

	"github.com/go-redis/redis_rate/v10"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupChat struct {
	container *do.Injector
}

type sendMessageRequest struct {
	Text       string `json:"text"`
	TextStyle  string `json:"text_style"`
	ImageStyle string `json:"image_style"`
}

func (gr *groupChat) GetMessages(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveValidUser(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceChat, err := do.Invoke[*services.ServiceChat](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	messages, err := serviceChat.GetMessages(ctx, user.ID)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, messages, nil)
}

func (gr *groupChat) SendMessage(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveValidUser(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	limiter, err := do.Invoke[interfaces.Limiter](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	if err := limiter.Allow(ctx, services.LimitKeyUserChat(user.ID), redis_rate.PerMinute(services.CHAT_RATE_LIMIT_PER_MINUTE)); err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	serviceChat, err := do.Invoke[*services.ServiceChat](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	result, err := serviceChat.SubmitMessage(ctx, user, req.Text, services.StyleOptions{
		TextStyle:  req.TextStyle,
		ImageStyle: req.ImageStyle,
	})
	if err != nil {
		if errors.Is(err, services.ErrChatLocked) {
			return httpx.RestAbort(c, nil, err)
		}
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	// empty input is a silent no-op, mirroring the UI's send guard
	if result == nil {
		return httpx.RestAbort(c, nil, nil)
	}

	return httpx.RestAbort(c, result, nil)
}
