package handler

import (
	"net/http"

	"companion/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do"
)

type Config struct {
	Container *do.Injector
	Mode      string
	Origins   []string
}

func New(cfg *Config) (http.Handler, error) {
	r := echo.New()
	r.Pre(middleware.RemoveTrailingSlash())
	if cfg.Mode == "debug" {
		r.Debug = true
		pprof.Register(r)
	}

	r.JSONSerializer = httpx.SegmentJSONSerializer{}
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339}\t${method}\t${uri}\t${status}\t${latency_human}\n",
	}))
	r.Use(middleware.Recover())

	r.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "💖")
	})

	routesAPIv1 := r.Group("/api/v1")
	{
		authentication, err := do.Invoke[*services.Authentication](cfg.Container)
		if err != nil {
			return nil, err
		}
		cors := middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.Origins,
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			AllowCredentials: true,
			MaxAge:           60 * 60,
		})

		routesAPIv1.Use(cors)

		routesAPIv1.Use(Authn(authentication)) // Authn will NOT terminate unauthenticated request.
		routesAPIv1.GET("", Hello)

		u := groupUser{cfg.Container}
		routesAPIv1.GET("/personas", u.GetPersonas)
		routesAPIv1.GET("/user/me", u.Me)
		routesAPIv1.POST("/user/persona", u.SelectPersona)
		routesAPIv1.POST("/user/profile", u.UpdateProfile)

		ch := groupChat{cfg.Container}
		routesAPIv1.GET("/chat/messages", ch.GetMessages)
		routesAPIv1.POST("/chat/messages", ch.SendMessage)

		p := groupProgression{cfg.Container}
		routesAPIv1.GET("/progression", p.GetProgression)

		g := groupGate{cfg.Container}
		routesAPIv1.POST("/gate/:message/begin", g.Begin)
		routesAPIv1.POST("/gate/:message/complete", g.Complete)
		routesAPIv1.POST("/gate/:message/cancel", g.Cancel)
	}

	return r, nil
}

func Hello(c echo.Context) error {
	return httpx.RestAbort(c, "hello world", nil)
}
