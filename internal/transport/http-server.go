package transport

import (
	"context"
	"crypto/subtle"
	"net/http"
	"path"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/bookmarks-server/internal/config"
	"github.com/Rogue-Bear-Innovations/bookmarks-server/internal/models"
	"github.com/Rogue-Bear-Innovations/bookmarks-server/internal/service"
	"github.com/Rogue-Bear-Innovations/bookmarks-server/internal/validation"
)

const unauthorizedMessage = "Unauthorized request"

type (
	HTTPServer struct {
		echo     *echo.Echo
		cfg      *config.Config
		service  *service.Bookmarks
		logger   *zap.SugaredLogger
		bodyBind echo.DefaultBinder
	}
)

func NewHTTPServer(cfg *config.Config, svc *service.Bookmarks, logger *zap.SugaredLogger) *HTTPServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	instance := HTTPServer{
		echo:    e,
		cfg:     cfg,
		service: svc,
		logger:  logger,
	}

	e.HTTPErrorHandler = instance.ErrorHandler

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(instance.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	api := e.Group("/api", instance.AuthMiddleware())

	bookmarkG := api.Group("/bookmarks")
	bookmarkG.GET("", instance.BookmarkList)
	bookmarkG.POST("", instance.BookmarkCreate)
	bookmarkG.GET("/:id", instance.BookmarkGet)
	bookmarkG.PATCH("/:id", instance.BookmarkUpdate)
	bookmarkG.DELETE("/:id", instance.BookmarkDelete)

	return &instance
}

func RegisterHooks(lc fx.Lifecycle, s *HTTPServer, cfg *config.Config, logger *zap.SugaredLogger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			listen := cfg.Host + ":" + cfg.Port
			go func() {
				if err := s.echo.Start(listen); err != nil && err != http.ErrServerClosed {
					logger.Fatalw("http server failed", "error", err)
				}
			}()
			logger.Infow("HTTP server started", "address", listen)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server.")
			return s.echo.Shutdown(ctx)
		},
	})
}

func (s *HTTPServer) Handler() http.Handler {
	return s.echo
}

func (s *HTTPServer) BookmarkList(c echo.Context) error {
	bookmarks, err := s.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookmarks)
}

func (s *HTTPServer) BookmarkGet(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	b, err := s.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

func (s *HTTPServer) BookmarkCreate(c echo.Context) error {
	payload, err := s.bindPayload(c)
	if err != nil {
		return err
	}

	b, err := s.service.Create(c.Request().Context(), payload)
	if err != nil {
		return err
	}

	location := path.Join(c.Request().URL.Path, strconv.FormatUint(b.ID, 10))
	c.Response().Header().Set(echo.HeaderLocation, location)
	return c.JSON(http.StatusCreated, b)
}

func (s *HTTPServer) BookmarkUpdate(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	payload, err := s.bindPayload(c)
	if err != nil {
		return err
	}

	if err := s.service.Update(c.Request().Context(), id, payload); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) BookmarkDelete(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AuthMiddleware accepts requests carrying "Authorization: Bearer <API token>".
func (s *HTTPServer) AuthMiddleware() echo.MiddlewareFunc {
	token := []byte(s.cfg.APIToken)
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup:  "header:" + echo.HeaderAuthorization,
		AuthScheme: "Bearer",
		Validator: func(key string, c echo.Context) (bool, error) {
			return subtle.ConstantTimeCompare([]byte(key), token) == 1, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			s.logger.Errorw("unauthorized request", "path", c.Request().URL.Path, "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, unauthorizedMessage)
		},
	})
}

// ErrorHandler writes every error as {"error": {"message": ...}}.
func (s *HTTPServer) ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, message := s.resolveError(err)
	if status >= http.StatusInternalServerError {
		s.logger.Errorw("request failed", "path", c.Request().URL.Path, "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, models.NewErrorResp(message))
	}
	if err != nil {
		s.logger.Errorw("write error response", "error", err)
	}
}

func (s *HTTPServer) resolveError(err error) (int, string) {
	var (
		vErr    *validation.Error
		httpErr *echo.HTTPError
	)
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, vErr.Error()
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, service.NotFoundMessage
	case errors.As(err, &httpErr):
		if httpErr.Internal != nil && httpErr.Code >= http.StatusInternalServerError {
			return s.internalError(httpErr.Internal)
		}
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, msg
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	default:
		return s.internalError(err)
	}
}

func (s *HTTPServer) internalError(err error) (int, string) {
	if s.cfg.IsProduction() {
		return http.StatusInternalServerError, "server error"
	}
	return http.StatusInternalServerError, err.Error()
}

// bindPayload decodes a JSON body. Bodies in any other media type are read as
// an empty payload and left to validation.
func (s *HTTPServer) bindPayload(c echo.Context) (map[string]interface{}, error) {
	payload := map[string]interface{}{}
	err := s.bodyBind.BindBody(c, &payload)
	if errors.Is(err, echo.ErrUnsupportedMediaType) {
		s.logger.Debugw("ignoring non-JSON body", "content_type", c.Request().Header.Get(echo.HeaderContentType))
		return map[string]interface{}{}, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

////////

func GetParam(c echo.Context, name string) (string, error) {
	value := c.Param(name)
	if value == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid path param '"+name+"'")
	}
	return value, nil
}

// GetAndParseParam parses a numeric id. Ids that are not numbers cannot
// exist, so they are reported as not found.
func GetAndParseParam(c echo.Context, name string) (uint64, error) {
	v, e := GetParam(c, name)
	if e != nil {
		return 0, e
	}
	vv, e := strconv.ParseUint(v, 10, 64)
	if e != nil {
		return 0, errors.Wrapf(service.ErrNotFound, "parse %s %q", name, v)
	}
	return vv, nil
}
