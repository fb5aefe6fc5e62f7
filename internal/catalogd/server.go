// Package catalogd is a small development backend that speaks the catalog
// product API on top of SQLite.
package catalogd

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/jask/catalogedit/internal/api"
	"github.com/jask/catalogedit/internal/catalog"
	"github.com/jask/catalogedit/internal/database/repository"
	"github.com/jask/catalogedit/internal/service"
)

// Server serves the product endpoints.
type Server struct {
	products *service.ProductService
	log      *zap.Logger
	e        *echo.Echo
}

// productView is the lookup response. Numbers go out as JSON numbers.
type productView struct {
	ProductID   string  `json:"productId"`
	VendorID    string  `json:"vendorId"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Discount    float64 `json:"discount"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand"`
	Inventory   int64   `json:"inventory"`
	Keywords    string  `json:"keywords"`
	Description string  `json:"description"`
}

type idRequest struct {
	ProductID string `json:"productId"`
}

type ack struct {
	OK bool `json:"ok"`
}

func New(db *sql.DB, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		products: &service.ProductService{Products: repository.NewProductRepo(db)},
		log:      log.Named("catalogd"),
		e:        echo.New(),
	}
	s.e.HideBanner = true
	s.e.HidePort = true
	s.e.HTTPErrorHandler = errorHandler(s.log)
	s.e.Use(middleware.Recover())
	s.e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	s.e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			s.log.Info("http_request", fields...)
			return nil
		},
	}))

	s.e.POST(api.PathGet, s.getProduct)
	s.e.POST(api.PathUpdate, s.updateProduct)
	s.e.POST(api.PathDelete, s.deleteProduct)
	s.e.GET("/api/products", s.listProducts)
	return s
}

// Handler exposes the router for http.Server and httptest.
func (s *Server) Handler() http.Handler { return s.e }

func view(p repository.Product) productView {
	return productView{
		ProductID:   p.ID,
		VendorID:    p.VendorID,
		Title:       p.Title,
		Price:       p.Price,
		Image:       p.Image,
		Discount:    p.Discount,
		Category:    p.Category,
		Brand:       p.Brand,
		Inventory:   p.Inventory,
		Keywords:    p.Keywords,
		Description: p.Description,
	}
}

func (s *Server) getProduct(c echo.Context) error {
	var req idRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid_json", bindDetails(err))
	}
	p, err := s.products.Get(ctx(c), req.ProductID)
	if err != nil {
		return s.serviceError(c, req.ProductID, err)
	}
	return c.JSON(http.StatusOK, view(p))
}

func (s *Server) updateProduct(c echo.Context) error {
	var req catalog.UpdateRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid_json", bindDetails(err))
	}
	if err := s.products.Update(ctx(c), req); err != nil {
		return s.serviceError(c, req.ProductID, err)
	}
	s.log.Info("product updated", zap.String("product_id", req.ProductID), zap.String("vendor_id", req.VendorID))
	return c.JSON(http.StatusOK, ack{OK: true})
}

func (s *Server) deleteProduct(c echo.Context) error {
	var req idRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid_json", bindDetails(err))
	}
	if err := s.products.Delete(ctx(c), req.ProductID); err != nil {
		return s.serviceError(c, req.ProductID, err)
	}
	s.log.Info("product deleted", zap.String("product_id", req.ProductID))
	return c.JSON(http.StatusOK, ack{OK: true})
}

func (s *Server) listProducts(c echo.Context) error {
	f := repository.ProductFilters{
		VendorID: strings.TrimSpace(c.QueryParam("vendor")),
		Category: strings.TrimSpace(c.QueryParam("category")),
		Search:   strings.TrimSpace(c.QueryParam("q")),
	}
	rows, err := s.products.List(ctx(c), f)
	if err != nil {
		return s.serviceError(c, "", err)
	}
	out := make([]productView, 0, len(rows))
	for _, p := range rows {
		out = append(out, view(p))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) serviceError(c echo.Context, id string, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return fail(c, http.StatusBadRequest, "validation_error", verr.Error())
	case errors.Is(err, repository.ErrNotFound):
		return fail(c, http.StatusNotFound, "not_found", "product "+id+" not found")
	case errors.Is(err, service.ErrForbidden):
		s.log.Warn("update rejected", zap.String("product_id", id))
		return fail(c, http.StatusForbidden, "forbidden", err.Error())
	}
	return s.dbError(c, err)
}

func (s *Server) dbError(c echo.Context, err error) error {
	s.log.Error("database error", zap.Error(err))
	return fail(c, http.StatusInternalServerError, "database_error", err.Error())
}

func ctx(c echo.Context) context.Context { return c.Request().Context() }

func bindDetails(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			return he.Internal.Error()
		}
		if msg, ok := he.Message.(string); ok {
			return msg
		}
	}
	return err.Error()
}
