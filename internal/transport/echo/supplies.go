package echo

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"supply-service/internal/catalog"
	"supply-service/internal/report"
	"supply-service/internal/stock"
	apperrors "supply-service/pkg/errors"
)

const (
	formatJSON = "json"
	formatXLSX = "xlsx"

	msgUnknownCategory = "unknown category"
	msgUnknownFormat   = "format must be json or xlsx"
)

type categoriesResponse struct {
	Categories    []catalog.Option            `json:"categories"`
	Subcategories map[string][]catalog.Option `json:"subcategories"`
}

func (s *Server) listCategoriesHandler(c echo.Context) error {
	return respondSuccess(c, categoriesResponse{
		Categories:    catalog.Categories(),
		Subcategories: catalog.Subcategories(),
	})
}

type variationsResponse struct {
	Category   string           `json:"category"`
	Label      string           `json:"label"`
	Variations []catalog.Option `json:"variations"`
}

func (s *Server) listVariationsHandler(c echo.Context) error {
	category := c.Param("category")
	if !catalog.IsCategory(category) {
		return apperrors.NotFound(msgUnknownCategory)
	}

	variations := catalog.Variations(category)
	if variations == nil {
		variations = []catalog.Option{}
	}
	return respondSuccess(c, variationsResponse{
		Category:   category,
		Label:      catalog.CategoryLabel(category),
		Variations: variations,
	})
}

type lowStockReportRequest struct {
	Items []report.Item `json:"items" validate:"required,max=10000,dive"`
}

// lowStockReportHandler classifies the posted inventory snapshot. The
// inventory itself lives in the dashboard backend, which posts its items.
func (s *Server) lowStockReportHandler(c echo.Context) error {
	var req lowStockReportRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	filter, err := report.ParseFilter(c.QueryParam("filter"))
	if err != nil {
		return apperrors.BadRequest(err.Error())
	}

	format := c.QueryParam("format")
	if format == "" {
		format = formatJSON
	}
	if format != formatJSON && format != formatXLSX {
		return apperrors.BadRequest(msgUnknownFormat)
	}

	items := make([]report.Item, len(req.Items))
	for i, it := range req.Items {
		if it.MinQuantity <= 0 {
			it.MinQuantity = s.config.Stock.DefaultMinQuantity
		}
		items[i] = it
	}

	r := report.Build(items, filter, s.now())
	for _, status := range stock.AllStatuses {
		s.metrics.RecordStockClassifications(string(status), r.Totals[status])
	}

	if format == formatJSON {
		return respondSuccess(c, r)
	}

	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, r); err != nil {
		return apperrors.InternalServer("render report", err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", report.Filename(r)))
	return c.Blob(http.StatusOK, report.XLSXContentType, buf.Bytes())
}
