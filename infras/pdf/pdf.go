package pdf

//go:generate go run go.uber.org/mock/mockgen -source=./pdf.go -destination=./mocks/pdf_mock.go -package=mocks

import (
	"context"
	"strings"

	"lodge/config"
	"lodge/infras/otel"
	"lodge/shared/constant"
	"lodge/shared/failure"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/rs/zerolog/log"
)

// Renderer converts an HTML document into PDF bytes.
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

type rendererImpl struct {
	otel otel.Otel
}

func New(conf *config.Config, ot otel.Otel) Renderer {
	if conf.External.PDF.BinaryPath != "" {
		wkhtmltopdf.SetPath(conf.External.PDF.BinaryPath)
	}

	return &rendererImpl{
		otel: ot,
	}
}

func (r *rendererImpl) Render(ctx context.Context, html string) ([]byte, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelPDFScopeName, "Render")
	defer scope.End()

	generator, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("[Render] Failed to create PDF generator")
		return nil, failure.InternalError(err)
	}

	page := wkhtmltopdf.NewPageReader(strings.NewReader(html))
	page.EnableLocalFileAccess.Set(false)
	generator.AddPage(page)
	generator.PageSize.Set(wkhtmltopdf.PageSizeA4)

	if err := generator.CreateContext(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("[Render] Failed to render PDF")
		return nil, failure.InternalError(err)
	}

	return generator.Bytes(), nil
}
