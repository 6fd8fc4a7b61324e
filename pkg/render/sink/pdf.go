package sink

import (
	"context"

	"github.com/matzehuels/perfwall/pkg/render"
	"github.com/matzehuels/perfwall/pkg/wall"
)

// RenderPDF renders the elevation as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, l wall.Layout, opts ...Option) ([]byte, error) {
	return render.ToPDFContext(ctx, RenderSVG(l, opts...))
}
