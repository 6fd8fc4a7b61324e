package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/perfwall/pkg/buildinfo"
	"github.com/matzehuels/perfwall/pkg/config"
	"github.com/matzehuels/perfwall/pkg/cost"
	"github.com/matzehuels/perfwall/pkg/errors"
	"github.com/matzehuels/perfwall/pkg/pipeline"
	"github.com/matzehuels/perfwall/pkg/raster"
	"github.com/matzehuels/perfwall/pkg/render/finish"
	"github.com/matzehuels/perfwall/pkg/render/sink"
	"github.com/matzehuels/perfwall/pkg/source"
	"github.com/matzehuels/perfwall/pkg/wall"
)

// wallRequest is the body shared by /layout, /cost and /render.
//
// Params is decoded on top of the defaults and validated strictly. Values,
// when present, takes precedence and is parsed leniently the way a form
// post is: bad fields fall back to their defaults.
type wallRequest struct {
	Params    *wall.Params      `json:"params"`
	Values    map[string]string `json:"values,omitempty"`
	ImageURL  string            `json:"imageURL,omitempty"`
	ImageData []byte            `json:"imageData,omitempty"` // base64 in JSON
	Rotate    int               `json:"rotate,omitempty"`    // quarter turns
}

func newWallRequest() wallRequest {
	p := wall.Defaults()
	return wallRequest{Params: &p}
}

func (q *wallRequest) params() (wall.Params, error) {
	if q.Values != nil {
		return config.ParseValues(q.Values), nil
	}
	if q.Params == nil {
		return wall.Defaults(), nil
	}
	return *q.Params, q.Params.Validate()
}

// image decodes the inline image or downloads ImageURL. It returns nil
// when the request carries no image.
func (s *Server) image(ctx context.Context, q *wallRequest) (*raster.Image, error) {
	var img *raster.Image
	switch {
	case len(q.ImageData) > 0:
		m, _, err := raster.DecodeBytes(q.ImageData)
		if err != nil {
			return nil, err
		}
		img = raster.Fit(m, s.maxImage)
	case q.ImageURL != "":
		if source.KindOf(q.ImageURL) != source.KindURL {
			return nil, errors.New(errors.ErrCodeInvalidInput, "imageURL must be an http(s) URL")
		}
		loaded, err := s.runner.LoadImage(ctx, pipeline.Options{Image: q.ImageURL, MaxImageSize: s.maxImage})
		if err != nil {
			return nil, err
		}
		img = loaded.Image
	default:
		return nil, nil
	}
	for range ((q.Rotate % 4) + 4) % 4 {
		img = img.Rotate90()
	}
	return img, nil
}

func (s *Server) layout(ctx context.Context, q *wallRequest) (wall.Layout, bool, error) {
	p, err := q.params()
	if err != nil {
		return wall.Layout{}, false, err
	}
	img, err := s.image(ctx, q)
	if err != nil {
		return wall.Layout{}, false, err
	}
	return s.runner.LayoutWithCacheInfo(ctx, p, img, false)
}

func cacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Current()})
}

type materialInfo struct {
	cost.Material
	Finish finish.Finish `json:"finish"`
}

func (s *Server) handleMaterials(w http.ResponseWriter, r *http.Request) {
	ms := cost.Materials()
	out := make([]materialInfo, len(ms))
	for i, m := range ms {
		f, _ := finish.Lookup(m.Key)
		out[i] = materialInfo{Material: m, Finish: f}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	q := newWallRequest()
	if err := s.decodeJSON(w, r, &q); err != nil {
		s.writeError(w, r, err)
		return
	}
	l, hit, err := s.layout(r.Context(), &q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var opts []sink.JSONOption
	if r.URL.Query().Get("scene") != "" {
		opts = append(opts, sink.WithJSONScene())
	}
	data, err := sink.RenderJSON(l, opts...)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cacheHeader(w, hit)
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

type costRequest struct {
	wallRequest
	HoleCount *int `json:"holeCount,omitempty"`
}

type costResponse struct {
	Breakdown cost.Breakdown `json:"breakdown"`
	Summary   []string       `json:"summary"`
}

// handleCost prices a wall. With holeCount the layout is skipped and the
// count is priced directly.
func (s *Server) handleCost(w http.ResponseWriter, r *http.Request) {
	q := costRequest{wallRequest: newWallRequest()}
	if err := s.decodeJSON(w, r, &q); err != nil {
		s.writeError(w, r, err)
		return
	}

	var b cost.Breakdown
	var p wall.Params
	if q.HoleCount != nil {
		var err error
		if p, err = q.params(); err != nil {
			s.writeError(w, r, err)
			return
		}
		if *q.HoleCount < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "holeCount must be >= 0"))
			return
		}
		b = cost.Estimate(p, wall.NewPartition(p), *q.HoleCount)
	} else {
		l, _, err := s.layout(r.Context(), &q.wallRequest)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		p, b = l.Params, cost.EstimateLayout(l)
	}
	writeJSON(w, http.StatusOK, costResponse{Breakdown: b, Summary: cost.Summary(p, b)})
}

type renderRequest struct {
	wallRequest
	PixelsPerMeter float64 `json:"pixelsPerMeter,omitempty"`
	Dimensions     *bool   `json:"dimensions,omitempty"`
	Figure         *bool   `json:"figure,omitempty"`
	Ground         *bool   `json:"ground,omitempty"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

func orTrue(b *bool) bool { return b == nil || *b }

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	q := renderRequest{wallRequest: newWallRequest()}
	if err := s.decodeJSON(w, r, &q); err != nil {
		s.writeError(w, r, err)
		return
	}
	l, _, err := s.layout(r.Context(), &q.wallRequest)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{
		Formats:        []string{format},
		PixelsPerMeter: q.PixelsPerMeter,
		Dimensions:     orTrue(q.Dimensions),
		Figure:         orTrue(q.Figure),
		Ground:         orTrue(q.Ground),
		Logger:         s.logger,
	}
	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), l, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cacheHeader(w, hit)
	w.Header().Set("Content-Type", contentTypes[format])
	w.Write(artifacts[format])
}
