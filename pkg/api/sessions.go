package api

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/perfwall/pkg/cost"
	"github.com/matzehuels/perfwall/pkg/errors"
	"github.com/matzehuels/perfwall/pkg/raster"
	"github.com/matzehuels/perfwall/pkg/render/sink"
	"github.com/matzehuels/perfwall/pkg/session"
	"github.com/matzehuels/perfwall/pkg/wall"
)

// paramsRequest is the body of POST /sessions and PUT /sessions/{id}/params.
type paramsRequest struct {
	Params *wall.Params      `json:"params"`
	Values map[string]string `json:"values,omitempty"`
}

func (q paramsRequest) resolve() (wall.Params, error) {
	wr := wallRequest{Params: q.Params, Values: q.Values}
	return wr.params()
}

// lookup loads the session named in the URL. It writes the error response
// itself and returns nil on failure.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) *session.Session {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return nil
	}
	return sess
}

// save stores sess after a mutation and writes its snapshot.
func (s *Server) save(w http.ResponseWriter, r *http.Request, sess *session.Session, status int) {
	if err := s.sessions.Set(r.Context(), sess); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "store session"))
		return
	}
	writeJSON(w, status, sess.Snapshot())
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	p := wall.Defaults()
	q := paramsRequest{Params: &p}
	if err := s.decodeJSON(w, r, &q); err != nil {
		s.writeError(w, r, err)
		return
	}
	params, err := q.resolve()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sess := session.New(params)
	w.Header().Set("Location", "/sessions/"+sess.ID())
	s.save(w, r, sess, http.StatusCreated)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	if sess := s.lookup(w, r); sess != nil {
		writeJSON(w, http.StatusOK, sess.Snapshot())
	}
}

// handleSetParams replaces the session's parameters. Fields missing from
// params keep their current values.
func (s *Server) handleSetParams(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}
	p := sess.Params()
	q := paramsRequest{Params: &p}
	if err := s.decodeJSON(w, r, &q); err != nil {
		s.writeError(w, r, err)
		return
	}
	params, err := q.resolve()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := sess.SetParams(params); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.save(w, r, sess, http.StatusOK)
}

// handleSetImage takes the raw encoded image as the request body.
func (s *Server) handleSetImage(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(http.MaxBytesReader(w, r.Body, s.maxUpload)); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read image upload"))
		return
	}
	img, _, err := raster.Decode(&buf)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := sess.SetImage(raster.Fit(img, s.maxImage)); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.save(w, r, sess, http.StatusOK)
}

func (s *Server) handleClearImage(w http.ResponseWriter, r *http.Request) {
	if sess := s.lookup(w, r); sess != nil {
		sess.ClearImage()
		s.save(w, r, sess, http.StatusOK)
	}
}

func (s *Server) handleRotate(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}
	if err := sess.RotateImage(); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.save(w, r, sess, http.StatusOK)
}

func (s *Server) handleSessionLayout(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}
	res, err := sess.Compute()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := []sink.JSONOption{sink.WithJSONBreakdown(res.Breakdown)}
	if r.URL.Query().Get("scene") != "" {
		opts = append(opts, sink.WithJSONScene())
	}
	data, err := sink.RenderJSON(res.Layout, opts...)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleSessionCost(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}
	res, err := sess.Compute()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, costResponse{
		Breakdown: res.Breakdown,
		Summary:   cost.Summary(res.Layout.Params, res.Breakdown),
	})
}
