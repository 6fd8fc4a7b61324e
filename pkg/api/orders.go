package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/perfwall/pkg/order"
	"github.com/matzehuels/perfwall/pkg/wall"
)

// orderRequest is the body of POST /orders. With SessionID the order is
// priced from the session's own layout: its parameters and hole count
// replace whatever the body carries. Without it, Params and HoleCount are
// the client's quote and are priced as given.
type orderRequest struct {
	order.Request
	SessionID string `json:"sessionID,omitempty"`
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	q := orderRequest{Request: order.Request{Params: wall.Defaults()}}
	if err := s.decodeJSON(w, r, &q); err != nil {
		s.writeError(w, r, err)
		return
	}
	req := q.Request
	if q.SessionID != "" {
		sess, err := s.sessions.Get(r.Context(), q.SessionID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		res, err := sess.Compute()
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		req.Params, req.HoleCount = res.Layout.Params, res.Layout.TotalHoleCount
	}

	o, err := s.orders.Submit(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/orders/"+o.ID)
	writeJSON(w, http.StatusCreated, o)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := s.orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}
