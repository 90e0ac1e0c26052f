package server

import (
	"net/http"
	"time"

	"github.com/theokkk4/remindmap/pkg/remindmap/graph"
	"github.com/theokkk4/remindmap/pkg/remindmap/insights"
	"github.com/theokkk4/remindmap/pkg/remindmap/item"
)

type textRequest struct {
	Text string `json:"text" validate:"max=65536"`
}

type itemsRequest struct {
	Items []item.Item `json:"items" validate:"max=5000"`
}

type relatedRequest struct {
	Target     item.Item   `json:"target"`
	Candidates []item.Item `json:"candidates" validate:"max=5000"`
	// Threshold overrides the configured query threshold when set.
	Threshold *float64 `json:"threshold,omitempty" validate:"omitempty,gte=0,lte=1"`
}

type analyzeRequest struct {
	Item     item.Item   `json:"item"`
	Existing []item.Item `json:"existing" validate:"max=5000"`
}

func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"keywords": s.engine.ExtractKeywords(req.Text),
	})
}

func (s *Server) handleClusters(w http.ResponseWriter, r *http.Request) {
	var req itemsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	clusters, err := s.engine.Clusters(req.Items)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"clusters": clusters,
		"top":      s.engine.TopClusters(req.Items, 0),
	})
}

func (s *Server) handleRelated(w http.ResponseWriter, r *http.Request) {
	var req relatedRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var related []graph.RelatedPair
	if req.Threshold != nil {
		related = s.engine.FindRelated(req.Target, req.Candidates, *req.Threshold)
	} else {
		related = s.engine.Related(req.Target, req.Candidates)
	}
	writeJSON(w, http.StatusOK, map[string]any{"related": related})
}

type graphResponse struct {
	Edges         []graph.Edge         `json:"edges"`
	PriorityLinks []graph.PriorityLink `json:"priorityLinks"`
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	var req itemsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	edges, err := s.engine.BuildGraph(req.Items)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, graphResponse{
		Edges:         edges,
		PriorityLinks: s.engine.PriorityChains(req.Items),
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"suggestions": s.engine.AnalyzeNewItem(req.Item, req.Existing),
		"color":       s.engine.SuggestColor(req.Item.Title, req.Item.Description),
	})
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	var req itemsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"insights": s.engine.MapInsights(req.Items),
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req itemsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]insights.Layout{
		"layout": s.engine.SuggestLayout(req.Items),
	})
}

type dueDateResponse struct {
	Found bool       `json:"found"`
	Due   *time.Time `json:"due,omitempty"`
}

func (s *Server) handleDueDate(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp := dueDateResponse{}
	if due, ok := s.engine.DetectDueDate(req.Text); ok {
		resp = dueDateResponse{Found: true, Due: &due}
	}
	writeJSON(w, http.StatusOK, resp)
}
