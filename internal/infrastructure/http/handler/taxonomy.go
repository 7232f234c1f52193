package handler

import (
	"net/http"

	"github.com/rezkam/taskpad/internal/domain"
	"github.com/rezkam/taskpad/internal/infrastructure/http/response"
)

type priorityResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"priority_name"`
	Color     string `json:"priority_color"`
	Level     int    `json:"priority_level"`
	IsDefault bool   `json:"is_default"`
}

func toPriorityResponses(priorities []domain.Priority) []priorityResponse {
	out := make([]priorityResponse, 0, len(priorities))
	for _, p := range priorities {
		out = append(out, priorityResponse{
			ID:        p.ID,
			Name:      p.Name,
			Color:     p.Color,
			Level:     p.Level,
			IsDefault: p.IsDefault,
		})
	}
	return out
}

func (s *Server) handleListPriorities(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	priorities, err := s.taxonomy.ListPriorities(r.Context(), uid)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, toPriorityResponses(priorities))
}

type priorityRequest struct {
	Name  string `json:"priority_name"`
	Color string `json:"priority_color"`
	Level int    `json:"priority_level"`
}

func (s *Server) handleAddPriority(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req priorityRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	if err := s.taxonomy.CreatePriority(r.Context(), uid, req.Name, req.Color, req.Level); err != nil {
		response.Error(w, r, err)
		return
	}

	response.Message(w, http.StatusCreated, "priority added successfully")
}

func (s *Server) handleUpdatePriority(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	var req priorityRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	if err := s.taxonomy.UpdatePriority(r.Context(), uid, id, req.Name, req.Color, req.Level); err != nil {
		response.Error(w, r, err)
		return
	}

	response.Message(w, http.StatusOK, "priority updated successfully")
}

func (s *Server) handleDeletePriority(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := s.taxonomy.DeletePriority(r.Context(), uid, id); err != nil {
		response.Error(w, r, err)
		return
	}

	response.Message(w, http.StatusOK, "priority deleted successfully")
}

type statusResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"status_name"`
	Color     string `json:"status_color"`
	IsDefault bool   `json:"is_default"`
}

func toStatusResponses(statuses []domain.Status) []statusResponse {
	out := make([]statusResponse, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, statusResponse{
			ID:        st.ID,
			Name:      st.Name,
			Color:     st.Color,
			IsDefault: st.IsDefault,
		})
	}
	return out
}

func (s *Server) handleListStatuses(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	statuses, err := s.taxonomy.ListStatuses(r.Context(), uid)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, toStatusResponses(statuses))
}

type statusRequest struct {
	Name  string `json:"status_name"`
	Color string `json:"status_color"`
}

func (s *Server) handleAddStatus(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	if err := s.taxonomy.CreateStatus(r.Context(), uid, req.Name, req.Color); err != nil {
		response.Error(w, r, err)
		return
	}

	response.Message(w, http.StatusCreated, "status added successfully")
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	if err := s.taxonomy.UpdateStatus(r.Context(), uid, id, req.Name, req.Color); err != nil {
		response.Error(w, r, err)
		return
	}

	response.Message(w, http.StatusOK, "status updated successfully")
}

func (s *Server) handleDeleteStatus(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := s.taxonomy.DeleteStatus(r.Context(), uid, id); err != nil {
		response.Error(w, r, err)
		return
	}

	response.Message(w, http.StatusOK, "status deleted successfully")
}
