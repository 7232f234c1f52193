package handler

import (
	"net/http"

	"github.com/rezkam/taskpad/internal/infrastructure/http/response"
)

type categoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"category_name"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	categories, err := s.taxonomy.ListCategories(r.Context(), uid)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryResponse{ID: c.ID, Name: c.Name})
	}
	response.JSON(w, http.StatusOK, out)
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"category_name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	if err := s.taxonomy.CreateCategory(r.Context(), uid, req.Name); err != nil {
		response.Error(w, r, err)
		return
	}

	response.Message(w, http.StatusCreated, "category added successfully")
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := s.taxonomy.DeleteCategory(r.Context(), uid, id); err != nil {
		response.Error(w, r, err)
		return
	}

	response.Message(w, http.StatusOK, "category deleted successfully")
}

type categoryValueResponse struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"category_id"`
	Name       string `json:"value_name"`
	Color      string `json:"value_color"`
}

func (s *Server) handleListCategoryValues(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	values, err := s.taxonomy.ListCategoryValues(r.Context(), uid)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	out := make([]categoryValueResponse, 0, len(values))
	for _, v := range values {
		out = append(out, categoryValueResponse{
			ID:         v.ID,
			CategoryID: v.CategoryID,
			Name:       v.Name,
			Color:      v.Color,
		})
	}
	response.JSON(w, http.StatusOK, out)
}

type categoryValueRequest struct {
	CategoryID int64  `json:"category_id"`
	Name       string `json:"value_name"`
	Color      string `json:"value_color"`
}

func (s *Server) handleAddCategoryValue(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req categoryValueRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	if err := s.taxonomy.CreateCategoryValue(r.Context(), uid, req.CategoryID, req.Name, req.Color); err != nil {
		response.Error(w, r, err)
		return
	}

	response.Message(w, http.StatusCreated, "category value added successfully")
}

func (s *Server) handleUpdateCategoryValue(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	var req categoryValueRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	if err := s.taxonomy.UpdateCategoryValue(r.Context(), uid, id, req.Name, req.Color); err != nil {
		response.Error(w, r, err)
		return
	}

	response.Message(w, http.StatusOK, "category value updated successfully")
}

func (s *Server) handleDeleteCategoryValue(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := s.taxonomy.DeleteCategoryValue(r.Context(), uid, id); err != nil {
		response.Error(w, r, err)
		return
	}

	response.Message(w, http.StatusOK, "category value deleted successfully")
}
