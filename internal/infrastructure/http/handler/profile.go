package handler

import (
	"net/http"

	"github.com/rezkam/taskpad/internal/domain"
	"github.com/rezkam/taskpad/internal/infrastructure/http/response"
)

type userResponse struct {
	ID             int64   `json:"id"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	FirstName      string  `json:"firstname"`
	LastName       string  `json:"lastname"`
	ContactNumber  string  `json:"contactnumber"`
	Position       string  `json:"position"`
	ProfilePicture *string `json:"profile_picture"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		ContactNumber:  u.ContactNumber,
		Position:       u.Position,
		ProfilePicture: u.ProfilePicture,
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	user, err := s.auth.Dashboard(r.Context(), uid)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, toUserResponse(user))
}

type updateProfileRequest struct {
	FirstName     *string `json:"firstname"`
	LastName      *string `json:"lastname"`
	Email         *string `json:"email"`
	ContactNumber *string `json:"contactnumber"`
	Position      *string `json:"position"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	err := s.auth.UpdateProfile(r.Context(), uid, domain.UpdateProfileParams{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
		Position:      req.Position,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.Message(w, http.StatusOK, "profile updated successfully")
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	if err := s.auth.ChangePassword(r.Context(), uid, req.OldPassword, req.NewPassword); err != nil {
		response.Error(w, r, err)
		return
	}

	response.Message(w, http.StatusOK, "password changed successfully")
}

func (s *Server) handleUploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		response.Error(w, r, &domain.ValidationError{Field: "body", Issue: "is not valid multipart form data"})
		return
	}

	_, fh, err := r.FormFile("profile_picture")
	if err != nil {
		response.Error(w, r, domain.MissingField("profile_picture"))
		return
	}

	path, err := s.saveUpload(r.Context(), fh)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := s.auth.SetProfilePicture(r.Context(), uid, path); err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{
		"message":   "profile picture uploaded successfully",
		"imagePath": path,
	})
}
