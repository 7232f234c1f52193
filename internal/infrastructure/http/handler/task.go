package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/rezkam/taskpad/internal/domain"
	"github.com/rezkam/taskpad/internal/infrastructure/http/response"
)

type taskTagPayload struct {
	CategoryName string `json:"category_name"`
	ValueName    string `json:"value_name"`
	ValueColor   string `json:"value_color"`
}

type taskResponse struct {
	ID          int64            `json:"id"`
	Title       string           `json:"task_title"`
	Date        time.Time        `json:"date"`
	PriorityID  int64            `json:"priority_id"`
	StatusID    int64            `json:"status_id"`
	Image       *string          `json:"task_image"`
	Description string           `json:"task_description"`
	CompletedOn *time.Time       `json:"completedOn"`
	Tags        []taskTagPayload `json:"category_values"`
}

func toTaskResponse(t domain.Task) taskResponse {
	tags := make([]taskTagPayload, 0, len(t.Tags))
	for _, tag := range t.Tags {
		tags = append(tags, taskTagPayload{
			CategoryName: tag.CategoryName,
			ValueName:    tag.ValueName,
			ValueColor:   tag.ValueColor,
		})
	}
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Date:        t.Date,
		PriorityID:  t.PriorityID,
		StatusID:    t.StatusID,
		Image:       t.Image,
		Description: t.Description,
		CompletedOn: t.CompletedOn,
		Tags:        tags,
	}
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	tasks, err := s.tasks.List(r.Context(), uid)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	response.JSON(w, http.StatusOK, map[string][]taskResponse{"tasks": out})
}

// taskForm holds the multipart fields shared by create and edit.
type taskForm struct {
	Title       string
	Date        time.Time
	PriorityID  int64
	StatusID    int64
	Description string
	Image       *string
	Tags        []domain.TaskTag
}

// parseTaskForm reads the multipart task fields. Field absence is left for
// the service layer to validate; only values that are present but
// unparseable are rejected here. An image part, when present, is stored
// immediately and its serving path carried in the form.
func (s *Server) parseTaskForm(r *http.Request) (*taskForm, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, &domain.ValidationError{Field: "body", Issue: "is not valid multipart form data"}
	}

	form := &taskForm{
		Title:       r.FormValue("task_title"),
		Description: r.FormValue("task_description"),
	}

	if raw := r.FormValue("date"); raw != "" {
		date, err := parseDate(raw)
		if err != nil {
			return nil, err
		}
		form.Date = date
	}

	if raw := r.FormValue("priority_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &domain.ValidationError{Field: "priority_id", Issue: "must be an integer"}
		}
		form.PriorityID = id
	}

	if raw := r.FormValue("status_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &domain.ValidationError{Field: "status_id", Issue: "must be an integer"}
		}
		form.StatusID = id
	}

	form.Tags = parseExtraCategories(r.Context(), r.FormValue("extra_categories"))

	if _, fh, err := r.FormFile("task_image"); err == nil {
		path, err := s.saveUpload(r.Context(), fh)
		if err != nil {
			return nil, err
		}
		form.Image = &path
	}

	return form, nil
}

// parseDate accepts the formats the client is known to send.
func parseDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &domain.ValidationError{Field: "date", Issue: "is not a valid date"}
}

// parseExtraCategories decodes the JSON-array tag field. A missing or
// unparseable value is treated as an empty tag set rather than an error,
// matching what clients already rely on.
func parseExtraCategories(ctx context.Context, raw string) []domain.TaskTag {
	if raw == "" {
		return nil
	}

	var payload []taskTagPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		slog.WarnContext(ctx, "ignoring unparseable extra_categories field", "error", err)
		return nil
	}

	tags := make([]domain.TaskTag, 0, len(payload))
	for _, p := range payload {
		tags = append(tags, domain.TaskTag{
			CategoryName: p.CategoryName,
			ValueName:    p.ValueName,
			ValueColor:   p.ValueColor,
		})
	}
	return tags
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	form, err := s.parseTaskForm(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	created, err := s.tasks.Create(r.Context(), uid, domain.CreateTaskParams{
		Title:       form.Title,
		Date:        form.Date,
		PriorityID:  form.PriorityID,
		Description: form.Description,
		Image:       form.Image,
		Tags:        form.Tags,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, toTaskResponse(*created))
}

func (s *Server) handleEditTask(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	form, err := s.parseTaskForm(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	err = s.tasks.Edit(r.Context(), uid, id, domain.EditTaskParams{
		Title:       form.Title,
		Date:        form.Date,
		PriorityID:  form.PriorityID,
		StatusID:    form.StatusID,
		Description: form.Description,
		Image:       form.Image,
		Tags:        form.Tags,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.Message(w, http.StatusOK, "task updated successfully")
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := s.tasks.Delete(r.Context(), uid, id); err != nil {
		response.Error(w, r, err)
		return
	}

	response.Message(w, http.StatusOK, "task deleted successfully")
}
