// Package handler adapts HTTP requests to application service calls. Route
// paths and JSON field names follow the existing client contract, which
// mounts everything under /auth.
package handler

import (
	"github.com/go-chi/chi/v5"

	"github.com/rezkam/taskpad/internal/application/auth"
	"github.com/rezkam/taskpad/internal/application/task"
	"github.com/rezkam/taskpad/internal/application/taxonomy"
	mw "github.com/rezkam/taskpad/internal/infrastructure/http/middleware"
	"github.com/rezkam/taskpad/internal/storage"
)

// Server bundles the application services behind the HTTP surface.
type Server struct {
	auth     *auth.Authenticator
	taxonomy *taxonomy.Service
	tasks    *task.Service
	blobs    storage.BlobStore
	limiter  *auth.LoginLimiter
}

// New creates the HTTP handler layer.
func New(authenticator *auth.Authenticator, taxonomySvc *taxonomy.Service, taskSvc *task.Service, blobs storage.BlobStore, limiter *auth.LoginLimiter) *Server {
	return &Server{
		auth:     authenticator,
		taxonomy: taxonomySvc,
		tasks:    taskSvc,
		blobs:    blobs,
		limiter:  limiter,
	}
}

// Routes builds the /auth subtree: the three public endpoints, then
// everything else behind token validation.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/register", s.handleRegister)
	r.With(mw.LoginRateLimit(s.limiter)).Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(mw.NewAuth(s.auth).Validate)

		r.Get("/dashboard", s.handleDashboard)
		r.Put("/update", s.handleUpdateProfile)
		r.Put("/change-password", s.handleChangePassword)
		r.Put("/upload-profile-picture", s.handleUploadProfilePicture)

		r.Get("/priorities", s.handleListPriorities)
		r.Post("/add-priority", s.handleAddPriority)
		r.Put("/priorities/{id}", s.handleUpdatePriority)
		r.Delete("/priorities/{id}", s.handleDeletePriority)

		r.Get("/statuses", s.handleListStatuses)
		r.Post("/add-statuses", s.handleAddStatus)
		r.Put("/statuses/{id}", s.handleUpdateStatus)
		r.Delete("/statuses/{id}", s.handleDeleteStatus)

		r.Get("/categories", s.handleListCategories)
		r.Post("/add-category", s.handleAddCategory)
		r.Delete("/categories/{id}", s.handleDeleteCategory)

		r.Get("/category_values", s.handleListCategoryValues)
		r.Post("/add-category_values", s.handleAddCategoryValue)
		r.Put("/category_values/{id}", s.handleUpdateCategoryValue)
		r.Delete("/category_values/{id}", s.handleDeleteCategoryValue)

		r.Get("/tasks", s.handleListTasks)
		r.Post("/add-task", s.handleAddTask)
		r.Put("/edit-tasks/{id}", s.handleEditTask)
		r.Delete("/tasks/{id}", s.handleDeleteTask)
	})

	return r
}
