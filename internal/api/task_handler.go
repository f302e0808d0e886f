package api

import (
	"net/http"
	"time"

	"lovetasks/internal/model"
	"lovetasks/internal/service"
)

// TaskHandler exposes the task lifecycle over HTTP.
type TaskHandler struct {
	tasks *service.TaskService
}

func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

type taskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	PartnerTag  string     `json:"partnerTag"`
	LoveType    string     `json:"loveType"`
	DueDate     *time.Time `json:"dueDate"`
	IsShared    bool       `json:"isShared"`
	Points      int        `json:"points"`
}

func (req taskRequest) toInput() service.TaskInput {
	return service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    model.Priority(req.Priority),
		PartnerTag:  model.PartnerTag(req.PartnerTag),
		LoveType:    model.LoveType(req.LoveType),
		DueDate:     req.DueDate,
		IsShared:    req.IsShared,
		Points:      req.Points,
	}
}

type reviewRequest struct {
	Points  int    `json:"points"`
	Comment string `json:"comment"`
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident := requireIdentity(w, r)
	if ident == nil {
		return
	}
	var req taskRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	task, err := h.tasks.CreateTask(r.Context(), ident.User.ID, req.toInput())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ident := requireIdentity(w, r)
	if ident == nil {
		return
	}
	tasks, err := h.tasks.ListTasks(r.Context(), ident.User.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tasks": tasks})
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	ident := requireIdentity(w, r)
	if ident == nil {
		return
	}
	task, err := h.tasks.GetTask(r.Context(), ident.User.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident := requireIdentity(w, r)
	if ident == nil {
		return
	}
	var req taskRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	task, err := h.tasks.EditTask(r.Context(), ident.User.ID, r.PathValue("id"), req.toInput())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident := requireIdentity(w, r)
	if ident == nil {
		return
	}
	if err := h.tasks.DeleteTask(r.Context(), ident.User.ID, r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ident := requireIdentity(w, r)
	if ident == nil {
		return
	}
	task, err := h.tasks.ToggleComplete(r.Context(), ident.User.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ident := requireIdentity(w, r)
	if ident == nil {
		return
	}
	task, err := h.tasks.SubmitForReview(r.Context(), ident.User.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Approve(w http.ResponseWriter, r *http.Request) {
	ident := requireIdentity(w, r)
	if ident == nil {
		return
	}
	var req reviewRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	task, err := h.tasks.ApproveTask(r.Context(), ident.User.ID, r.PathValue("id"), service.ReviewInput{
		Points:  req.Points,
		Comment: req.Comment,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Reject(w http.ResponseWriter, r *http.Request) {
	ident := requireIdentity(w, r)
	if ident == nil {
		return
	}
	var req reviewRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	task, err := h.tasks.RejectTask(r.Context(), ident.User.ID, r.PathValue("id"), req.Comment)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) PendingReview(w http.ResponseWriter, r *http.Request) {
	ident := requireIdentity(w, r)
	if ident == nil {
		return
	}
	tasks, err := h.tasks.ListPendingReview(r.Context(), ident.User.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tasks": tasks})
}
