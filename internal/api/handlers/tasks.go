package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"xctask-route-service/internal/api/dto"
	"xctask-route-service/internal/ports"
)

// TaskHandler exposes task upload and retrieval endpoints.
type TaskHandler struct {
	Repo ports.TaskRepository
}

// Upload validates an XCTrack task document, stores it under its
// content-derived code, and returns the code. Uploading the same task again
// returns the same code.
func (h *TaskHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req dto.TaskRequest

	defer r.Body.Close()
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	dec := json.NewDecoder(bytes.NewReader(raw))

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	task, err := req.ToDomain()
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	code := task.Code()
	if err := h.Repo.SaveTask(r.Context(), code, task, raw); err != nil {
		log.Printf("save task failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.UploadTaskResponse{Code: code})
}

// List returns the codes and names of all stored tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Repo.ListTasks(r.Context())
	if err != nil {
		log.Printf("list tasks failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListTasksResponse{Tasks: make([]dto.TaskSummaryResponse, 0, len(tasks))}
	for _, t := range tasks {
		res.Tasks = append(res.Tasks, dto.TaskSummaryResponse{Code: t.Code, Name: t.Name})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get returns the originally uploaded task document.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	_, raw, err := h.Repo.GetTask(r.Context(), code)
	if errors.Is(err, ports.ErrTaskNotFound) {
		writeError(w, r, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		log.Printf("get task failed: code=%s err=%v", code, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(raw); err != nil {
		log.Printf("write task failed: code=%s err=%v", code, err)
	}
}
