package handlers

import (
	"net/http"
	"strings"

	"github.com/andrewpaige1/lexideck-api/models"
	"github.com/andrewpaige1/lexideck-api/store"
)

type folderRequest struct {
	Name         string  `json:"name" validate:"required,max=100"`
	Description  string  `json:"description" validate:"max=500"`
	Color        string  `json:"color" validate:"omitempty,len=7,hexcolor"`
	Icon         string  `json:"icon" validate:"max=50"`
	ParentFolder *string `json:"parentFolder"`
}

type folderUpdateRequest struct {
	Name         *string        `json:"name" validate:"omitempty,min=1,max=100"`
	Description  *string        `json:"description" validate:"omitempty,max=500"`
	Color        *string        `json:"color" validate:"omitempty,len=7,hexcolor"`
	Icon         *string        `json:"icon" validate:"omitempty,max=50"`
	ParentFolder optionalString `json:"parentFolder"`
}

type moveFolderRequest struct {
	ParentFolder optionalString `json:"parentFolder"`
}

type folderCardRequest struct {
	FlashcardID string `json:"flashcardId" validate:"required"`
}

// GetFolders lists folders. ?parentFolder=<id> lists one folder's children
// and ?rootsOnly=true the top level.
func (h *Handler) GetFolders(w http.ResponseWriter, r *http.Request) {
	rootsOnly, err := queryBool(r, "rootsOnly")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	folders, err := h.Store.ListFolders(r.Context(), currentUser(r).ID,
		queryString(r, "parentFolder"), rootsOnly != nil && *rootsOnly)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Folders retrieved successfully", folders)
}

func (h *Handler) GetFolder(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Store.GetFolderDetail(r.Context(), currentUser(r).ID, r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Folder retrieved successfully", detail)
}

func (h *Handler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req folderRequest
	if err := h.decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	folder := &models.Folder{
		UserID:      currentUser(r).ID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
	}
	if req.ParentFolder != nil && *req.ParentFolder != "" {
		folder.ParentFolderID = req.ParentFolder
	}
	if err := h.Store.CreateFolder(r.Context(), folder); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusCreated, "Folder created successfully", folder)
}

func (h *Handler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	var req folderUpdateRequest
	if err := h.decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	folder, err := h.Store.UpdateFolder(r.Context(), currentUser(r).ID, r.PathValue("id"), store.FolderUpdate{
		Name:           req.Name,
		Description:    req.Description,
		Color:          req.Color,
		Icon:           req.Icon,
		MoveParent:     req.ParentFolder.Set,
		ParentFolderID: req.ParentFolder.Value,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Folder updated successfully", folder)
}

// MoveFolder re-parents a folder; a null or missing parentFolder moves it to the top level.
func (h *Handler) MoveFolder(w http.ResponseWriter, r *http.Request) {
	var req moveFolderRequest
	if err := h.decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	folder, err := h.Store.MoveFolder(r.Context(), currentUser(r).ID, r.PathValue("id"), req.ParentFolder.Value)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Folder moved successfully", folder)
}

func (h *Handler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteFolder(r.Context(), currentUser(r).ID, r.PathValue("id")); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Folder deleted successfully", nil)
}

func (h *Handler) RecountFolder(w http.ResponseWriter, r *http.Request) {
	folder, err := h.Store.RecountFolder(r.Context(), currentUser(r).ID, r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Folder count recomputed successfully", folder)
}

func (h *Handler) AddCardToFolder(w http.ResponseWriter, r *http.Request) {
	var req folderCardRequest
	if err := h.decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	userID := currentUser(r).ID
	card, err := h.Store.AddCardToFolder(r.Context(), userID, r.PathValue("id"), req.FlashcardID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	folder, err := h.Store.GetFolder(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Flashcard added to folder successfully", map[string]any{
		"flashcard": card,
		"folder":    folder,
	})
}

func (h *Handler) RemoveCardFromFolder(w http.ResponseWriter, r *http.Request) {
	userID := currentUser(r).ID
	if err := h.Store.RemoveCardFromFolder(r.Context(), userID, r.PathValue("id"), r.PathValue("cardId")); err != nil {
		h.fail(w, r, err)
		return
	}
	card, err := h.Store.GetFlashcard(r.Context(), userID, r.PathValue("cardId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Flashcard removed from folder successfully", card)
}
