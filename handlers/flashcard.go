package handlers

import (
	"net/http"
	"strings"

	"github.com/andrewpaige1/lexideck-api/models"
	"github.com/andrewpaige1/lexideck-api/scheduler"
	"github.com/andrewpaige1/lexideck-api/store"
)

type flashcardRequest struct {
	FrontContent  string   `json:"frontContent" validate:"required"`
	FrontImage    string   `json:"frontImage" validate:"max=255"`
	BackContent   string   `json:"backContent" validate:"required"`
	BackImage     string   `json:"backImage" validate:"max=255"`
	Pronunciation string   `json:"pronunciation" validate:"max=100"`
	PartOfSpeech  string   `json:"partOfSpeech" validate:"omitempty,oneof=noun verb adjective adverb pronoun preposition conjunction interjection other"`
	Example       string   `json:"example"`
	ExampleSource string   `json:"exampleSource" validate:"max=255"`
	AudioURL      string   `json:"audioUrl" validate:"max=255"`
	Tags          []string `json:"tags" validate:"max=50,dive,max=50"`
	FolderID      *string  `json:"folderId"`
}

func (req flashcardRequest) toModel(userID string) *models.Flashcard {
	card := &models.Flashcard{
		UserID:        userID,
		FrontContent:  strings.TrimSpace(req.FrontContent),
		FrontImage:    req.FrontImage,
		BackContent:   strings.TrimSpace(req.BackContent),
		BackImage:     req.BackImage,
		Pronunciation: req.Pronunciation,
		PartOfSpeech:  req.PartOfSpeech,
		Example:       req.Example,
		ExampleSource: req.ExampleSource,
		AudioURL:      req.AudioURL,
		Tags:          req.Tags,
	}
	if req.FolderID != nil && *req.FolderID != "" {
		card.FolderID = req.FolderID
	}
	if card.Tags == nil {
		card.Tags = []string{}
	}
	return card
}

type bulkFlashcardRequest struct {
	Flashcards []flashcardRequest `json:"flashcards" validate:"required,min=1,max=500,dive"`
}

type flashcardUpdateRequest struct {
	FrontContent  *string        `json:"frontContent" validate:"omitempty,min=1"`
	FrontImage    *string        `json:"frontImage" validate:"omitempty,max=255"`
	BackContent   *string        `json:"backContent" validate:"omitempty,min=1"`
	BackImage     *string        `json:"backImage" validate:"omitempty,max=255"`
	Pronunciation *string        `json:"pronunciation" validate:"omitempty,max=100"`
	PartOfSpeech  *string        `json:"partOfSpeech" validate:"omitempty,oneof=noun verb adjective adverb pronoun preposition conjunction interjection other"`
	Example       *string        `json:"example"`
	ExampleSource *string        `json:"exampleSource" validate:"omitempty,max=255"`
	AudioURL      *string        `json:"audioUrl" validate:"omitempty,max=255"`
	Tags          *[]string      `json:"tags"`
	FolderID      optionalString `json:"folderId"`

	ReviewCount     *int  `json:"reviewCount"`
	ConfidenceLevel *int  `json:"confidenceLevel"`
	IsKnown         *bool `json:"isKnown"`
}

type answerRequest struct {
	ConfidenceLevel *int  `json:"confidenceLevel" validate:"required"`
	IsKnown         *bool `json:"isKnown"`
}

type reviewRequest struct {
	ConfidenceLevel *int  `json:"confidenceLevel"`
	IsKnown         *bool `json:"isKnown"`
}

type resetProgressRequest struct {
	FolderID string `json:"folderId" validate:"required"`
}

func (h *Handler) GetFlashcards(w http.ResponseWriter, r *http.Request) {
	isKnown, err := queryBool(r, "isKnown")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	levels, err := scheduler.ParseConfidenceSet(r.URL.Query().Get("confidenceLevel"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	cards, err := h.Store.ListFlashcards(r.Context(), currentUser(r).ID, store.FlashcardFilter{
		FolderID: queryString(r, "folderId"),
		IsKnown:  isKnown,
		Levels:   levels,
		Search:   r.URL.Query().Get("search"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Flashcards retrieved successfully", cards)
}

// GetStudyCards returns the cards of a study mode in shuffled order.
func (h *Handler) GetStudyCards(w http.ResponseWriter, r *http.Request) {
	levels, err := scheduler.ModeFilter(scheduler.StudyMode(r.URL.Query().Get("mode")))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	folderID := queryString(r, "folderId")

	cards, err := h.Store.ListFlashcards(r.Context(), currentUser(r).ID, store.FlashcardFilter{FolderID: folderID})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	selected := h.shuffle(scheduler.SelectByConfidence(cards, folderID, levels))
	h.respond(w, http.StatusOK, "Study cards retrieved successfully", selected)
}

func (h *Handler) GetDueFlashcards(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", scheduler.DefaultDueLimit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	cards, err := h.Store.ListUnknownFlashcards(r.Context(), currentUser(r).ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Due flashcards retrieved successfully", scheduler.SelectDue(cards, h.Now(), limit))
}

func (h *Handler) GetFlashcard(w http.ResponseWriter, r *http.Request) {
	card, err := h.Store.GetFlashcard(r.Context(), currentUser(r).ID, r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Flashcard retrieved successfully", card)
}

func (h *Handler) CreateFlashcard(w http.ResponseWriter, r *http.Request) {
	var req flashcardRequest
	if err := h.decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	card := req.toModel(currentUser(r).ID)
	if err := h.Store.CreateFlashcard(r.Context(), card); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusCreated, "Flashcard created successfully", card)
}

func (h *Handler) CreateBulkFlashcards(w http.ResponseWriter, r *http.Request) {
	var req bulkFlashcardRequest
	if err := h.decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	userID := currentUser(r).ID
	cards := make([]*models.Flashcard, 0, len(req.Flashcards))
	for _, fc := range req.Flashcards {
		cards = append(cards, fc.toModel(userID))
	}
	if err := h.Store.CreateFlashcards(r.Context(), cards); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusCreated, "Flashcards created successfully", map[string]any{
		"flashcards": cards,
		"count":      len(cards),
	})
}

func (h *Handler) UpdateFlashcard(w http.ResponseWriter, r *http.Request) {
	var req flashcardUpdateRequest
	if err := h.decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	card, err := h.Store.UpdateFlashcard(r.Context(), currentUser(r).ID, r.PathValue("id"), store.FlashcardUpdate{
		FrontContent:    req.FrontContent,
		FrontImage:      req.FrontImage,
		BackContent:     req.BackContent,
		BackImage:       req.BackImage,
		Pronunciation:   req.Pronunciation,
		PartOfSpeech:    req.PartOfSpeech,
		Example:         req.Example,
		ExampleSource:   req.ExampleSource,
		AudioURL:        req.AudioURL,
		Tags:            req.Tags,
		MoveFolder:      req.FolderID.Set,
		FolderID:        req.FolderID.Value,
		ReviewCount:     req.ReviewCount,
		ConfidenceLevel: req.ConfidenceLevel,
		IsKnown:         req.IsKnown,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Flashcard updated successfully", card)
}

// AnswerFlashcard records a study-session answer. It never reschedules the card.
func (h *Handler) AnswerFlashcard(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := h.decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	h.saveReview(w, r, func(state models.ReviewState) (models.ReviewState, error) {
		return scheduler.RecordAnswer(state, scheduler.Answer{
			Confidence: scheduler.Confidence(*req.ConfidenceLevel),
			IsKnown:    req.IsKnown,
		}, h.Now())
	}, "Answer recorded successfully")
}

// ReviewFlashcard updates review status and schedules the next review.
func (h *Handler) ReviewFlashcard(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := h.decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	update := scheduler.ReviewUpdate{IsKnown: req.IsKnown}
	if req.ConfidenceLevel != nil {
		c := scheduler.Confidence(*req.ConfidenceLevel)
		update.Confidence = &c
	}
	h.saveReview(w, r, func(state models.ReviewState) (models.ReviewState, error) {
		return scheduler.UpdateReviewStatus(state, update, h.Now())
	}, "Review status updated successfully")
}

func (h *Handler) saveReview(w http.ResponseWriter, r *http.Request, next func(models.ReviewState) (models.ReviewState, error), message string) {
	userID := currentUser(r).ID
	card, err := h.Store.GetFlashcard(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	state, err := next(card.ReviewState)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	card, err = h.Store.SaveReviewState(r.Context(), userID, card.ID, state)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, message, card)
}

func (h *Handler) DeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteFlashcard(r.Context(), currentUser(r).ID, r.PathValue("id")); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Flashcard deleted successfully", nil)
}

func (h *Handler) ResetFolderProgress(w http.ResponseWriter, r *http.Request) {
	var req resetProgressRequest
	if err := h.decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	n, err := h.Store.ResetFolderProgress(r.Context(), currentUser(r).ID, req.FolderID, scheduler.ResetState())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, "Folder progress reset successfully", map[string]any{
		"updatedCount": n,
	})
}
