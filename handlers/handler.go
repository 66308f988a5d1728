package handlers

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/andrewpaige1/lexideck-api/apperr"
	"github.com/andrewpaige1/lexideck-api/auth"
	"github.com/andrewpaige1/lexideck-api/middleware"
	"github.com/andrewpaige1/lexideck-api/models"
	"github.com/andrewpaige1/lexideck-api/scheduler"
	"github.com/andrewpaige1/lexideck-api/store"
	"github.com/andrewpaige1/lexideck-api/utils"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// Handler serves the JSON API. Now and Rand are replaceable for tests.
type Handler struct {
	Store    *store.Store
	Issuer   *auth.Issuer
	Validate *validator.Validate
	Log      logrus.FieldLogger
	Now      func() time.Time

	rngMu sync.Mutex
	Rand  *rand.Rand
}

func New(s *store.Store, iss *auth.Issuer, log logrus.FieldLogger) *Handler {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Handler{
		Store:    s,
		Issuer:   iss,
		Validate: v,
		Log:      log,
		Now:      func() time.Time { return time.Now().UTC() },
		Rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (h *Handler) shuffle(cards []models.Flashcard) []models.Flashcard {
	h.rngMu.Lock()
	defer h.rngMu.Unlock()
	return scheduler.Shuffle(cards, h.Rand)
}

func (h *Handler) respond(w http.ResponseWriter, status int, message string, data any) {
	utils.WriteJSON(w, status, utils.Envelope{Success: true, Message: message, Data: data})
}

// fail maps domain errors onto status codes. Anything unrecognised is logged
// and reported as a 500 without detail.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperr.ErrUnauthorized):
		status = http.StatusUnauthorized
	default:
		middleware.LoggerFrom(r.Context(), h.Log).
			WithError(err).
			WithField("path", r.URL.Path).
			Error("request failed")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	utils.WriteError(w, status, capitalize(apperr.Message(err)))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// decode reads a JSON body into dst and runs its validate tags.
func (h *Handler) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("invalid request body: %v", err)
	}
	return h.check(dst)
}

func (h *Handler) check(v any) error {
	err := h.Validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Param() != "" {
			return apperr.Validation("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param())
		}
		return apperr.Validation("%s failed %s", fe.Field(), fe.Tag())
	}
	return err
}

func currentUser(r *http.Request) *models.User {
	u, _ := middleware.UserFromContext(r.Context())
	return u
}

func queryBool(r *http.Request, key string) (*bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperr.Validation("%s must be true or false", key)
	}
	return &b, nil
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation("%s must be a number", key)
	}
	return n, nil
}

func queryString(r *http.Request, key string) *string {
	if raw := r.URL.Query().Get(key); raw != "" {
		return &raw
	}
	return nil
}

// optionalString tells an absent JSON field apart from an explicit null.
type optionalString struct {
	Set   bool
	Value *string
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		o.Value = nil
		return nil
	}
	o.Value = &s
	return nil
}
