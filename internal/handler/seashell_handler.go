package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/GoArmGo/SeashellApp/internal/domain"
	"github.com/GoArmGo/SeashellApp/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// filterColumns отображает сегмент URL /seashells/filters/{kind} в колонку бд
var filterColumns = map[string]string{
	"species":    "species",
	"colors":     "color",
	"conditions": "condition",
	"locations":  "storage_location",
}

// SeashellHandler — обработчик HTTP-запросов для работы с каталогом ракушек.
type SeashellHandler struct {
	seashellUseCase usecase.SeashellUseCase
	maxUploadSize   int64
	logger          *slog.Logger
}

// NewSeashellHandler создаёт новый экземпляр SeashellHandler.
func NewSeashellHandler(uc usecase.SeashellUseCase, maxUploadSize int64, logger *slog.Logger) *SeashellHandler {
	return &SeashellHandler{
		seashellUseCase: uc,
		maxUploadSize:   maxUploadSize,
		logger:          logger,
	}
}

type seashellCreateRequest struct {
	Name            string       `json:"name"`
	Species         string       `json:"species"`
	Description     *string      `json:"description"`
	Color           *string      `json:"color"`
	SizeMM          *int         `json:"size_mm"`
	FoundOn         *domain.Date `json:"found_on"`
	FoundAt         *string      `json:"found_at"`
	StorageLocation *string      `json:"storage_location"`
	Condition       *string      `json:"condition"`
	Notes           *string      `json:"notes"`
	ImageURL        *string      `json:"image_url"`
}

type seashellUpdateRequest struct {
	Name            *string      `json:"name"`
	Species         *string      `json:"species"`
	Description     *string      `json:"description"`
	Color           *string      `json:"color"`
	SizeMM          *int         `json:"size_mm"`
	FoundOn         *domain.Date `json:"found_on"`
	FoundAt         *string      `json:"found_at"`
	StorageLocation *string      `json:"storage_location"`
	Condition       *string      `json:"condition"`
	Notes           *string      `json:"notes"`
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// formString возвращает значение поля формы, если оно было передано.
func formString(r *http.Request, key string) *string {
	if !r.Form.Has(key) {
		return nil
	}
	v := r.FormValue(key)
	return &v
}

func formInt(r *http.Request, key string) (*int, error) {
	if !r.Form.Has(key) {
		return nil, nil
	}
	v, err := strconv.Atoi(r.FormValue(key))
	if err != nil {
		return nil, domain.NewValidationError(key, "must be an integer")
	}
	return &v, nil
}

func formDate(r *http.Request, key string) (*domain.Date, error) {
	if !r.Form.Has(key) {
		return nil, nil
	}
	d, err := domain.ParseDate(r.FormValue(key))
	if err != nil {
		return nil, domain.NewValidationError(key, "must be a date in YYYY-MM-DD format")
	}
	return &d, nil
}

// formUpload достаёт файловую часть "file" из multipart-формы, если она есть.
// Закрытие файла остаётся за вызывающим.
func formUpload(r *http.Request) (*usecase.Upload, func(), error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, nil
		}
		return nil, func() {}, domain.NewValidationError("file", "malformed file part")
	}
	upload := &usecase.Upload{
		Filename: header.Filename,
		Size:     header.Size,
		Reader:   file,
	}
	return upload, func() { file.Close() }, nil
}

// parseCreateForm собирает параметры создания из multipart-формы.
func parseCreateForm(r *http.Request) (usecase.CreateSeashellParams, error) {
	var params usecase.CreateSeashellParams
	params.Name = r.FormValue("name")
	params.Species = r.FormValue("species")
	params.Description = formString(r, "description")
	params.Color = formString(r, "color")
	params.FoundAt = formString(r, "found_at")
	params.StorageLocation = formString(r, "storage_location")
	params.Condition = formString(r, "condition")
	params.Notes = formString(r, "notes")
	params.ImageURL = formString(r, "image_url")

	var err error
	if params.SizeMM, err = formInt(r, "size_mm"); err != nil {
		return params, err
	}
	if params.FoundOn, err = formDate(r, "found_on"); err != nil {
		return params, err
	}
	return params, nil
}

// parseUpdateForm собирает параметры частичного обновления из multipart-формы.
func parseUpdateForm(r *http.Request) (usecase.UpdateSeashellParams, error) {
	var params usecase.UpdateSeashellParams
	params.Name = formString(r, "name")
	params.Species = formString(r, "species")
	params.Description = formString(r, "description")
	params.Color = formString(r, "color")
	params.FoundAt = formString(r, "found_at")
	params.StorageLocation = formString(r, "storage_location")
	params.Condition = formString(r, "condition")
	params.Notes = formString(r, "notes")

	var err error
	if params.SizeMM, err = formInt(r, "size_mm"); err != nil {
		return params, err
	}
	if params.FoundOn, err = formDate(r, "found_on"); err != nil {
		return params, err
	}
	return params, nil
}

func seashellIDFromURL(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// Create — создаёт запись ракушки. Принимает JSON либо multipart-форму
// с необязательной файловой частью "file".
func (h *SeashellHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated", h.logger)
		return
	}

	var (
		params usecase.CreateSeashellParams
		upload *usecase.Upload
	)

	if isMultipart(r) {
		if err := r.ParseMultipartForm(h.maxUploadSize + 1<<20); err != nil {
			respondWithError(w, http.StatusUnprocessableEntity, "Malformed multipart form", h.logger)
			return
		}
		var err error
		if params, err = parseCreateForm(r); err != nil {
			respondWithDomainError(w, err, h.logger)
			return
		}
		var closeFile func()
		if upload, closeFile, err = formUpload(r); err != nil {
			respondWithDomainError(w, err, h.logger)
			return
		}
		defer closeFile()
	} else {
		var req seashellCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusUnprocessableEntity, "Invalid request body", h.logger)
			return
		}
		params = usecase.CreateSeashellParams(req)
	}

	shell, err := h.seashellUseCase.CreateSeashell(r.Context(), params, user.ID, upload)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("seashell created via API", "id", shell.ID, "added_by", user.ID)
	respondWithJSON(w, http.StatusOK, shell, h.logger)
}

// List — список ракушек с пагинацией и необязательными фильтрами.
func (h *SeashellHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	skip, _ := strconv.Atoi(q.Get("skip"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	minSize, _ := strconv.Atoi(q.Get("min_size_mm"))
	maxSize, _ := strconv.Atoi(q.Get("max_size_mm"))

	filter := domain.SeashellFilter{
		Skip:            skip,
		Limit:           limit,
		Species:         q.Get("species"),
		Color:           q.Get("color"),
		Condition:       q.Get("condition"),
		StorageLocation: q.Get("storage_location"),
		MinSizeMM:       minSize,
		MaxSizeMM:       maxSize,
		Search:          q.Get("search"),
	}

	shells, err := h.seashellUseCase.ListSeashells(r.Context(), filter)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	if shells == nil {
		shells = []domain.Seashell{}
	}
	respondWithJSON(w, http.StatusOK, shells, h.logger)
}

// Get — запись ракушки по идентификатору.
func (h *SeashellHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := seashellIDFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Seashell not found", h.logger)
		return
	}

	shell, err := h.seashellUseCase.GetSeashell(r.Context(), id)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, shell, h.logger)
}

// Update — частичное обновление записи. Принимает JSON либо multipart-форму;
// файловая часть "file" замещает текущее изображение.
func (h *SeashellHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := seashellIDFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Seashell not found", h.logger)
		return
	}

	var (
		params usecase.UpdateSeashellParams
		upload *usecase.Upload
	)

	if isMultipart(r) {
		if err := r.ParseMultipartForm(h.maxUploadSize + 1<<20); err != nil {
			respondWithError(w, http.StatusUnprocessableEntity, "Malformed multipart form", h.logger)
			return
		}
		if params, err = parseUpdateForm(r); err != nil {
			respondWithDomainError(w, err, h.logger)
			return
		}
		var closeFile func()
		if upload, closeFile, err = formUpload(r); err != nil {
			respondWithDomainError(w, err, h.logger)
			return
		}
		defer closeFile()
	} else {
		var req seashellUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusUnprocessableEntity, "Invalid request body", h.logger)
			return
		}
		params = usecase.UpdateSeashellParams(req)
	}

	shell, err := h.seashellUseCase.UpdateSeashell(r.Context(), id, params, upload)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("seashell updated via API", "id", id)
	respondWithJSON(w, http.StatusOK, shell, h.logger)
}

// Delete — удаляет запись и её изображения.
func (h *SeashellHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := seashellIDFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Seashell not found", h.logger)
		return
	}

	if err := h.seashellUseCase.DeleteSeashell(r.Context(), id); err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("seashell deleted via API", "id", id)
	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Seashell deleted successfully",
		"id":      id.String(),
	}, h.logger)
}

// UploadImage — multipart-загрузка изображения для существующей записи.
func (h *SeashellHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := seashellIDFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Seashell not found", h.logger)
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadSize + 1<<20); err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, "Malformed multipart form", h.logger)
		return
	}

	upload, closeFile, err := formUpload(r)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	defer closeFile()
	if upload == nil {
		respondWithError(w, http.StatusUnprocessableEntity, "file: file part is required", h.logger)
		return
	}

	shell, err := h.seashellUseCase.UploadImage(r.Context(), id, *upload)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("seashell image uploaded via API", "id", id)
	respondWithJSON(w, http.StatusOK, shell, h.logger)
}

// FilterValues — уникальные значения для выпадающих списков UI.
func (h *SeashellHandler) FilterValues(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	column, ok := filterColumns[kind]
	if !ok {
		respondWithError(w, http.StatusNotFound, "Unknown filter", h.logger)
		return
	}

	values, err := h.seashellUseCase.DistinctValues(r.Context(), column)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	if values == nil {
		values = []string{}
	}
	respondWithJSON(w, http.StatusOK, map[string][]string{"values": values}, h.logger)
}
