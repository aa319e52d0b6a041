package domain

import (
	"time"

	"github.com/google/uuid"
)

// Seashell представляет запись каталога ракушек,
// соответствует таблице seashells в бд.
// AddedByID проставляется из авторизованного пользователя при создании и не меняется.
type Seashell struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	Name            string     `json:"name" db:"name"`
	Species         string     `json:"species" db:"species"`
	Description     *string    `json:"description" db:"description"`
	Color           *string    `json:"color" db:"color"`
	SizeMM          *int       `json:"size_mm" db:"size_mm"`
	FoundOn         *Date      `json:"found_on" db:"found_on"`
	FoundAt         *string    `json:"found_at" db:"found_at"`
	StorageLocation *string    `json:"storage_location" db:"storage_location"`
	Condition       *string    `json:"condition" db:"condition"`
	Notes           *string    `json:"notes" db:"notes"`
	ImageURL        *string    `json:"image_url" db:"image_url"`
	AddedByID       *uuid.UUID `json:"added_by_id" db:"added_by_id"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// SeashellFilter описывает параметры выборки для списка ракушек.
// Нулевые значения означают "фильтр не задан"; Limit по умолчанию подставляется хранилищем.
type SeashellFilter struct {
	Skip            int
	Limit           int
	Species         string
	Color           string
	Condition       string
	StorageLocation string
	MinSizeMM       int
	MaxSizeMM       int
	Search          string
}
