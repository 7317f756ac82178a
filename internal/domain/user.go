package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	DisplayName string    `json:"displayName" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
}
