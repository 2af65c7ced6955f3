// Package domain holds the persisted entity types. Station and User are the
// two aggregate roots; Price and Review rows belong to a Station, Favorite
// and UserToken rows belong to a User. The roots reference each other by id
// only, never by containment.
package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username string    `gorm:"uniqueIndex;not null;column:username" json:"username"`
	Password string    `gorm:"not null;column:password" json:"-"`
	Name     string    `gorm:"not null;column:name" json:"name"`
	Zip      string    `gorm:"column:zip" json:"zip"`
	Admin    bool      `gorm:"not null;default:false;column:admin" json:"admin"`

	Favorites []Favorite `gorm:"foreignKey:UserID" json:"favorites"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "user" }

type UserToken struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	AccessToken  string    `gorm:"not null;index;column:access_token" json:"-"`
	RefreshToken string    `gorm:"not null;index;column:refresh_token" json:"-"`
	ExpiresAt    time.Time `gorm:"not null;column:expires_at" json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

func (UserToken) TableName() string { return "user_token" }

type Station struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Address     string    `gorm:"column:address" json:"address"`
	LatLng      float64   `gorm:"column:lat_lng" json:"lat_lng"`
	StationType string    `gorm:"column:station_type" json:"station_type"`
	PumpHours   string    `gorm:"column:pump_hours" json:"pump_hours"`

	// Both sub-sequences are append-only and never reordered; repos load
	// them ordered by (created_at, id).
	Prices  []Price  `gorm:"foreignKey:StationID" json:"prices"`
	Reviews []Review `gorm:"foreignKey:StationID" json:"reviews"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Station) TableName() string { return "station" }

// Price is immutable once created. The current price of a station is the
// last Price row by append order.
type Price struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StationID uuid.UUID `gorm:"type:uuid;not null;index;column:station_id" json:"station_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Value     float64   `gorm:"not null;column:value" json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

func (Price) TableName() string { return "price" }

// Review is mutable only by deletion.
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StationID uuid.UUID `gorm:"type:uuid;not null;index;column:station_id" json:"station_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Rating    int       `gorm:"not null;column:rating" json:"rating"`
	Comment   string    `gorm:"column:comment" json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (Review) TableName() string { return "review" }

// Favorite carries a denormalized snapshot of the station's price and review
// history. Name and address are identity fields copied once at add time; the
// price/review fields are overwritten by the favorite synchronizer and are
// intentionally stale between cycles — never authoritative for writes.
type Favorite struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_station;column:user_id" json:"user_id"`
	StationID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_station;column:station_id" json:"station_id"`
	StationName    string         `gorm:"not null;column:station_name" json:"station_name"`
	StationAddress string         `gorm:"column:station_address" json:"station_address"`
	StationPrices  datatypes.JSON `gorm:"column:station_prices" json:"station_prices"`
	StationReviews datatypes.JSON `gorm:"column:station_reviews" json:"station_reviews"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (Favorite) TableName() string { return "favorite" }
