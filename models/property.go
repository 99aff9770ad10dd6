package models

import "time"

// Room is one rentable unit inside a property. Rooms are embedded in the
// property document; they have no collection of their own.
type Room struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"` // e.g. "2A", "Ground Twin"
	Capacity int    `bson:"capacity" json:"capacity"`
	Rent     int64  `bson:"rent" json:"rent"` // default monthly rent in rupees
	Occupied bool   `bson:"occupied" json:"occupied"`
}

// FoodMenu describes the optional monthly food plan of a property.
type FoodMenu struct {
	Price       int64  `bson:"price" json:"price"` // monthly charge in rupees
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// Property is a PG building with its rooms and optional food plan.
type Property struct {
	ID        string     `bson:"id" json:"id"`
	Name      string     `bson:"name" json:"name"`
	Address   string     `bson:"address" json:"address"`
	City      string     `bson:"city" json:"city"`
	Rooms     []Room     `bson:"rooms" json:"rooms"`
	FoodMenu  *FoodMenu  `bson:"food_menu,omitempty" json:"food_menu,omitempty"`
	PhotoURLs []string   `bson:"photo_urls,omitempty" json:"photo_urls,omitempty"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"-"`
}

// RoomByID returns the embedded room with the given ID, if any.
func (p *Property) RoomByID(id string) (*Room, bool) {
	for i := range p.Rooms {
		if p.Rooms[i].ID == id {
			return &p.Rooms[i], true
		}
	}
	return nil, false
}
