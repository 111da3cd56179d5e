package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction is a single product sale record as published by the seed feed.
// Records are only ever written in bulk by a reseed; the ID is assigned by the store.
type Transaction struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Price       float64            `json:"price" bson:"price"`
	Category    string             `json:"category" bson:"category"`
	DateOfSale  time.Time          `json:"dateOfSale" bson:"dateOfSale"`
	Sold        bool               `json:"sold" bson:"sold"`
}

// Field names as stored, used by aggregations.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldCategory    = "category"
	FieldDateOfSale  = "dateOfSale"
	FieldSold        = "sold"
)
