package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Entity is a document stored in its own collection.
type Entity interface {
	CollectionName() string
}

// IdentifiableEntity exposes the document _id.
type IdentifiableEntity interface {
	GetID() bson.ObjectID
	SetID(id bson.ObjectID)
}

// TimestampedEntity interface for entities with timestamps
type TimestampedEntity interface {
	SetCreatedAt(t time.Time)
	SetUpdatedAt(t time.Time)
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// Model carries the fields every document shares. Embed it inline.
type Model struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

func (m Model) GetID() bson.ObjectID      { return m.ID }
func (m *Model) SetID(id bson.ObjectID)   { m.ID = id }
func (m *Model) SetCreatedAt(t time.Time) { m.CreatedAt = t }
func (m *Model) SetUpdatedAt(t time.Time) { m.UpdatedAt = t }
func (m Model) GetCreatedAt() time.Time   { return m.CreatedAt }
func (m Model) GetUpdatedAt() time.Time   { return m.UpdatedAt }
