package domain

import "go.mongodb.org/mongo-driver/v2/bson"

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	Model         `bson:",inline"`
	ProductID     bson.ObjectID `bson:"productId" json:"productId"`
	UserID        string        `bson:"userId" json:"userId"`
	UserName      string        `bson:"userName" json:"userName"`
	ReviewMessage string        `bson:"reviewMessage" json:"reviewMessage"`
	ReviewValue   int           `bson:"reviewValue" json:"reviewValue"`
}

func (Review) CollectionName() string {
	return "reviews"
}
