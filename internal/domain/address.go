package domain

type Address struct {
	Model   `bson:",inline"`
	UserID  string `bson:"userId" json:"userId"`
	Address string `bson:"address" json:"address"`
	City    string `bson:"city" json:"city"`
	Pincode string `bson:"pincode" json:"pincode"`
	Phone   string `bson:"phone" json:"phone"`
	Notes   string `bson:"notes" json:"notes"`
}

func (Address) CollectionName() string {
	return "addresses"
}
