package domain

import "time"

type Player struct {
	ID        string    `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	Username  string    `json:"username" bson:"username" gorm:"not null"`
	Email     string    `json:"email" bson:"email" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" gorm:"index"`
}

type NewsletterSubscription struct {
	ID           string    `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	Email        string    `json:"email" bson:"email" gorm:"uniqueIndex;not null"`
	SubscribedAt time.Time `json:"subscribedAt" bson:"subscribedAt"`
}

func (NewsletterSubscription) TableName() string {
	return "newsletter"
}
