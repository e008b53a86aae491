package models

import "time"

// Friend is one direction of a friendship. An accepted friendship is always stored
// as two rows, (A,B) and (B,A); reads of "friends of A" look at A-owned rows only.
type Friend struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;index;uniqueIndex:idx_friend_pair"`
	FriendID  uint      `json:"friendId" gorm:"not null;index;uniqueIndex:idx_friend_pair"`
	CreatedAt time.Time `json:"createdAt"`

	Friend User `json:"-" gorm:"foreignKey:FriendID"`
}
