package domain

import "fmt"

// Cart belongs to a user and collects that user's orders.
type Cart struct {
	ID     int64
	UserID int64
}

func (c Cart) Key() string {
	if c.ID != 0 {
		return fmt.Sprintf("id:%d", c.ID)
	}
	return fmt.Sprintf("v:%d", c.UserID)
}
