package model

import "time"

// Session is the server-side state behind a session cookie.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userId"`
	UserType  UserType  `json:"userType"`
	CreatedAt time.Time `json:"createdAt"`
}

// Actor returns the caller identity stored in the session.
func (s Session) Actor() Actor {
	return Actor{UserID: s.UserID, UserType: s.UserType}
}
