package types

type User struct {
	ID           string `json:"id" bson:"_id,omitempty"`
	Username     string `json:"username" bson:"username"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"-" bson:"password_hash"`
	CreatedAt    int64  `json:"created_at" bson:"created_at"`
}

// QueryLog is one prompt/response exchange as persisted in MongoDB. The
// exchange id doubles as the document id so a retried write is a no-op.
type QueryLog struct {
	ID        string `json:"id" bson:"_id"`
	UserID    string `json:"user_id" bson:"user_id"`
	Prompt    string `json:"prompt" bson:"prompt"`
	Response  string `json:"response" bson:"response"`
	CreatedAt int64  `json:"created_at" bson:"created_at"`
}
