// Package model defines the documents stored in MongoDB.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultAvatar is the profile picture assigned to new accounts. It is
// never deleted from disk when an avatar is replaced.
const DefaultAvatar = "avatar.png"

// User is an account document. Password holds the Argon2id digest and is
// never serialized to clients.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email          string             `bson:"email" json:"email"`
	Password       string             `bson:"password" json:"-"`
	IsAdmin        bool               `bson:"isAdmin" json:"isAdmin"`
	Name           string             `bson:"name" json:"name"`
	FamilyName     string             `bson:"familyName" json:"familyName"`
	ProfilePicture string             `bson:"profilePicture" json:"profilePicture"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Author is the subset of user fields embedded in post and comment
// responses.
type Author struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	Name           string             `bson:"name" json:"name"`
	FamilyName     string             `bson:"familyName" json:"familyName"`
	ProfilePicture string             `bson:"profilePicture" json:"profilePicture"`
}

// AuthorOf projects a user into the embedded author shape.
func AuthorOf(u *User) Author {
	return Author{
		ID:             u.ID,
		Name:           u.Name,
		FamilyName:     u.FamilyName,
		ProfilePicture: u.ProfilePicture,
	}
}

// Post is a feed entry. File, when set, is the sanitized filename of the
// attached image under the posts upload directory. Likes holds the ids of
// users who currently like the post; Comments holds comment ids in
// creation order.
type Post struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Content   string               `bson:"content" json:"content"`
	AuthorID  primitive.ObjectID   `bson:"author" json:"-"`
	File      string               `bson:"file,omitempty" json:"file,omitempty"`
	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	Comments  []primitive.ObjectID `bson:"comments" json:"comments"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`

	// Author is populated at read time from the users collection; it is
	// not stored on the post document.
	Author *Author `bson:"-" json:"author,omitempty"`
}

// Comment belongs to exactly one post.
type Comment struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Content   string               `bson:"content" json:"content"`
	AuthorID  primitive.ObjectID   `bson:"author" json:"-"`
	PostID    primitive.ObjectID   `bson:"postId" json:"postId"`
	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`

	Author *Author `bson:"-" json:"author,omitempty"`
}
