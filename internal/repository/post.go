package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mvillard/groupomania/internal/model"
)

type postRepository struct {
	coll *mongo.Collection
}

// NewPostRepository returns a PostRepository backed by the given collection.
func NewPostRepository(coll *mongo.Collection) PostRepository {
	return &postRepository{coll: coll}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}
	if post.Comments == nil {
		post.Comments = []primitive.ObjectID{}
	}

	res, err := r.coll.InsertOne(ctx, post)
	if err != nil {
		return err
	}

	post.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *postRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	var post model.Post
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

// FindAll returns every post, newest first.
func (r *postRepository) FindAll(ctx context.Context) ([]model.Post, error) {
	return r.find(ctx, bson.M{})
}

func (r *postRepository) FindByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]model.Post, error) {
	return r.find(ctx, bson.M{"author": authorID})
}

func (r *postRepository) find(ctx context.Context, filter bson.M) ([]model.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	posts := []model.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now().UTC()

	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AddLike records a like. $addToSet makes repeated likes by the same user a
// no-op.
func (r *postRepository) AddLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	return r.updateMembership(ctx, postID, bson.M{"$addToSet": bson.M{"likes": userID}})
}

// RemoveLike withdraws a like. $pull on an absent member is a no-op.
func (r *postRepository) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	return r.updateMembership(ctx, postID, bson.M{"$pull": bson.M{"likes": userID}})
}

func (r *postRepository) PushComment(ctx context.Context, postID, commentID primitive.ObjectID) error {
	return r.updateMembership(ctx, postID, bson.M{"$push": bson.M{"comments": commentID}})
}

func (r *postRepository) PullComment(ctx context.Context, postID, commentID primitive.ObjectID) error {
	return r.updateMembership(ctx, postID, bson.M{"$pull": bson.M{"comments": commentID}})
}

func (r *postRepository) updateMembership(ctx context.Context, postID primitive.ObjectID, update bson.M) error {
	res, err := r.coll.UpdateByID(ctx, postID, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *postRepository) DeleteByAuthor(ctx context.Context, authorID primitive.ObjectID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"author": authorID})
	return err
}
