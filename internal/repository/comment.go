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

type commentRepository struct {
	coll *mongo.Collection
}

// NewCommentRepository returns a CommentRepository backed by the given
// collection.
func NewCommentRepository(coll *mongo.Collection) CommentRepository {
	return &commentRepository{coll: coll}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	if comment.Likes == nil {
		comment.Likes = []primitive.ObjectID{}
	}

	res, err := r.coll.InsertOne(ctx, comment)
	if err != nil {
		return err
	}

	comment.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *commentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Comment, error) {
	var comment model.Comment
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindByPost returns a post's comments, newest first.
func (r *commentRepository) FindByPost(ctx context.Context, postID primitive.ObjectID) ([]model.Comment, error) {
	return r.find(ctx, bson.M{"postId": postID})
}

func (r *commentRepository) FindByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]model.Comment, error) {
	return r.find(ctx, bson.M{"author": authorID})
}

func (r *commentRepository) find(ctx context.Context, filter bson.M) ([]model.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	comments := []model.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
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

func (r *commentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *commentRepository) DeleteByPost(ctx context.Context, postID primitive.ObjectID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"postId": postID})
	return err
}

func (r *commentRepository) DeleteByPosts(ctx context.Context, postIDs []primitive.ObjectID) error {
	if len(postIDs) == 0 {
		return nil
	}
	_, err := r.coll.DeleteMany(ctx, bson.M{"postId": bson.M{"$in": postIDs}})
	return err
}
