package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/favboard/favboard-api/internal/core/domain"
)

type PostRepository struct {
	posts     *mongo.Collection
	favorites *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{
		posts:     db.Collection(collectionPosts),
		favorites: db.Collection(collectionFavorites),
	}
}

type authorDocument struct {
	FirstName string `bson:"first_name"`
	LastName  string `bson:"last_name"`
}

type postDocument struct {
	ID          string    `bson:"_id"`
	Title       string    `bson:"title,omitempty"`
	Description string    `bson:"description,omitempty"`
	URL         string    `bson:"url"`
	AuthorID    string    `bson:"author_id"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`

	// Filled by the read pipeline only.
	Author         *authorDocument `bson:"author,omitempty"`
	FavoritesCount int64           `bson:"favorites_count,omitempty"`
}

func (d postDocument) toDomain() *domain.Post {
	p := &domain.Post{
		ID:             d.ID,
		Title:          d.Title,
		Description:    d.Description,
		URL:            d.URL,
		AuthorID:       d.AuthorID,
		FavoritesCount: d.FavoritesCount,
		CreatedAt:      d.CreatedAt.UTC(),
		UpdatedAt:      d.UpdatedAt.UTC(),
	}
	if d.Author != nil {
		p.Author = &domain.Author{FirstName: d.Author.FirstName, LastName: d.Author.LastName}
	}
	return p
}

type favoriteDocument struct {
	UserID    string    `bson:"user_id"`
	PostID    string    `bson:"post_id"`
	CreatedAt time.Time `bson:"created_at"`
}

// readStages joins the author projection and the favorites count onto each post.
func readStages() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionUsers},
			{Key: "localField", Value: "author_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "author"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$author"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionFavorites},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "post_id"},
			{Key: "as", Value: "favorites"},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "favorites_count", Value: bson.D{{Key: "$size", Value: "$favorites"}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "favorites", Value: 0},
			{Key: "author.password_hash", Value: 0},
		}}},
	}
}

func newestFirst() bson.D {
	return bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}}
}

func (r *PostRepository) aggregate(ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate posts: %w", err)
	}
	var docs []postDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	posts := make([]*domain.Post, len(docs))
	for i, d := range docs {
		posts[i] = d.toDomain()
	}
	return posts, nil
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	insertCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.posts.InsertOne(insertCtx, postDocument{
		ID:          post.ID,
		Title:       post.Title,
		Description: post.Description,
		URL:         post.URL,
		AuthorID:    post.AuthorID,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return r.FindByID(ctx, post.ID)
}

func (r *PostRepository) Update(ctx context.Context, id string, changes domain.PostChanges) (*domain.Post, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if changes.Title != nil {
		set["title"] = *changes.Title
	}
	if changes.Description != nil {
		set["description"] = *changes.Description
	}
	if changes.URL != nil {
		set["url"] = *changes.URL
	}

	updateCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.posts.UpdateOne(updateCtx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrPostNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes the post and every favorite pointing at it.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.posts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	if _, err := r.favorites.DeleteMany(ctx, bson.M{"post_id": id}); err != nil {
		return fmt.Errorf("delete post favorites: %w", err)
	}
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
	}, readStages()...)

	posts, err := r.aggregate(ctx, r.posts, pipeline)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, domain.ErrPostNotFound
	}
	return posts[0], nil
}

func (r *PostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	pipeline := append(mongo.Pipeline{newestFirst()}, readStages()...)
	return r.aggregate(ctx, r.posts, pipeline)
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error) {
	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "author_id", Value: authorID}}}},
		newestFirst(),
	}, readStages()...)
	return r.aggregate(ctx, r.posts, pipeline)
}

func (r *PostRepository) AddFavorite(ctx context.Context, fav domain.Favorite) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.favorites.InsertOne(ctx, favoriteDocument{
		UserID:    fav.UserID,
		PostID:    fav.PostID,
		CreatedAt: fav.CreatedAt,
	}); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyFavorite
		}
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

func (r *PostRepository) RemoveFavorite(ctx context.Context, userID, postID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.favorites.DeleteOne(ctx, bson.M{"user_id": userID, "post_id": postID})
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}

// ListFavorites returns the user's favorite posts, most recently favorited first.
func (r *PostRepository) ListFavorites(ctx context.Context, userID string) ([]*domain.Post, error) {
	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "user_id", Value: userID}}}},
		newestFirst(),
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionPosts},
			{Key: "localField", Value: "post_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "post"},
		}}},
		{{Key: "$unwind", Value: "$post"}},
		{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$post"}}}},
	}, readStages()...)

	return r.aggregate(ctx, r.favorites, pipeline)
}
