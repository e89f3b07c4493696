// internal/app/store/images/imagestore.go
package images

import (
	"context"
	"time"

	"github.com/dalemusser/glowsite/internal/app/store/storeutil"
	"github.com/dalemusser/glowsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the images collection, the metadata ledger for
// every uploaded file. Quota math reads this collection instead of listing
// the storage backend.
type Store struct {
	c *mongo.Collection
}

// New creates a new image store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("images")}
}

// EnsureIndexes creates necessary indexes for the collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "folder", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "url", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// CreateInput contains the input for recording an uploaded file.
type CreateInput struct {
	Folder      string
	Key         string
	URL         string
	Size        int64
	ContentType string
}

// Create records a newly uploaded file.
func (s *Store) Create(ctx context.Context, input CreateInput) (*models.StoredImage, error) {
	img := models.StoredImage{
		ID:          primitive.NewObjectID(),
		Folder:      input.Folder,
		Key:         input.Key,
		URL:         input.URL,
		Size:        input.Size,
		ContentType: input.ContentType,
		UploadedAt:  time.Now().UTC(),
	}

	if _, err := s.c.InsertOne(ctx, img); err != nil {
		return nil, err
	}

	return &img, nil
}

// GetByURL retrieves an image record by its public URL.
func (s *Store) GetByURL(ctx context.Context, url string) (*models.StoredImage, error) {
	var img models.StoredImage
	if err := s.c.FindOne(ctx, bson.M{"url": url}).Decode(&img); err != nil {
		return nil, err
	}
	return &img, nil
}

// Delete removes an image record.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ListByFolder returns one page of a folder's images, newest first.
func (s *Store) ListByFolder(ctx context.Context, folder string, limit, page int64) ([]models.StoredImage, error) {
	opts := storeutil.Paginate(limit, page).SetSort(bson.D{{Key: "uploaded_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"folder": folder}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.StoredImage
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByFolder returns the number of images in one folder.
func (s *Store) CountByFolder(ctx context.Context, folder string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"folder": folder})
}

// TotalSize returns the combined size in bytes of all recorded images.
func (s *Store) TotalSize(ctx context.Context) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$size"},
		}}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var results []struct {
		Total int64 `bson:"total"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// FolderCounts returns the image count per folder in one pass.
func (s *Store) FolderCounts(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$folder",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var results []struct {
		Folder string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(results))
	for _, r := range results {
		counts[r.Folder] = r.Count
	}
	return counts, nil
}
