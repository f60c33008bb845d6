// internal/app/store/files/filestore.go

// Package filestore wraps the GridFS bucket that holds uploaded material
// bytes. Filenames are not unique: lookups by name resolve to the most
// recently uploaded revision, and the opaque file id addresses one blob
// exactly.
//
// The store is constructed once at startup and injected into the handlers
// that need it; nothing else touches the bucket.
package filestore

import (
	"context"
	"errors"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BucketName is the GridFS bucket holding material blobs.
const BucketName = "uploads"

// ErrNotFound is returned when no blob matches the requested name or id.
var ErrNotFound = errors.New("file not found")

// Metadata travels with each stored blob.
type Metadata struct {
	ContentType string             `bson:"content_type"`
	GroupID     primitive.ObjectID `bson:"group_id"`
	UploadedBy  primitive.ObjectID `bson:"uploaded_by"`
}

// FileInfo describes a stored blob without its content.
type FileInfo struct {
	ID         primitive.ObjectID `bson:"_id"`
	Name       string             `bson:"filename"`
	Length     int64              `bson:"length"`
	UploadDate time.Time          `bson:"uploadDate"`
	Metadata   Metadata           `bson:"metadata"`
}

type Store struct {
	bucket *gridfs.Bucket
	files  *mongo.Collection
}

// New opens the uploads bucket on the given database.
func New(db *mongo.Database) (*Store, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(BucketName))
	if err != nil {
		return nil, err
	}
	return &Store{
		bucket: bucket,
		files:  db.Collection(BucketName + ".files"),
	}, nil
}

// Put streams the blob into the bucket under the given name and returns the
// new blob's id. A name collision creates a new revision; it never
// overwrites.
func (s *Store) Put(ctx context.Context, name string, meta Metadata, r io.Reader) (primitive.ObjectID, error) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = s.bucket.SetWriteDeadline(deadline)
	}
	id, err := s.bucket.UploadFromStream(name, r, options.GridFSUpload().SetMetadata(meta))
	if err != nil {
		return primitive.NilObjectID, err
	}
	return id, nil
}

// StatLatestByName returns the most recently uploaded blob with the exact
// (case-sensitive) name. Returns ErrNotFound when nothing matches.
func (s *Store) StatLatestByName(ctx context.Context, name string) (FileInfo, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "uploadDate", Value: -1}})
	var info FileInfo
	if err := s.files.FindOne(ctx, bson.M{"filename": name}, opts).Decode(&info); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return FileInfo{}, ErrNotFound
		}
		return FileInfo{}, err
	}
	return info, nil
}

// StatByID returns the blob with the given id. Returns ErrNotFound when
// nothing matches.
func (s *Store) StatByID(ctx context.Context, id primitive.ObjectID) (FileInfo, error) {
	var info FileInfo
	if err := s.files.FindOne(ctx, bson.M{"_id": id}).Decode(&info); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return FileInfo{}, ErrNotFound
		}
		return FileInfo{}, err
	}
	return info, nil
}

// CopyTo streams the blob with the given id into w.
func (s *Store) CopyTo(ctx context.Context, id primitive.ObjectID, w io.Writer) error {
	if deadline, ok := ctx.Deadline(); ok {
		_ = s.bucket.SetReadDeadline(deadline)
	}
	stream, err := s.bucket.OpenDownloadStream(id)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return ErrNotFound
		}
		return err
	}
	defer stream.Close()

	_, err = io.Copy(w, stream)
	return err
}
