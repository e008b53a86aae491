package services

import (
	"context"

	"github.com/anonto42/friendfeed/backend/internal/models"
	"golang.org/x/sync/errgroup"
)

// CommentCounter counts comments for a batch of posts.
type CommentCounter interface {
	CountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int64, error)
}

// LikeCounter counts likes for a batch of posts and resolves a viewer's likes among them.
type LikeCounter interface {
	CountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int64, error)
	LikedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error)
}

// Aggregator attaches comment counts, like counts and the viewer-like flag to a batch
// of posts. It issues exactly three bulk lookups per batch, whatever the batch size.
type Aggregator struct {
	comments CommentCounter
	likes    LikeCounter
}

func NewAggregator(comments CommentCounter, likes LikeCounter) *Aggregator {
	return &Aggregator{comments: comments, likes: likes}
}

// Annotate returns an annotation for every id in postIDs. Ids with no comments or likes,
// including ids of posts that no longer exist, get zero counts.
func (a *Aggregator) Annotate(ctx context.Context, postIDs []uint, viewerID uint) (map[uint]models.PostAnnotation, error) {
	out := make(map[uint]models.PostAnnotation, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}

	var (
		commentCounts map[uint]int64
		likeCounts    map[uint]int64
		liked         map[uint]bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		commentCounts, err = a.comments.CountByPostIDs(gctx, postIDs)
		return err
	})
	g.Go(func() (err error) {
		likeCounts, err = a.likes.CountByPostIDs(gctx, postIDs)
		return err
	})
	g.Go(func() (err error) {
		liked, err = a.likes.LikedPostIDs(gctx, viewerID, postIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, id := range postIDs {
		out[id] = models.PostAnnotation{
			CommentCount:   commentCounts[id],
			LikeCount:      likeCounts[id],
			ViewerHasLiked: liked[id],
		}
	}
	return out, nil
}

// AnnotatePosts annotates posts in one batch and merges them into views, preserving order.
func (a *Aggregator) AnnotatePosts(ctx context.Context, posts []models.Post, viewerID uint) ([]models.PostView, error) {
	ids := make([]uint, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}
	annotations, err := a.Annotate(ctx, ids, viewerID)
	if err != nil {
		return nil, err
	}
	views := make([]models.PostView, len(posts))
	for i := range posts {
		views[i] = models.NewPostView(&posts[i], annotations[posts[i].ID])
	}
	return views, nil
}
