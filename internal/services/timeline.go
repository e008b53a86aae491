package services

import (
	"context"
	"time"

	"github.com/anonto42/friendfeed/backend/internal/models"
	"go.uber.org/zap"
)

// FriendLister resolves the friend set of a user.
type FriendLister interface {
	FriendIDsOf(ctx context.Context, userID uint) ([]uint, error)
}

// PostWindowReader reads one window of posts by a set of authors.
type PostWindowReader interface {
	PostsByAuthors(ctx context.Context, authorIDs []uint, offset, limit int) ([]models.Post, int64, error)
}

// TimelineObserver is told how long each assembled timeline took.
type TimelineObserver interface {
	ObserveTimeline(d time.Duration, posts int, empty bool)
}

// TimelineService assembles a viewer's timeline from the friend graph, the content
// store and the aggregator. It only reads and keeps no state between requests.
type TimelineService struct {
	friends    FriendLister
	posts      PostWindowReader
	aggregator *Aggregator
	limits     PageLimits
	observer   TimelineObserver
	logger     *zap.Logger
}

func NewTimelineService(friends FriendLister, posts PostWindowReader, aggregator *Aggregator, limits PageLimits, observer TimelineObserver, logger *zap.Logger) *TimelineService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimelineService{
		friends:    friends,
		posts:      posts,
		aggregator: aggregator,
		limits:     limits,
		observer:   observer,
		logger:     logger,
	}
}

// Limits exposes the configured page bounds.
func (s *TimelineService) Limits() PageLimits {
	return s.limits
}

// GetTimeline returns one page of posts written by viewerID's friends, newest first.
// req must already be normalized with Limits().Normalize.
func (s *TimelineService) GetTimeline(ctx context.Context, viewerID uint, req PageRequest) (*models.TimelinePage, error) {
	start := time.Now()
	page, err := s.assemble(ctx, viewerID, req)
	if err != nil {
		return nil, err
	}
	if s.observer != nil {
		s.observer.ObserveTimeline(time.Since(start), len(page.Posts), page.Pagination.Total == 0)
	}
	s.logger.Debug("timeline assembled",
		zap.Uint("viewer_id", viewerID),
		zap.Int("page", req.Page),
		zap.Int("limit", req.Limit),
		zap.Int("posts", len(page.Posts)),
		zap.Int64("total", page.Pagination.Total),
		zap.Duration("took", time.Since(start)),
	)
	return page, nil
}

func (s *TimelineService) assemble(ctx context.Context, viewerID uint, req PageRequest) (*models.TimelinePage, error) {
	friendIDs, err := s.friends.FriendIDsOf(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if len(friendIDs) == 0 {
		return &models.TimelinePage{Posts: []models.PostView{}, Pagination: NewPagination(req, 0)}, nil
	}

	posts, total, err := s.posts.PostsByAuthors(ctx, friendIDs, req.Offset(), req.Limit)
	if err != nil {
		return nil, err
	}

	views, err := s.aggregator.AnnotatePosts(ctx, posts, viewerID)
	if err != nil {
		return nil, err
	}
	return &models.TimelinePage{Posts: views, Pagination: NewPagination(req, total)}, nil
}
