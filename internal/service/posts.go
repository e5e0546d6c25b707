package service

import (
	"context"
	"sort"
	"time"

	"github.com/crucial707/blog-api/internal/auth"
	"github.com/crucial707/blog-api/internal/models"
	"github.com/google/uuid"
)

type PostInput struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// PostUpdate fields left empty are not changed. An empty string cannot clear a field.
type PostUpdate struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type CommentInput struct {
	Text string `json:"text" validate:"required"`
}

// ==========================
// PostService
// ==========================
type PostService struct {
	store DocumentStore
	newID func() string
	now   func() time.Time
}

func NewPostService(store DocumentStore) *PostService {
	return &PostService{store: store, newID: uuid.NewString, now: time.Now}
}

// List returns every post, newest first.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	posts := doc.Posts
	sortNewestFirst(posts)
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := doc.PostIndex(id)
	if i < 0 {
		return nil, notFound("Post")
	}
	return &doc.Posts[i], nil
}

// Create adds a post authored by the caller, snapshotting their id and username.
func (s *PostService) Create(ctx context.Context, author *auth.Claims, in PostInput) (*models.Post, error) {
	if err := validateInput(in, "title and content are required"); err != nil {
		return nil, err
	}

	post := models.Post{
		ID:         s.newID(),
		Title:      in.Title,
		Content:    in.Content,
		AuthorID:   author.ID,
		AuthorName: author.Username,
		CreatedAt:  s.now().UnixMilli(),
		Likes:      []string{},
		Comments:   []models.Comment{},
	}
	err := s.store.Update(ctx, func(doc *models.Document) error {
		doc.Posts = append(doc.Posts, post)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Update applies the non-empty fields of in. Only the author may update.
func (s *PostService) Update(ctx context.Context, actorID, id string, in PostUpdate) (*models.Post, error) {
	var updated models.Post
	err := s.store.Update(ctx, func(doc *models.Document) error {
		post, err := ownedPost(doc, actorID, id)
		if err != nil {
			return err
		}
		if in.Title != "" {
			post.Title = in.Title
		}
		if in.Content != "" {
			post.Content = in.Content
		}
		updated = *post
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the post and returns it. Only the author may delete.
func (s *PostService) Delete(ctx context.Context, actorID, id string) (*models.Post, error) {
	var removed models.Post
	err := s.store.Update(ctx, func(doc *models.Document) error {
		post, err := ownedPost(doc, actorID, id)
		if err != nil {
			return err
		}
		removed = *post
		i := doc.PostIndex(id)
		doc.Posts = append(doc.Posts[:i], doc.Posts[i+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

// ToggleLike adds userID to the post's likes, or removes it if already present.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID string) (*models.LikeResult, error) {
	var res models.LikeResult
	err := s.store.Update(ctx, func(doc *models.Document) error {
		i := doc.PostIndex(postID)
		if i < 0 {
			return notFound("Post")
		}
		post := &doc.Posts[i]

		if post.HasLike(userID) {
			kept := post.Likes[:0]
			for _, id := range post.Likes {
				if id != userID {
					kept = append(kept, id)
				}
			}
			post.Likes = kept
			res.Liked = false
		} else {
			post.Likes = append(post.Likes, userID)
			res.Liked = true
		}
		res.Likes = len(post.Likes)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// AddComment appends a comment by the caller to the post.
func (s *PostService) AddComment(ctx context.Context, author *auth.Claims, postID string, in CommentInput) (*models.Comment, error) {
	if err := validateInput(in, "text is required"); err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:        s.newID(),
		UserID:    author.ID,
		Username:  author.Username,
		Text:      in.Text,
		CreatedAt: s.now().UnixMilli(),
	}
	err := s.store.Update(ctx, func(doc *models.Document) error {
		i := doc.PostIndex(postID)
		if i < 0 {
			return notFound("Post")
		}
		doc.Posts[i].Comments = append(doc.Posts[i].Comments, comment)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func ownedPost(doc *models.Document, actorID, id string) (*models.Post, error) {
	i := doc.PostIndex(id)
	if i < 0 {
		return nil, notFound("Post")
	}
	if doc.Posts[i].AuthorID != actorID {
		return nil, ErrForbidden
	}
	return &doc.Posts[i], nil
}

func sortNewestFirst(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt > posts[j].CreatedAt
	})
}
