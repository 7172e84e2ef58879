package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/pixelgram/internal/domain/entity"
	"github.com/oksasatya/pixelgram/internal/domain/repository"
	"github.com/oksasatya/pixelgram/pkg/apperr"
	"github.com/oksasatya/pixelgram/pkg/helpers"
	"github.com/oksasatya/pixelgram/pkg/mailer"
)

// UserService implements registration, authentication, profiles and the
// follow graph.
type UserService struct {
	Users        repository.UserRepository
	Posts        repository.PostRepository
	JWT          *helpers.JWTManager
	Logger       *logrus.Logger
	Pub          *helpers.RabbitPublisher
	ES           *elasticsearch.Client
	ESUsersIndex string
	AppName      string
	MailEnabled  bool
}

func NewUserService(users repository.UserRepository, posts repository.PostRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Posts: posts, JWT: jwt, Logger: logger}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Bio      string
}

type Session struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	exists, err := s.Users.ExistsByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.BadRequest("user already exists with this email or username")
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
		FullName: in.FullName,
		Bio:      in.Bio,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		// Lost a race with a concurrent registration for the same identity.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.BadRequest("user already exists with this email or username")
		}
		return nil, err
	}

	token, exp, err := s.JWT.Generate(u.ID)
	if err != nil {
		return nil, err
	}

	s.queueWelcomeEmail(ctx, u)
	s.indexUser(ctx, u)

	return &Session{User: u, Token: token, ExpiresAt: exp}, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Unauthorized("invalid credentials")
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	token, exp, err := s.JWT.Generate(u.ID)
	if err != nil {
		return nil, err
	}
	return &Session{User: u, Token: token, ExpiresAt: exp}, nil
}

// Me returns the caller's own record with posts expanded.
func (s *UserService) Me(ctx context.Context, userID string) (*entity.User, []entity.Post, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, apperr.NotFound("user not found")
		}
		return nil, nil, err
	}
	posts, err := s.Posts.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return u, posts, nil
}

type UpdateProfileInput struct {
	FullName string
	Bio      string
	Username string
}

// UpdateProfile applies a partial update. Only the profile's own user may
// mutate it.
func (s *UserService) UpdateProfile(ctx context.Context, callerID, targetID string, in UpdateProfileInput) (*entity.User, error) {
	if callerID != targetID {
		return nil, apperr.Forbidden("you can only update your own profile")
	}
	u, err := s.Users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	if in.FullName != "" {
		u.FullName = in.FullName
	}
	if in.Bio != "" {
		u.Bio = in.Bio
	}
	if in.Username != "" {
		u.Username = in.Username
	}
	if err := s.Users.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.BadRequest("username already taken")
		}
		return nil, err
	}
	s.indexUser(ctx, u)
	return u, nil
}

// PublicProfile returns profile fields plus follower/following/post counts.
func (s *UserService) PublicProfile(ctx context.Context, userID string) (*entity.User, entity.UserStats, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, entity.UserStats{}, apperr.NotFound("user not found")
		}
		return nil, entity.UserStats{}, err
	}
	stats, err := s.Users.Stats(ctx, userID)
	if err != nil {
		return nil, entity.UserStats{}, err
	}
	return u, stats, nil
}

func (s *UserService) Follow(ctx context.Context, callerID, targetID string) error {
	if callerID == targetID {
		return apperr.BadRequest("you cannot follow yourself")
	}
	if _, err := s.Users.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("user not found")
		}
		return err
	}
	if err := s.Users.Follow(ctx, callerID, targetID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return apperr.BadRequest("you are already following this user")
		}
		return err
	}
	return nil
}

func (s *UserService) Unfollow(ctx context.Context, callerID, targetID string) error {
	if _, err := s.Users.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("user not found")
		}
		return err
	}
	if err := s.Users.Unfollow(ctx, callerID, targetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.BadRequest("you are not following this user")
		}
		return err
	}
	return nil
}

func (s *UserService) Followers(ctx context.Context, userID string) ([]entity.Profile, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return s.Users.Followers(ctx, userID)
}

func (s *UserService) Following(ctx context.Context, userID string) ([]entity.Profile, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return s.Users.Following(ctx, userID)
}

func (s *UserService) queueWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: "welcome",
		Data:     map[string]any{"AppName": s.AppName, "Username": u.Username},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("queue welcome email failed")
	}
}

func (s *UserService) indexUser(ctx context.Context, u *entity.User) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	doc := map[string]any{
		"id":              u.ID,
		"username":        u.Username,
		"full_name":       u.FullName,
		"bio":             u.Bio,
		"profile_picture": u.ProfilePicture,
		"created_at":      u.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
}

// SearchUsers performs a multi_match search on username and full name.
func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"username^2", "full_name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESUsersIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
