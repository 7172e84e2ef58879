package application

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/oksasatya/pixelgram/internal/domain/entity"
	"github.com/oksasatya/pixelgram/internal/domain/repository"
	"github.com/oksasatya/pixelgram/internal/infrastructure/imagestore"
)

// In-memory repository fakes backing the service tests. They mirror the
// postgres implementations' contracts: sentinel errors, newest-first
// ordering, hydrated author profiles.

type memUsers struct {
	seq     int
	byID    map[string]*entity.User
	follows map[string]map[string]bool // follower -> set of followed
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[string]*entity.User{}, follows: map[string]map[string]bool{}}
}

func (m *memUsers) add(username, email string) *entity.User {
	u := &entity.User{
		Username:  username,
		Email:     email,
		Password:  "x",
		CreatedAt: time.Now(),
	}
	_ = m.Create(context.Background(), u)
	return u
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	for _, ex := range m.byID {
		if ex.Email == u.Email || ex.Username == u.Username {
			return repository.ErrDuplicate
		}
	}
	m.seq++
	u.ID = fmt.Sprintf("user-%d", m.seq)
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	for _, u := range m.byID {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	cur, ok := m.byID[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for id, ex := range m.byID {
		if id != u.ID && ex.Username == u.Username {
			return repository.ErrDuplicate
		}
	}
	*cur = *u
	return nil
}

func (m *memUsers) Stats(_ context.Context, userID string) (entity.UserStats, error) {
	st := entity.UserStats{Following: len(m.follows[userID])}
	for _, set := range m.follows {
		if set[userID] {
			st.Followers++
		}
	}
	return st, nil
}

func (m *memUsers) Follow(_ context.Context, followerID, targetID string) error {
	if m.follows[followerID] == nil {
		m.follows[followerID] = map[string]bool{}
	}
	if m.follows[followerID][targetID] {
		return repository.ErrDuplicate
	}
	m.follows[followerID][targetID] = true
	return nil
}

func (m *memUsers) Unfollow(_ context.Context, followerID, targetID string) error {
	if !m.follows[followerID][targetID] {
		return repository.ErrNotFound
	}
	delete(m.follows[followerID], targetID)
	return nil
}

func (m *memUsers) Followers(_ context.Context, userID string) ([]entity.Profile, error) {
	out := []entity.Profile{}
	for follower, set := range m.follows {
		if set[userID] {
			out = append(out, m.byID[follower].Profile())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memUsers) Following(_ context.Context, userID string) ([]entity.Profile, error) {
	out := []entity.Profile{}
	for target := range m.follows[userID] {
		out = append(out, m.byID[target].Profile())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memPosts struct {
	seq      int
	users    *memUsers
	comments *memComments // cascaded on Delete, like the SQL transaction
	byID     map[string]*entity.Post
	likes    map[string]map[string]bool // post -> set of likers
}

func newMemPosts(users *memUsers) *memPosts {
	return &memPosts{users: users, byID: map[string]*entity.Post{}, likes: map[string]map[string]bool{}}
}

func (m *memPosts) Create(_ context.Context, p *entity.Post) error {
	m.seq++
	p.ID = fmt.Sprintf("post-%d", m.seq)
	p.CreatedAt = time.Now().Add(time.Duration(m.seq) * time.Second)
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memPosts) hydrate(p *entity.Post) *entity.Post {
	cp := *p
	if u, ok := m.users.byID[p.UserID]; ok {
		prof := u.Profile()
		cp.Author = &prof
	}
	cp.LikesCount = len(m.likes[p.ID])
	return &cp
}

func (m *memPosts) GetByID(_ context.Context, id string) (*entity.Post, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return m.hydrate(p), nil
}

func (m *memPosts) newestFirst(keep func(*entity.Post) bool, limit int) []entity.Post {
	out := []entity.Post{}
	for _, p := range m.byID {
		if keep(p) {
			out = append(out, *m.hydrate(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (m *memPosts) ListRecent(_ context.Context, limit int) ([]entity.Post, error) {
	return m.newestFirst(func(*entity.Post) bool { return true }, limit), nil
}

func (m *memPosts) ListByUser(_ context.Context, userID string) ([]entity.Post, error) {
	return m.newestFirst(func(p *entity.Post) bool { return p.UserID == userID }, 0), nil
}

func (m *memPosts) Feed(_ context.Context, userID string, limit int) ([]entity.Post, error) {
	followed := m.users.follows[userID]
	return m.newestFirst(func(p *entity.Post) bool {
		return p.UserID == userID || followed[p.UserID]
	}, limit), nil
}

func (m *memPosts) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return repository.ErrNotFound
	}
	if m.comments != nil {
		for cid, c := range m.comments.byID {
			if c.PostID == id {
				delete(m.comments.byID, cid)
			}
		}
	}
	delete(m.byID, id)
	delete(m.likes, id)
	return nil
}

func (m *memPosts) Like(_ context.Context, postID, userID string) (int, error) {
	if m.likes[postID] == nil {
		m.likes[postID] = map[string]bool{}
	}
	if m.likes[postID][userID] {
		return 0, repository.ErrDuplicate
	}
	m.likes[postID][userID] = true
	return len(m.likes[postID]), nil
}

func (m *memPosts) Unlike(_ context.Context, postID, userID string) (int, error) {
	if !m.likes[postID][userID] {
		return 0, repository.ErrNotFound
	}
	delete(m.likes[postID], userID)
	return len(m.likes[postID]), nil
}

func (m *memPosts) Likers(_ context.Context, postID string) ([]entity.Profile, error) {
	out := []entity.Profile{}
	for userID := range m.likes[postID] {
		out = append(out, m.users.byID[userID].Profile())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memComments struct {
	seq   int
	users *memUsers
	byID  map[string]*entity.Comment
}

func newMemComments(users *memUsers) *memComments {
	return &memComments{users: users, byID: map[string]*entity.Comment{}}
}

func (m *memComments) Create(_ context.Context, c *entity.Comment) error {
	m.seq++
	c.ID = fmt.Sprintf("comment-%d", m.seq)
	c.CreatedAt = time.Now().Add(time.Duration(m.seq) * time.Second)
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *memComments) GetByID(_ context.Context, id string) (*entity.Comment, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	if u, ok := m.users.byID[c.UserID]; ok {
		prof := u.Profile()
		cp.Author = &prof
	}
	return &cp, nil
}

func (m *memComments) ListByPost(_ context.Context, postID string, limit int) ([]entity.Comment, error) {
	out := []entity.Comment{}
	for _, c := range m.byID {
		if c.PostID == postID {
			cp, _ := m.GetByID(context.Background(), c.ID)
			out = append(out, *cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memComments) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

// fakeImages records uploads and deletions; Fail makes Delete error to
// exercise the abort-before-database-write path.
type fakeImages struct {
	uploads int
	deleted []string
	Fail    bool
}

func (f *fakeImages) UploadInline(_ context.Context, ownerID, _ string) (imagestore.Uploaded, error) {
	f.uploads++
	key := fmt.Sprintf("posts/%s/img-%d.jpg", ownerID, f.uploads)
	return imagestore.Uploaded{URL: "https://storage.googleapis.com/bucket/" + key, ObjectKey: key}, nil
}

func (f *fakeImages) Delete(_ context.Context, objectKey string) error {
	if f.Fail {
		return fmt.Errorf("storage unavailable")
	}
	f.deleted = append(f.deleted, objectKey)
	return nil
}

// Interface conformance checks.
var (
	_ repository.UserRepository    = (*memUsers)(nil)
	_ repository.PostRepository    = (*memPosts)(nil)
	_ repository.CommentRepository = (*memComments)(nil)
	_ ImageStore                   = (*fakeImages)(nil)
)
