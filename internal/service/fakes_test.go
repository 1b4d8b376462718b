package service

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/TRrajputDEV/Pixels-sub000/internal/model"
)

// memVideos is an in-memory VideoStore. Find returns videos in insertion order.
type memVideos struct {
	mu         sync.Mutex
	videos     []model.Video
	err        error
	incErr     error
	increments []string
	incDone    chan struct{}
}

func (m *memVideos) FindByID(_ context.Context, id string) (*model.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, v := range m.videos {
		if v.ID == id {
			return &v, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memVideos) Find(_ context.Context, f model.VideoFilter) ([]model.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []model.Video
	for _, v := range m.videos {
		if f.OwnerID != "" && v.OwnerID != f.OwnerID {
			continue
		}
		if f.Published != nil && v.IsPublished != *f.Published {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(v.Title), q) && !strings.Contains(strings.ToLower(v.Description), q) {
				continue
			}
		}
		out = append(out, v)
	}
	return out, nil
}

func (m *memVideos) Create(_ context.Context, v *model.Video) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.videos = append(m.videos, *v)
	return nil
}

func (m *memVideos) UpdateDiscovery(_ context.Context, id string, d model.Discovery) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.videos {
		if m.videos[i].ID == id {
			m.videos[i].Tags = d.Tags
			m.videos[i].Mood = d.Mood
			m.videos[i].Category = d.Category
			m.videos[i].DurationCategory = d.DurationCategory
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *memVideos) FindUntagged(_ context.Context, limit int) ([]model.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Video
	for _, v := range m.videos {
		if v.Category == "" && len(out) < limit {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memVideos) IncrementViews(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.incDone != nil {
		defer func() { m.incDone <- struct{}{} }()
	}
	if m.incErr != nil {
		return m.incErr
	}
	m.increments = append(m.increments, id)
	return nil
}

func (m *memVideos) incremented() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.increments)
}

// memCounts serves both LikeStore and CommentStore from fixed maps.
type memCounts struct {
	byVideo    map[string]int64
	byLiker    map[string]int64
	byOwner    map[string]int64
	err        error
	blockUntil <-chan struct{}
}

func (m *memCounts) CountByVideos(ctx context.Context, ids []string) (map[string]int64, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[string]int64, len(ids))
	for _, id := range ids {
		if n, ok := m.byVideo[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

func (m *memCounts) CountByLiker(ctx context.Context, userID string) (int64, error) {
	if m.blockUntil != nil {
		select {
		case <-m.blockUntil:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	if m.err != nil {
		return 0, m.err
	}
	return m.byLiker[userID], nil
}

func (m *memCounts) CountReceivedByOwner(_ context.Context, ownerID string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.byOwner[ownerID], nil
}

type memSubs struct {
	byChannel    map[string]int64
	bySubscriber map[string]int64
	err          error
}

func (m *memSubs) CountByChannel(_ context.Context, id string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.byChannel[id], nil
}

func (m *memSubs) CountBySubscriber(_ context.Context, id string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.bySubscriber[id], nil
}

type memUsers struct {
	ids map[string]bool
	err error
}

func (m *memUsers) Exists(_ context.Context, id string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.ids[id], nil
}
