package memory

import (
	"context"
	"sort"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
)

func sortTags(tags []types.Tag) {
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
}

func (s *Store) ListTags(ctx context.Context) ([]types.Tag, error) {
	if err := s.faults.get("ListTags"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tags := make([]types.Tag, 0, len(s.d.tags))
	for _, t := range s.d.tags {
		tags = append(tags, t)
	}
	sortTags(tags)

	return tags, nil
}

func (s *Store) CreateTag(ctx context.Context, name, color string) (types.Tag, error) {
	if err := s.faults.get("CreateTag"); err != nil {
		return types.Tag{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.d.tags {
		if t.Name == name {
			return types.Tag{}, duplicate("create tag")
		}
	}

	t := types.Tag{ID: newID(), Name: name, Color: color, CreatedAt: s.now()}
	s.d.tags[t.ID] = t

	return t, nil
}

func (s *Store) DeleteTag(ctx context.Context, id string) error {
	if err := s.faults.get("DeleteTag"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.d.tags[id]; !ok {
		return notFound("delete tag")
	}

	delete(s.d.tags, id)
	for _, set := range s.d.videoTags {
		delete(set, id)
	}

	return nil
}

func (s *Store) GetTagsForVideo(ctx context.Context, videoID string) ([]types.Tag, error) {
	if err := s.faults.get("GetTagsForVideo"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tags := []types.Tag{}
	for tagID := range s.d.videoTags[videoID] {
		if t, ok := s.d.tags[tagID]; ok {
			tags = append(tags, t)
		}
	}
	sortTags(tags)

	return tags, nil
}

func (s *Store) DeleteVideoTags(ctx context.Context, videoID string) error {
	if err := s.faults.get("DeleteVideoTags"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.d.videoTags, videoID)
	return nil
}

func (s *Store) InsertVideoTag(ctx context.Context, videoID, tagID string) error {
	if err := s.faults.get("InsertVideoTag"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.d.videos[videoID]; !ok {
		return notFound("insert video tag")
	}
	if _, ok := s.d.tags[tagID]; !ok {
		return notFound("insert video tag")
	}

	set, ok := s.d.videoTags[videoID]
	if !ok {
		set = make(map[string]struct{})
		s.d.videoTags[videoID] = set
	}
	if _, exists := set[tagID]; exists {
		return duplicate("insert video tag")
	}
	set[tagID] = struct{}{}

	return nil
}

func (s *Store) DeleteVideoTag(ctx context.Context, videoID, tagID string) error {
	if err := s.faults.get("DeleteVideoTag"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.d.videoTags[videoID], tagID)
	return nil
}
