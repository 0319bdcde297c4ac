package services

import (
	"encoding/json"
	"sort"
	"time"

	"marketplace-server/models"
	"marketplace-server/storage"
)

// QueuedListing is one listing in the moderation queue, tagged with the kind
// it came from. The record keeps its kind-specific fields; the tag and the
// creation time are what the merged ordering works on.
type QueuedListing struct {
	ListingType EntityKind
	CreatedAt   time.Time
	Record      Moderatable
}

// MarshalJSON flattens the record and injects the listingType tag alongside
// its fields, the shape moderation dashboards expect.
func (q QueuedListing) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(q.Record)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	tag, err := json.Marshal(q.ListingType)
	if err != nil {
		return nil, err
	}
	fields["listingType"] = tag
	return json.Marshal(fields)
}

// ModerationQueueService answers the paginated moderation queue queries.
type ModerationQueueService struct{}

func NewModerationQueueService() *ModerationQueueService {
	return &ModerationQueueService{}
}

// ListListings returns one page of the listing queue. A single kind pushes
// pagination down to SQL. kind "all" fetches every sub-kind unpaginated,
// merges, sorts newest-first and slices: correct global ordering across
// independent tables needs the full materialized merge, and costs O(total
// matching listings) per page. The returned total is the pre-pagination sum
// across the queried kinds.
func (s *ModerationQueueService) ListListings(kind, status string, page, limit int) ([]QueuedListing, int64, error) {
	skip := (page - 1) * limit

	if kind != "all" {
		spec, err := LookupListingKind(kind)
		if err != nil {
			return nil, 0, err
		}
		total, err := spec.Count(storage.DB, status)
		if err != nil {
			return nil, 0, &StorageFault{Err: err}
		}
		items, err := spec.List(storage.DB, status, skip, limit)
		if err != nil {
			return nil, 0, &StorageFault{Err: err}
		}
		return items, total, nil
	}

	var merged []QueuedListing
	var total int64
	for _, sub := range ListingKinds {
		spec := kindRegistry[sub]
		count, err := spec.Count(storage.DB, status)
		if err != nil {
			return nil, 0, &StorageFault{Err: err}
		}
		total += count

		items, err := spec.List(storage.DB, status, 0, 0)
		if err != nil {
			return nil, 0, &StorageFault{Err: err}
		}
		merged = append(merged, items...)
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	if skip >= len(merged) {
		return []QueuedListing{}, total, nil
	}
	end := skip + limit
	if end > len(merged) {
		end = len(merged)
	}
	return merged[skip:end], total, nil
}

// ListUsers returns one page of the account moderation queue.
func (s *ModerationQueueService) ListUsers(status string, page, limit int) ([]models.User, int64, error) {
	var total int64
	if err := storage.DB.Model(&models.User{}).Where("status = ?", status).Count(&total).Error; err != nil {
		return nil, 0, &StorageFault{Err: err}
	}

	var users []models.User
	err := storage.DB.Where("status = ?", status).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, &StorageFault{Err: err}
	}
	return users, total, nil
}

// ListInterests returns one page of the interest moderation queue, each row
// expanded with sender, receiver and the referenced listing's display fields.
func (s *ModerationQueueService) ListInterests(status string, page, limit int) ([]models.Interest, int64, error) {
	var total int64
	if err := storage.DB.Model(&models.Interest{}).Where("status = ?", status).Count(&total).Error; err != nil {
		return nil, 0, &StorageFault{Err: err}
	}

	var interests []models.Interest
	err := storage.DB.Where("status = ?", status).
		Preload("Sender", ownerProfile).
		Preload("Receiver", ownerProfile).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&interests).Error
	if err != nil {
		return nil, 0, &StorageFault{Err: err}
	}

	for i := range interests {
		if err := resolveInterestListing(storage.DB, &interests[i]); err != nil {
			return nil, 0, &StorageFault{Err: err}
		}
	}
	return interests, total, nil
}
