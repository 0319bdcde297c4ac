package services

import (
	"errors"
	"log"

	"marketplace-server/models"
	"marketplace-server/storage"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

var moderationActions = []string{"approve", "reject"}

// ModerationService is the transition engine: it moves entities between
// lifecycle states and records the notifications that go with each move.
type ModerationService struct {
	notifications *NotificationService
}

func NewModerationService() *ModerationService {
	return &ModerationService{notifications: NewNotificationService()}
}

// Transition applies one approve/reject to one entity. The current status is
// overwritten whatever it is: re-approving an active listing writes again and
// notifies again; see TestTransitionRepeatApprove before changing that.
func (s *ModerationService) Transition(kind string, id uint, action string) error {
	if !slices.Contains(moderationActions, action) {
		return &ValidationError{Message: "Invalid action"}
	}
	spec, err := LookupKind(kind)
	if err != nil {
		return err
	}
	return s.transitionResolved(spec, id, action)
}

func (s *ModerationService) transitionResolved(spec *KindSpec, id uint, action string) error {
	entity, err := spec.Load(storage.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Message: spec.NotFoundMessage}
		}
		return &StorageFault{Err: err}
	}

	status, outcome := spec.RejectedStatus, "rejected"
	if action == "approve" {
		status, outcome = spec.ApprovedStatus, "approved"
	}

	entity.SetStatus(status)
	if err := storage.DB.Save(entity).Error; err != nil {
		return &StorageFault{Err: err}
	}

	// The transition is not done until its notifications are persisted; a
	// dispatcher failure fails the whole transition.
	title, message := spec.Describe(entity, outcome)
	notification := &models.Notification{
		RecipientID:  entity.RecipientID(),
		Type:         spec.NotificationType,
		Title:        title,
		Message:      message,
		RelatedModel: spec.RelatedModel,
		RelatedID:    entity.EntityID(),
	}
	if err := s.notifications.Create(notification); err != nil {
		return err
	}

	// Approval of an interest additionally alerts the receiver. Rejection is
	// silent to them.
	if action == "approve" {
		if receiver, ok := entity.(ReceiverNotifier); ok {
			receivedTitle, receivedMessage := receiver.ReceivedNotification()
			received := &models.Notification{
				RecipientID:  receiver.ReceiverRecipientID(),
				Type:         "interest_received",
				Title:        receivedTitle,
				Message:      receivedMessage,
				RelatedModel: spec.RelatedModel,
				RelatedID:    entity.EntityID(),
			}
			if err := s.notifications.Create(received); err != nil {
				return err
			}
		}
	}

	return nil
}

// BulkItem targets one entity in a bulk request. Kind is empty when the kind
// is fixed at call scope (user and interest bulk endpoints).
type BulkItem struct {
	ID   uint
	Kind string
}

type BulkOutcome struct {
	ID   uint   `json:"id"`
	Kind string `json:"type,omitempty"`
}

type BulkFailure struct {
	ID    uint   `json:"id"`
	Kind  string `json:"type,omitempty"`
	Error string `json:"error"`
}

// BulkResult is the per-item ledger a bulk call always returns once past
// upfront validation, however many items failed.
type BulkResult struct {
	Success []BulkOutcome `json:"success"`
	Failed  []BulkFailure `json:"failed"`
}

// BulkTransition processes heterogeneous (id, kind) items sequentially. Items
// are deliberately not processed concurrently: each one is its own
// load-mutate-save-notify unit and two items may target the same row.
func (s *ModerationService) BulkTransition(items []BulkItem, action string) (*BulkResult, error) {
	if len(items) == 0 {
		return nil, &ValidationError{Message: "Invalid request data"}
	}
	if !slices.Contains(moderationActions, action) {
		return nil, &ValidationError{Message: "Invalid action"}
	}
	return s.bulkApply(items, action, true), nil
}

// BulkTransitionIDs is the fixed-kind variant: ids only, kind decided by the
// endpoint. Outcome entries carry no kind tag.
func (s *ModerationService) BulkTransitionIDs(kind string, ids []uint, action string) (*BulkResult, error) {
	if len(ids) == 0 {
		return nil, &ValidationError{Message: "Invalid request data"}
	}
	if !slices.Contains(moderationActions, action) {
		return nil, &ValidationError{Message: "Invalid action"}
	}
	items := make([]BulkItem, len(ids))
	for i, id := range ids {
		items[i] = BulkItem{ID: id, Kind: kind}
	}
	return s.bulkApply(items, action, false), nil
}

func (s *ModerationService) bulkApply(items []BulkItem, action string, tagged bool) *BulkResult {
	results := &BulkResult{Success: []BulkOutcome{}, Failed: []BulkFailure{}}

	for _, item := range items {
		tag := ""
		if tagged {
			tag = item.Kind
		}

		spec, err := LookupKind(item.Kind)
		if err != nil {
			results.Failed = append(results.Failed, BulkFailure{ID: item.ID, Kind: tag, Error: err.Error()})
			continue
		}

		if err := s.transitionResolved(spec, item.ID, action); err != nil {
			log.Printf("Error processing %s %d during bulk %s: %v", item.Kind, item.ID, action, err)
			results.Failed = append(results.Failed, BulkFailure{ID: item.ID, Kind: tag, Error: err.Error()})
			continue
		}

		results.Success = append(results.Success, BulkOutcome{ID: item.ID, Kind: tag})
	}

	return results
}
