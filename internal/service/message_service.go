package service

import (
	"context"
	"errors"

	"github.com/guibitar/fit-flow-control-sub001/internal/apperrors"
	"github.com/guibitar/fit-flow-control-sub001/internal/domain"
	"github.com/guibitar/fit-flow-control-sub001/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrMessageNotFound   = apperrors.New(apperrors.KindNotFound, "message not found")
	ErrRecipientNotFound = apperrors.New(apperrors.KindNotFound, "recipient not found")
	ErrEmptyMessage      = apperrors.New(apperrors.KindValidation, "message body is required")
)

// MessageService manages messages and notifications between users. All
// operations are scoped to the calling user as sender or recipient.
type MessageService interface {
	List(ctx context.Context, userID primitive.ObjectID, order int) ([]domain.Message, error)
	Filter(ctx context.Context, userID primitive.ObjectID, payload map[string]any, order int) ([]domain.Message, error)
	Get(ctx context.Context, userID, id primitive.ObjectID) (*domain.Message, error)
	Send(ctx context.Context, senderID primitive.ObjectID, msg *domain.Message) (*domain.Message, error)
	Update(ctx context.Context, userID, id primitive.ObjectID, payload map[string]any) (*domain.Message, error)
	MarkRead(ctx context.Context, userID, id primitive.ObjectID) (*domain.Message, error)
	Delete(ctx context.Context, userID, id primitive.ObjectID) error
}

type messageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

// NewMessageService creates a new instance of messageService.
func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) MessageService {
	return &messageService{messageRepo: messageRepo, userRepo: userRepo}
}

var messageUpdateFields = map[string]bool{
	"body": true,
	"read": true,
}

var messageFilterFields = map[string]bool{
	"kind":     true,
	"read":     true,
	"clientId": true,
}

func (s *messageService) List(ctx context.Context, userID primitive.ObjectID, order int) ([]domain.Message, error) {
	return s.messageRepo.List(ctx, userID, order)
}

func (s *messageService) Filter(ctx context.Context, userID primitive.ObjectID, payload map[string]any, order int) ([]domain.Message, error) {
	eq, err := sanitizeFilter(payload, messageFilterFields)
	if err != nil {
		return nil, err
	}
	if err := coerceObjectID(eq, "clientId"); err != nil {
		return nil, err
	}
	if err := coerceBool(eq, "read"); err != nil {
		return nil, err
	}
	return s.messageRepo.Filter(ctx, userID, eq, order)
}

func (s *messageService) Get(ctx context.Context, userID, id primitive.ObjectID) (*domain.Message, error) {
	msg, err := s.messageRepo.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return msg, nil
}

// Send stores a new message after verifying the recipient exists. The
// sender is always the authenticated caller regardless of the payload.
func (s *messageService) Send(ctx context.Context, senderID primitive.ObjectID, msg *domain.Message) (*domain.Message, error) {
	if msg.Body == "" {
		return nil, ErrEmptyMessage
	}
	if _, err := s.userRepo.GetByID(ctx, msg.RecipientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}

	msg.SenderID = senderID
	msg.Read = false
	if msg.Kind == "" {
		msg.Kind = domain.MessageKindMessage
	}

	id, err := s.messageRepo.Create(ctx, msg)
	if err != nil {
		return nil, err
	}
	msg.ID = id
	return msg, nil
}

// Update applies a partial update to a message. Only a participant can do
// this; the repository scope already guarantees that. A blanked body is
// rejected rather than unset, since a message without text is meaningless.
func (s *messageService) Update(ctx context.Context, userID, id primitive.ObjectID, payload map[string]any) (*domain.Message, error) {
	if raw, ok := payload["body"]; ok {
		if body, _ := raw.(string); body == "" {
			return nil, ErrEmptyMessage
		}
	}

	set, unset := sanitizeUpdate(payload, messageUpdateFields)
	if err := s.messageRepo.Update(ctx, userID, id, set, unset); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return s.Get(ctx, userID, id)
}

// MarkRead flags a message as read.
func (s *messageService) MarkRead(ctx context.Context, userID, id primitive.ObjectID) (*domain.Message, error) {
	return s.Update(ctx, userID, id, map[string]any{"read": true})
}

func (s *messageService) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	if err := s.messageRepo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMessageNotFound
		}
		return err
	}
	return nil
}
