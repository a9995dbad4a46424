package contact

import (
	"context"
	"strings"
	"time"

	"github.com/Domenick1991/skyfare/internal/domain"
	"github.com/Domenick1991/skyfare/internal/logger"
	"github.com/Domenick1991/skyfare/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ContactUseCase interface {
	Submit(ctx context.Context, input SubmitInput) (*domain.Contact, error)
	List(ctx context.Context) ([]domain.Contact, error)
}

type SubmitInput struct {
	UserID  *string `json:"-"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Subject string  `json:"subject"`
	Message string  `json:"message"`
}

type ContactService struct {
	repo repository.ContactRepository
	now  func() time.Time
	log  *zap.Logger
}

type Option func(*ContactService)

func WithClock(now func() time.Time) Option {
	return func(s *ContactService) { s.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *ContactService) { s.log = l }
}

func NewContactService(repo repository.ContactRepository, opts ...Option) *ContactService {
	s := &ContactService{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.OrNop(s.log)
	return s
}

func (s *ContactService) Submit(ctx context.Context, input SubmitInput) (*domain.Contact, error) {
	fields := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(input.Email) == "" {
		fields["email"] = "email is required"
	} else if !domain.ValidEmail(strings.TrimSpace(input.Email)) {
		fields["email"] = "invalid email format"
	}
	if strings.TrimSpace(input.Subject) == "" {
		fields["subject"] = "subject is required"
	}
	if strings.TrimSpace(input.Message) == "" {
		fields["message"] = "message is required"
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Message: "invalid contact message", Fields: fields}
	}

	c := domain.Contact{
		ID:        uuid.NewString(),
		UserID:    input.UserID,
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		Subject:   strings.TrimSpace(input.Subject),
		Message:   input.Message,
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}
	if err := s.repo.Append(ctx, c); err != nil {
		return nil, err
	}
	s.log.Info("contact message received", zap.String("contact_id", c.ID))
	return &c, nil
}

// List reports an unreadable inbox as empty.
func (s *ContactService) List(ctx context.Context) ([]domain.Contact, error) {
	contacts, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("list contacts", zap.Error(err))
		return []domain.Contact{}, nil
	}
	return contacts, nil
}

var _ ContactUseCase = (*ContactService)(nil)
