// Package contact validates and accepts submissions of the home page contact
// form. Delivery is delegated to a Notifier; the default one only logs.
package contact

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"

	referencePrefix = "msg_"
	maxMessageRunes = 2000
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ErrInvalidInput is matched by every *ValidationError.
var ErrInvalidInput = errors.New("contact: invalid input")

// ValidationError names the first form field that failed validation and the
// message shown to the visitor.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "contact: " + e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Form is the raw contact form as posted.
type Form struct {
	Name    string
	Email   string
	Message string
}

// Validate checks name, email and message in that order and reports the first
// failure only.
func (f Form) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return &ValidationError{Field: FieldName, Message: "请输入您的姓名"}
	}
	if strings.TrimSpace(f.Email) == "" || !emailPattern.MatchString(f.Email) {
		return &ValidationError{Field: FieldEmail, Message: "请输入有效的邮箱地址"}
	}
	if strings.TrimSpace(f.Message) == "" {
		return &ValidationError{Field: FieldMessage, Message: "请输入您的留言"}
	}
	if len([]rune(f.Message)) > maxMessageRunes {
		return &ValidationError{Field: FieldMessage, Message: "留言内容过长"}
	}
	return nil
}

// Submission is an accepted, sanitised form.
type Submission struct {
	Reference  string
	Name       string
	Email      string
	Message    string
	ReceivedAt time.Time
}

// Notifier delivers accepted submissions.
type Notifier interface {
	Notify(ctx context.Context, s Submission) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, s Submission) error

func (f NotifierFunc) Notify(ctx context.Context, s Submission) error { return f(ctx, s) }

// LogNotifier records submissions in the log instead of delivering them.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) Notify(_ context.Context, s Submission) error {
	logger := n.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("contact submission received",
		zap.String("reference", s.Reference),
		zap.String("name", s.Name),
		zap.String("email", s.Email),
		zap.Int("message_length", len([]rune(s.Message))),
		zap.Time("received_at", s.ReceivedAt),
	)
	return nil
}

// ServiceDeps wires the collaborators of Service. Zero values fall back to
// defaults.
type ServiceDeps struct {
	Notifier    Notifier
	Clock       func() time.Time
	IDGenerator func() string
}

// Service accepts contact form submissions.
type Service struct {
	notifier Notifier
	clock    func() time.Time
	newID    func() string
	policy   *bluemonday.Policy
}

// NewService builds a Service. A nil notifier logs nothing.
func NewService(deps ServiceDeps) *Service {
	notifier := deps.Notifier
	if notifier == nil {
		notifier = LogNotifier{}
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = func() string {
			return referencePrefix + ulid.Make().String()
		}
	}
	return &Service{
		notifier: notifier,
		clock: func() time.Time {
			return clock().UTC()
		},
		newID:  idGen,
		policy: bluemonday.StrictPolicy(),
	}
}

// Submit validates f, strips any markup and hands the result to the notifier.
// Validation failures are returned as *ValidationError.
func (s *Service) Submit(ctx context.Context, f Form) (Submission, error) {
	if err := f.Validate(); err != nil {
		return Submission{}, err
	}
	sub := Submission{
		Reference:  s.newID(),
		Name:       s.sanitize(f.Name),
		Email:      strings.TrimSpace(f.Email),
		Message:    s.sanitize(f.Message),
		ReceivedAt: s.clock(),
	}
	// a message made only of markup sanitises to nothing
	if sub.Name == "" {
		return Submission{}, &ValidationError{Field: FieldName, Message: "请输入您的姓名"}
	}
	if sub.Message == "" {
		return Submission{}, &ValidationError{Field: FieldMessage, Message: "请输入您的留言"}
	}
	if err := s.notifier.Notify(ctx, sub); err != nil {
		return Submission{}, err
	}
	return sub, nil
}

func (s *Service) sanitize(v string) string {
	return strings.TrimSpace(s.policy.Sanitize(v))
}
