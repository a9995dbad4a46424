package account

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Domenick1991/skyfare/internal/domain"
	"github.com/Domenick1991/skyfare/internal/logger"
	"github.com/Domenick1991/skyfare/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultIdleTimeout = 5 * time.Minute
	defaultExpiryTick  = time.Second
	minPasswordLength  = 6
)

type AccountUseCase interface {
	Signup(ctx context.Context, input SignupInput) (*domain.Session, error)
	Login(ctx context.Context, input LoginInput) (*domain.Session, error)
	Logout(ctx context.Context, token string) error
	UpdateSession(ctx context.Context, token string) (*domain.Session, error)
	Session(ctx context.Context, token string) (*domain.Session, error)
	UpdateProfile(ctx context.Context, userID string, input ProfileInput) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

type SignupInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileInput leaves the password untouched when Password is empty.
type ProfileInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type session struct {
	token   string
	userID  string
	expires time.Time
}

type AccountService struct {
	mu       sync.Mutex
	users    repository.UserRepository
	cipher   PasswordCipher
	tokens   *TokenIssuer
	sessions map[string]*session
	idle     time.Duration
	tick     time.Duration
	now      func() time.Time
	log      *zap.Logger

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

type Option func(*AccountService)

func WithIdleTimeout(d time.Duration) Option {
	return func(s *AccountService) {
		if d > 0 {
			s.idle = d
		}
	}
}

// WithExpiryTick sets how often the reaper looks for idle sessions.
func WithExpiryTick(d time.Duration) Option {
	return func(s *AccountService) {
		if d > 0 {
			s.tick = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *AccountService) { s.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *AccountService) { s.log = l }
}

func NewAccountService(users repository.UserRepository, cipher PasswordCipher, tokens *TokenIssuer, opts ...Option) *AccountService {
	s := &AccountService{
		users:    users,
		cipher:   cipher,
		tokens:   tokens,
		sessions: make(map[string]*session),
		idle:     defaultIdleTimeout,
		tick:     defaultExpiryTick,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.OrNop(s.log)
	return s
}

func (s *AccountService) Signup(ctx context.Context, input SignupInput) (*domain.Session, error) {
	input.Email = strings.TrimSpace(input.Email)
	if input.Role == "" {
		input.Role = domain.RoleUser
	}

	fields := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "name is required"
	}
	if !domain.ValidEmail(input.Email) {
		fields["email"] = "valid email is required"
	}
	if len(input.Password) < minPasswordLength {
		fields["password"] = "password must be at least 6 characters"
	}
	if !input.Role.Valid() {
		fields["role"] = "unknown role"
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Message: "invalid signup", Fields: fields}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	if findByEmail(users, input.Email) >= 0 {
		return nil, domain.ErrEmailTaken
	}

	encrypted, err := s.cipher.Encrypt(input.Password)
	if err != nil {
		return nil, err
	}
	user := domain.User{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(input.Name),
		Email:    input.Email,
		Password: encrypted,
		Role:     input.Role,
	}
	if err := s.users.SaveAll(ctx, append(users, user)); err != nil {
		return nil, err
	}
	s.log.Info("user signed up", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))

	return s.open(ctx, user)
}

// Login reports ErrInvalidCredentials for an unknown email, a wrong password
// and an unreadable stored password alike.
func (s *AccountService) Login(ctx context.Context, input LoginInput) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.readUsers(ctx)
	i := findByEmail(users, strings.TrimSpace(input.Email))
	if i < 0 || !s.cipher.Verify(users[i].Password, input.Password) {
		s.log.Debug("login rejected", zap.String("email", input.Email))
		return nil, domain.ErrInvalidCredentials
	}
	return s.open(ctx, users[i])
}

// Logout ends the session. Logging out an unknown or expired session
// succeeds.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, claims.SessionID)
	s.log.Info("user logged out", zap.String("user_id", claims.UserID))
	return s.users.SetCurrent(ctx, nil)
}

// UpdateSession slides the idle deadline of a live session.
func (s *AccountService) UpdateSession(ctx context.Context, token string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.live(token)
	if err != nil {
		return nil, err
	}
	sess.expires = s.now().Add(s.idle)
	return s.view(ctx, sess)
}

func (s *AccountService) Session(ctx context.Context, token string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.live(token)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, sess)
}

// UpdateProfile changes name, email and optionally password. The role is
// never changed here.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, input ProfileInput) (*domain.User, error) {
	input.Email = strings.TrimSpace(input.Email)

	fields := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "name is required"
	}
	if !domain.ValidEmail(input.Email) {
		fields["email"] = "valid email is required"
	}
	if input.Password != "" && len(input.Password) < minPasswordLength {
		fields["password"] = "password must be at least 6 characters"
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Message: "invalid profile", Fields: fields}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	i := findByID(users, userID)
	if i < 0 {
		return nil, domain.ErrUserNotFound
	}
	if j := findByEmail(users, input.Email); j >= 0 && j != i {
		return nil, domain.ErrEmailTaken
	}

	users[i].Name = strings.TrimSpace(input.Name)
	users[i].Email = input.Email
	if input.Password != "" {
		encrypted, err := s.cipher.Encrypt(input.Password)
		if err != nil {
			return nil, err
		}
		users[i].Password = encrypted
	}
	if err := s.users.SaveAll(ctx, users); err != nil {
		return nil, err
	}

	updated := users[i].Public()
	if err := s.users.SetCurrent(ctx, &updated); err != nil {
		s.log.Warn("refresh current user", zap.Error(err))
	}
	s.log.Info("profile updated", zap.String("user_id", userID))
	return &updated, nil
}

func (s *AccountService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	users := s.readUsers(ctx)
	i := findByID(users, id)
	if i < 0 {
		return nil, domain.ErrUserNotFound
	}
	u := users[i].Public()
	return &u, nil
}

// Start runs the idle-session reaper until ctx is done or Stop is called.
func (s *AccountService) Start(ctx context.Context) {
	s.mu.Lock()
	if s.stop != nil {
		s.mu.Unlock()
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	stop, done := s.stop, s.done
	s.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(s.tick)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case <-ticker.C:
				s.reap(ctx)
			}
		}
	}()
}

// Stop halts the reaper and waits for it to exit.
func (s *AccountService) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.mu.Unlock()
	if stop == nil {
		return
	}
	s.stopOnce.Do(func() { close(stop) })
	<-done
}

// reap force-logs-out every session past its idle deadline.
func (s *AccountService) reap(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	expired := 0
	for id, sess := range s.sessions {
		if now.After(sess.expires) {
			delete(s.sessions, id)
			expired++
			s.log.Info("session expired", zap.String("user_id", sess.userID))
		}
	}
	if expired > 0 && len(s.sessions) == 0 {
		if err := s.users.SetCurrent(ctx, nil); err != nil {
			s.log.Warn("clear current user", zap.Error(err))
		}
	}
	return expired
}

// open must be called with s.mu held.
func (s *AccountService) open(ctx context.Context, user domain.User) (*domain.Session, error) {
	id := uuid.NewString()
	token, err := s.tokens.Issue(id, user)
	if err != nil {
		return nil, err
	}
	sess := &session{token: token, userID: user.ID, expires: s.now().Add(s.idle)}
	s.sessions[id] = sess

	public := user.Public()
	if err := s.users.SetCurrent(ctx, &public); err != nil {
		delete(s.sessions, id)
		return nil, err
	}
	return &domain.Session{Token: token, User: public, IsAuthenticated: true, SessionTimeout: sess.expires}, nil
}

// live must be called with s.mu held.
func (s *AccountService) live(token string) (*session, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	sess, ok := s.sessions[claims.SessionID]
	if !ok {
		return nil, domain.ErrSessionExpired
	}
	if s.now().After(sess.expires) {
		delete(s.sessions, claims.SessionID)
		return nil, domain.ErrSessionExpired
	}
	return sess, nil
}

// view loads the current user record so profile edits show up in sessions.
func (s *AccountService) view(ctx context.Context, sess *session) (*domain.Session, error) {
	users := s.readUsers(ctx)
	i := findByID(users, sess.userID)
	if i < 0 {
		return nil, domain.ErrSessionExpired
	}
	return &domain.Session{
		Token:           sess.token,
		User:            users[i].Public(),
		IsAuthenticated: true,
		SessionTimeout:  sess.expires,
	}, nil
}

// readUsers treats an unreadable directory as empty. Writers keep failing on
// the same error so a corrupt list is never overwritten.
func (s *AccountService) readUsers(ctx context.Context) []domain.User {
	users, err := s.users.List(ctx)
	if err != nil {
		s.log.Error("list users", zap.Error(err))
		return nil
	}
	return users
}

func findByEmail(users []domain.User, email string) int {
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return i
		}
	}
	return -1
}

func findByID(users []domain.User, id string) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}

var _ AccountUseCase = (*AccountService)(nil)
