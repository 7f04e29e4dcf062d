package actors

import (
	stdctx "context"
	"log"
	"strings"
	"time"

	"blogspace/internal/database"
	"blogspace/internal/models"
	"blogspace/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Message types for user operations
type (
	RegisterUserMsg struct {
		Name     string
		Email    string
		Password string
		Avatar   string
		Bio      string
	}

	LoginMsg struct {
		Email    string
		Password string
	}

	GetUserProfileMsg struct {
		UserID uuid.UUID
	}
)

// UserActor owns registration, credential checks and profile lookups. Token
// issuance stays in the HTTP layer.
type UserActor struct {
	store   database.Store
	metrics *utils.MetricsCollector
}

func NewUserActor(store database.Store, metrics *utils.MetricsCollector) actor.Actor {
	return &UserActor{
		store:   store,
		metrics: metrics,
	}
}

func (a *UserActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("UserActor started")

	case *RegisterUserMsg:
		a.handleRegister(context, msg)

	case *LoginMsg:
		a.handleLogin(context, msg)

	case *GetUserProfileMsg:
		a.handleGetProfile(context, msg)

	default:
		log.Printf("UserActor: Unknown message type %T", msg)
	}
}

func (a *UserActor) handleRegister(context actor.Context, msg *RegisterUserMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	var fields []utils.FieldError
	if strings.TrimSpace(msg.Name) == "" {
		fields = append(fields, utils.FieldError{Field: "name", Message: "Name is required"})
	}
	email := strings.ToLower(strings.TrimSpace(msg.Email))
	if email == "" || !strings.Contains(email, "@") {
		fields = append(fields, utils.FieldError{Field: "email", Message: "A valid email is required"})
	}
	if len(msg.Password) < 6 {
		fields = append(fields, utils.FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	if len(fields) > 0 {
		context.Respond(utils.NewValidationError(fields...))
		return
	}

	// Check if the email is already registered
	if existing, err := a.store.GetUserByEmail(ctx, email); err == nil && existing != nil {
		log.Printf("Email already registered: %s", email)
		context.Respond(utils.NewAppError(utils.ErrUserAlreadyExists, "Email already registered", nil))
		return
	} else if err != nil && !utils.IsErrorCode(err, utils.ErrUserNotFound) {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to check existing user", err))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(msg.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to register user", err))
		return
	}

	newUser := &models.User{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(msg.Name),
		Email:          email,
		HashedPassword: string(hashedPassword),
		Avatar:         msg.Avatar,
		Bio:            msg.Bio,
		CreatedAt:      time.Now(),
	}

	if err := a.store.SaveUser(ctx, newUser); err != nil {
		log.Printf("Error saving user: %v", err)
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to register user", err))
		return
	}

	log.Printf("Registered user %s (%s)", newUser.ID, newUser.Email)
	a.metrics.AddOperationLatency("register_user", time.Since(startTime))
	context.Respond(newUser)
}

func (a *UserActor) handleLogin(context actor.Context, msg *LoginMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	email := strings.ToLower(strings.TrimSpace(msg.Email))

	user, err := a.store.GetUserByEmail(ctx, email)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrUserNotFound) {
			context.Respond(utils.NewAppError(utils.ErrInvalidCredentials, "Invalid email or password", nil))
			return
		}
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to process login", err))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(msg.Password)); err != nil {
		log.Printf("Failed login attempt for %s", email)
		context.Respond(utils.NewAppError(utils.ErrInvalidCredentials, "Invalid email or password", nil))
		return
	}

	a.metrics.AddOperationLatency("login_user", time.Since(startTime))
	context.Respond(user)
}

func (a *UserActor) handleGetProfile(context actor.Context, msg *GetUserProfileMsg) {
	ctx := stdctx.Background()

	user, err := a.store.GetUser(ctx, msg.UserID)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrUserNotFound) {
			context.Respond(utils.NewAppError(utils.ErrNotFound, "User not found", nil))
			return
		}
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to get user", err))
		return
	}

	context.Respond(user.Profile())
}
