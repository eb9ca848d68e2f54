package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/2beens/runanalysis/internal/auth"
	"github.com/2beens/runanalysis/internal/logging"
	"github.com/2beens/runanalysis/internal/middleware"
	"github.com/2beens/runanalysis/internal/telemetry/metrics"
	"github.com/2beens/runanalysis/internal/telemetry/tracing"
	"github.com/2beens/runanalysis/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=users_mocks_test.go -package=users_test

type usersRepo interface {
	Add(ctx context.Context, newUser NewUser) (*User, error)
	Get(ctx context.Context, id int) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
}

type sessionService interface {
	Login(ctx context.Context, userID int) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
	RevokeAll(ctx context.Context, userID int) error
}

type recoveryTokenStore interface {
	Issue(ctx context.Context, userID int) (string, error)
	Redeem(ctx context.Context, token string) (int, error)
}

type recoverySender interface {
	SendRecovery(ctx context.Context, to, username, link string) error
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type RecoveryRequest struct {
	Email string `json:"email"`
}

type ResetRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// recoveryResponseMessage is the same whether the email exists or not.
const recoveryResponseMessage = `{"message":"if the email is registered, a recovery link has been sent"}`

type HandlerParams struct {
	Repo            usersRepo
	Sessions        sessionService
	RecoveryTokens  recoveryTokenStore
	Mailer          recoverySender
	RecoveryLinkURL string
	MetricsManager  *metrics.Manager
	// HashPassword is injectable, bcrypt with production cost is slow in tests
	HashPassword func(password string) (string, error)
}

type Handler struct {
	repo            usersRepo
	sessions        sessionService
	recoveryTokens  recoveryTokenStore
	mailer          recoverySender
	recoveryLinkURL string
	metricsManager  *metrics.Manager
	hashPassword    func(password string) (string, error)
}

func NewHandler(params HandlerParams) *Handler {
	hashPassword := params.HashPassword
	if hashPassword == nil {
		hashPassword = pkg.HashPassword
	}
	return &Handler{
		repo:            params.Repo,
		sessions:        params.Sessions,
		recoveryTokens:  params.RecoveryTokens,
		mailer:          params.Mailer,
		recoveryLinkURL: params.RecoveryLinkURL,
		metricsManager:  params.MetricsManager,
		hashPassword:    hashPassword,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	allowedPerMin int,
) {
	mainRouter.HandleFunc("/me", handler.HandleMe).Methods("GET", "OPTIONS").Name("me")

	accountSubrouter := mainRouter.PathPrefix("/a").Subrouter()
	accountSubrouter.HandleFunc("/register", handler.HandleRegister).Methods("POST", "OPTIONS").Name("register")
	accountSubrouter.HandleFunc("/login", handler.HandleLogin).Methods("POST", "OPTIONS").Name("login")
	accountSubrouter.HandleFunc("/logout", handler.HandleLogout).Methods("GET", "OPTIONS").Name("logout")
	accountSubrouter.HandleFunc("/recovery", handler.HandleRecovery).Methods("POST", "OPTIONS").Name("recovery")
	accountSubrouter.HandleFunc("/reset", handler.HandleReset).Methods("POST", "OPTIONS").Name("reset")

	// rate limit the account endpoints to prevent abuse
	accountSubrouter.Use(middleware.RateLimit(rateLimiter, "account", allowedPerMin, handler.metricsManager))
}

func (handler *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.register")
	defer span.End()

	var req RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := ValidateUsername(req.Username); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	email, err := NormalizeEmail(req.Email)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := ValidatePassword(req.Password); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	passwordHash, err := handler.hashPassword(req.Password)
	if err != nil {
		log.Errorf("register [%s], hash password: %s", req.Username, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	user, err := handler.repo.Add(ctx, NewUser{
		Username:     req.Username,
		Email:        email,
		PasswordHash: passwordHash,
	})
	if errors.Is(err, ErrUserExists) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	} else if err != nil {
		logging.Failure("users.Add", err, log.Fields{"username": req.Username})
		http.Error(w, "failed to register user", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterRegistrations.Inc()

	userJson, err := json.Marshal(user)
	if err != nil {
		log.Errorf("failed to marshal user: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	log.Debugf("new user registered: [%d] %s", user.ID, user.Username)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, userJson, http.StatusCreated)
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.login")
	defer span.End()

	var loginReq LoginRequest
	if !decodeJSON(w, r, &loginReq) {
		return
	}

	if loginReq.Username == "" {
		http.Error(w, "error, username empty", http.StatusBadRequest)
		return
	}
	if loginReq.Password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return
	}

	user, err := handler.repo.GetByUsername(ctx, loginReq.Username)
	if errors.Is(err, ErrUserNotFound) {
		log.Tracef("[username] failed login attempt for user: %s", loginReq.Username)
		handler.metricsManager.CounterLogins.WithLabelValues("failed").Inc()
		http.Error(w, "error, wrong credentials", http.StatusBadRequest)
		return
	} else if err != nil {
		logging.Failure("users.GetByUsername", err, log.Fields{"username": loginReq.Username})
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if !pkg.CheckPasswordHash(loginReq.Password, user.PasswordHash) {
		log.Tracef("[password] failed login attempt for user: %s", loginReq.Username)
		handler.metricsManager.CounterLogins.WithLabelValues("failed").Inc()
		http.Error(w, "error, wrong credentials", http.StatusBadRequest)
		return
	}

	token, err := handler.sessions.Login(ctx, user.ID)
	if err != nil {
		logging.Failure("auth.Login", err, log.Fields{"user_id": user.ID})
		http.Error(w, "generate token error", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterLogins.WithLabelValues("success").Inc()

	loginRespJson, err := json.Marshal(LoginResponse{
		Token: token,
		User:  user,
	})
	if err != nil {
		log.Errorf("failed to marshal login response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	log.Tracef("new login success: %d", user.ID)
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, loginRespJson)
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.logout")
	defer span.End()

	authToken := r.Header.Get(middleware.AuthTokenHeader)
	if authToken == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	loggedOut, err := handler.sessions.Logout(ctx, authToken)
	if err != nil {
		logging.Failure("auth.Logout", err, nil)
		http.Error(w, "no can do", http.StatusInternalServerError)
		return
	}
	if !loggedOut {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}

func (handler *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.me")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	user, err := handler.repo.Get(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	} else if err != nil {
		logging.Failure("users.Get", err, log.Fields{"user_id": userID})
		http.Error(w, "failed to get user", http.StatusInternalServerError)
		return
	}

	userJson, err := json.Marshal(user)
	if err != nil {
		log.Errorf("failed to marshal user: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, userJson)
}

// HandleRecovery emails a password reset link. Email delivery is tried once,
// on failure the user is asked to try again later.
func (handler *Handler) HandleRecovery(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.recovery")
	defer span.End()

	var req RecoveryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	email, err := NormalizeEmail(req.Email)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := handler.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		log.Tracef("recovery requested for unknown email")
		pkg.WriteJSONResponseOK(w, recoveryResponseMessage)
		return
	} else if err != nil {
		logging.Failure("users.GetByEmail", err, nil)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	token, err := handler.recoveryTokens.Issue(ctx, user.ID)
	if err != nil {
		logging.Failure("auth.RecoveryTokens.Issue", err, log.Fields{"user_id": user.ID})
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	link := handler.recoveryLinkURL + "?" + url.Values{"token": {token}}.Encode()
	if err := handler.mailer.SendRecovery(ctx, user.Email, user.Username, link); err != nil {
		logging.Failure("mailer.SendRecovery", err, log.Fields{"user_id": user.ID})
		handler.metricsManager.CounterRecoveryEmails.WithLabelValues("failed").Inc()
		http.Error(w, "could not send the recovery email, please try again later", http.StatusServiceUnavailable)
		return
	}

	handler.metricsManager.CounterRecoveryEmails.WithLabelValues("sent").Inc()
	pkg.WriteJSONResponseOK(w, recoveryResponseMessage)
}

func (handler *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.reset")
	defer span.End()

	var req ResetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := ValidatePassword(req.Password); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	userID, err := handler.recoveryTokens.Redeem(ctx, req.Token)
	if errors.Is(err, auth.ErrRecoveryTokenNotFound) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	} else if err != nil {
		logging.Failure("auth.RecoveryTokens.Redeem", err, nil)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	passwordHash, err := handler.hashPassword(req.Password)
	if err != nil {
		log.Errorf("reset password [%d], hash password: %s", userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := handler.repo.UpdatePassword(ctx, userID, passwordHash); errors.Is(err, ErrUserNotFound) {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	} else if err != nil {
		logging.Failure("users.UpdatePassword", err, log.Fields{"user_id": userID})
		http.Error(w, "failed to reset password", http.StatusInternalServerError)
		return
	}

	// sessions opened with the old password must not survive the reset
	if err := handler.sessions.RevokeAll(ctx, userID); err != nil {
		logging.Failure("auth.Service.RevokeAll", err, log.Fields{"user_id": userID})
		http.Error(w, "password changed, failed to end open sessions", http.StatusInternalServerError)
		return
	}

	log.Debugf("password reset for user %d", userID)
	pkg.WriteTextResponseOK(w, "password-reset")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Tracef("%s, unmarshal json params: %s", r.URL.Path, err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}
