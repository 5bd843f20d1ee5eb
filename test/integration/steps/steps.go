// Package steps provides step definitions for the BDD integration suite.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pairfin/backend/internal/application/usecase/auth"
	"github.com/pairfin/backend/internal/application/usecase/matching"
	"github.com/pairfin/backend/internal/application/usecase/notification"
	"github.com/pairfin/backend/internal/application/usecase/obligation"
	"github.com/pairfin/backend/internal/domain/entity"
	"github.com/pairfin/backend/internal/domain/valueobject"
	"github.com/pairfin/backend/internal/infra/server/router"
	"github.com/pairfin/backend/internal/integration/adapters"
	"github.com/pairfin/backend/internal/integration/cache"
	"github.com/pairfin/backend/internal/integration/entrypoint/controller"
	"github.com/pairfin/backend/internal/integration/entrypoint/middleware"
	"github.com/pairfin/backend/internal/integration/persistence"
	"github.com/pairfin/backend/internal/integration/persistence/model"
	"github.com/pairfin/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

type testContext struct {
	uri      string
	headers  map[string]string
	client   *http.Client
	response *response
	db       *mock.Db

	accessToken           string
	currentUserID         uuid.UUID
	currentPartnershipID  uuid.UUID
	currentAccountID      uuid.UUID
	currentObligationID   uuid.UUID
	currentNotificationID uuid.UUID
	lastTransactionID     uuid.UUID
	seededTransactions    int
}

type response struct {
	status int
	body   any
}

var serverInit sync.Once
var portInit sync.Once
var testDB *mock.Db
var testServerPort int

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
	})
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

// InitializeScenario registers all step definitions and per-scenario hooks.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:    fmt.Sprintf("http://localhost:%d", testServerPort),
		client: &http.Client{Timeout: 10 * time.Second},
		db: mock.NewDb("pairfin", map[string]any{
			"partnerships":    &model.PartnershipModel{},
			"users":           &model.UserModel{},
			"accounts":        &model.AccountModel{},
			"obligations":     &model.ObligationModel{},
			"transactions":    &model.TransactionModel{},
			"expense_matches": &model.MatchModel{},
			"match_runs":      &model.MatchRunModel{},
			"notifications":   &model.NotificationModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Seeding steps
	ctx.Given(`^a partnership exists with members "([^"]*)" and "([^"]*)"$`, test.aPartnershipExistsWithMembers)
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^the user "([^"]*)" is logged in$`, test.theUserIsLoggedIn)
	ctx.Given(`^an account "([^"]*)" exists with external id "([^"]*)"$`, test.anAccountExistsWithExternalID)
	ctx.Given(`^a monthly obligation "([^"]*)" exists with pattern "([^"]*)", expected amount "([^"]*)" and next due "([^"]*)"$`, test.aMonthlyObligationExists)
	ctx.Given(`^a settled transaction "([^"]*)" of "([^"]*)" on "([^"]*)" exists$`, test.aSettledTransactionExists)
	ctx.Given(`^a pending price change notification exists for the current user$`, test.aPendingPriceChangeNotificationExists)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.currentUserID = uuid.Nil
	t.currentPartnershipID = uuid.Nil
	t.currentAccountID = uuid.Nil
	t.currentObligationID = uuid.Nil
	t.currentNotificationID = uuid.Nil
	t.lastTransactionID = uuid.Nil
	t.seededTransactions = 0

	if t.db != nil {
		_ = t.db.ClearDB()
	}
	_ = mock.ClearRedis(mock.NewRedis())
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			db := testDB.DbConn

			// Repositories
			userRepo := persistence.NewUserRepository(db)
			accountRepo := persistence.NewAccountRepository(db)
			obligationRepo := persistence.NewObligationRepository(db)
			transactionRepo := persistence.NewTransactionRepository(db)
			matchRepo := persistence.NewMatchRepository(db)
			matchRunRepo := persistence.NewMatchRunRepository(db)
			notificationRepo := persistence.NewNotificationRepository(db)

			// Adapters/services
			passwordService := adapters.NewPasswordService()
			tokenService := adapters.NewTokenService(testJWTSecret, time.Hour)
			eventCache := cache.NewEventCache(mock.NewRedis())

			// Matching engine
			matchingConfig := valueobject.DefaultMatchingConfig()

			advancer := matching.NewDueDateAdvancer(obligationRepo, matchingConfig)
			notifier := matching.NewPriceChangeNotifier(notificationRepo, userRepo)
			rematchUseCase := matching.NewRematchObligationUseCase(
				obligationRepo, accountRepo, transactionRepo, matchRepo, matchRunRepo, advancer, matchingConfig,
			)
			incomeUseCase := matching.NewMatchIncomeUseCase(
				transactionRepo, accountRepo, obligationRepo, matchRepo, advancer, matchingConfig,
			)
			processUseCase := matching.NewProcessTransactionUseCase(
				transactionRepo, accountRepo, obligationRepo, matchRepo, advancer, notifier, incomeUseCase, matchingConfig,
			)
			suggestUseCase := matching.NewSuggestMatchesUseCase(
				obligationRepo, accountRepo, transactionRepo, matchingConfig,
			)

			// Use cases
			loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
			createObligationUseCase := obligation.NewCreateObligationUseCase(obligationRepo, rematchUseCase)
			getObligationUseCase := obligation.NewGetObligationUseCase(obligationRepo)
			listObligationsUseCase := obligation.NewListObligationsUseCase(obligationRepo)
			updateObligationUseCase := obligation.NewUpdateObligationUseCase(obligationRepo, rematchUseCase)
			deactivateObligationUseCase := obligation.NewDeactivateObligationUseCase(obligationRepo)
			listNotificationsUseCase := notification.NewListNotificationsUseCase(notificationRepo)
			actionNotificationUseCase := notification.NewActionNotificationUseCase(notificationRepo)

			// Controllers
			healthController := controller.NewHealthController(func() bool {
				return testDB != nil && testDB.DbConn != nil
			})
			authController := controller.NewAuthController(loginUseCase)
			obligationController := controller.NewObligationController(
				createObligationUseCase,
				getObligationUseCase,
				listObligationsUseCase,
				updateObligationUseCase,
				deactivateObligationUseCase,
				rematchUseCase,
				suggestUseCase,
			)
			notificationController := controller.NewNotificationController(
				listNotificationsUseCase,
				actionNotificationUseCase,
			)
			webhookController := controller.NewWebhookController(
				accountRepo, transactionRepo, eventCache, processUseCase,
			)

			// Middleware
			loginRateLimiter := middleware.NewRateLimiter()
			webhookRateLimiter := middleware.NewRateLimiterWithConfig(300, time.Minute)
			authMiddleware := middleware.NewAuthMiddleware(tokenService)

			r := router.NewRouter(
				healthController,
				authController,
				obligationController,
				notificationController,
				webhookController,
				loginRateLimiter,
				webhookRateLimiter,
				authMiddleware,
			)
			engine := r.Setup("test")

			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", testServerPort),
				Handler: engine,
			}
			_ = server.ListenAndServe()
		}()
	})

	// Wait for the server to come up.
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) aPartnershipExistsWithMembers(firstEmail, secondEmail string) error {
	now := time.Now().UTC()
	partnership := &model.PartnershipModel{
		ID:        uuid.New(),
		Name:      "Test Household",
		Timezone:  "UTC",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.db.DbConn.Create(partnership).Error; err != nil {
		return err
	}
	t.currentPartnershipID = partnership.ID

	for i, email := range []string{firstEmail, secondEmail} {
		userID, err := t.createUser(email, "SecurePass123!")
		if err != nil {
			return err
		}
		if i == 0 {
			t.currentUserID = userID
		}
	}
	return nil
}

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	if t.currentPartnershipID == uuid.Nil {
		now := time.Now().UTC()
		partnership := &model.PartnershipModel{
			ID:        uuid.New(),
			Name:      "Test Household",
			Timezone:  "UTC",
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := t.db.DbConn.Create(partnership).Error; err != nil {
			return err
		}
		t.currentPartnershipID = partnership.ID
	}

	userID, err := t.createUser(email, password)
	if err != nil {
		return err
	}
	t.currentUserID = userID
	return nil
}

func (t *testContext) createUser(email, password string) (uuid.UUID, error) {
	now := time.Now().UTC()
	user := &model.UserModel{
		ID:                 uuid.New(),
		PartnershipID:      t.currentPartnershipID,
		Email:              email,
		Name:               "Test User " + email,
		PasswordHash:       hashPassword(password),
		NotifyPriceChanges: true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := t.db.DbConn.Create(user).Error; err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}

func hashPassword(password string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashed)
}

func (t *testContext) theUserIsLoggedIn(email string) error {
	var user model.UserModel
	if err := t.db.DbConn.Where("email = ?", email).First(&user).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}
	t.currentUserID = user.ID

	tokenService := adapters.NewTokenService(testJWTSecret, time.Hour)
	token, err := tokenService.GenerateAccessToken(context.Background(), user.ID, user.PartnershipID, user.Email)
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}
	t.accessToken = token
	return nil
}

func (t *testContext) anAccountExistsWithExternalID(name, externalID string) error {
	now := time.Now().UTC()
	account := &model.AccountModel{
		ID:            uuid.New(),
		PartnershipID: t.currentPartnershipID,
		Name:          name,
		ExternalID:    externalID,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := t.db.DbConn.Create(account).Error; err != nil {
		return err
	}
	t.currentAccountID = account.ID
	return nil
}

func (t *testContext) aMonthlyObligationExists(name, pattern, amount, nextDue string) error {
	due, err := time.Parse("2006-01-02", nextDue)
	if err != nil {
		return fmt.Errorf("invalid next due date: %w", err)
	}
	expected, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid expected amount: %w", err)
	}

	now := time.Now().UTC()
	ob := &model.ObligationModel{
		ID:              uuid.New(),
		PartnershipID:   t.currentPartnershipID,
		Name:            name,
		MerchantPattern: &pattern,
		ExpectedAmount:  &expected,
		Recurrence:      string(valueobject.RecurrenceMonthly),
		NextDue:         due,
		Kind:            string(entity.ObligationKindExpense),
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := t.db.DbConn.Create(ob).Error; err != nil {
		return err
	}
	t.currentObligationID = ob.ID
	return nil
}

func (t *testContext) aSettledTransactionExists(description, amount, date string) error {
	settled, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid settlement date: %w", err)
	}
	parsedAmount, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	t.seededTransactions++
	now := time.Now().UTC()
	txn := &model.TransactionModel{
		ID:          uuid.New(),
		AccountID:   t.currentAccountID,
		ExternalID:  fmt.Sprintf("seed-tx-%d", t.seededTransactions),
		Description: description,
		Amount:      parsedAmount,
		Currency:    "EUR",
		SettledAt:   &settled,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := t.db.DbConn.Create(txn).Error; err != nil {
		return err
	}
	t.lastTransactionID = txn.ID
	return nil
}

func (t *testContext) aPendingPriceChangeNotificationExists() error {
	if t.lastTransactionID == uuid.Nil {
		if err := t.aSettledTransactionExists("NETFLIX.COM AMSTERDAM", "-22.99", "2026-03-03"); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	n := &model.NotificationModel{
		ID:             uuid.New(),
		UserID:         t.currentUserID,
		Type:           string(entity.NotificationTypePriceChange),
		ObligationID:   t.currentObligationID,
		TransactionID:  t.lastTransactionID,
		ExpectedAmount: decimal.RequireFromString("17.99"),
		ObservedAmount: decimal.RequireFromString("22.99"),
		DeliveryStatus: string(entity.DeliveryStatusPending),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := t.db.DbConn.Create(n).Error; err != nil {
		return err
	}
	t.currentNotificationID = n.ID
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{obligation_id}}", t.currentObligationID.String())
	content = strings.ReplaceAll(content, "{{notification_id}}", t.currentNotificationID.String())
	content = strings.ReplaceAll(content, "{{transaction_id}}", t.lastTransactionID.String())
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, reader)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	// Freshly created obligations become the current one for later steps.
	if ob, ok := responseBody["obligation"].(map[string]any); ok {
		if idStr, ok := ob["id"].(string); ok {
			if id, err := uuid.Parse(idStr); err == nil {
				t.currentObligationID = id
			}
		}
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}
	actual := fmt.Sprintf("%v", value)
	if actual != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actual)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	_, err := t.responseField(field)
	return err
}

func (t *testContext) responseField(field string) (any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	value := getFieldValue(t.response.body, field)
	if value == nil {
		return nil, fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	return value, nil
}

// getFieldValue walks a dot-separated path through a decoded JSON value.
// Numeric path segments index into arrays.
func getFieldValue(object any, dotSeparatedField string) any {
	field := object
	for _, segment := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}
		if i, err := strconv.Atoi(segment); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}
		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[segment]
	}
	return field
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	entityModel, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entityModel).Elem()
	slicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(slicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := slicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' (criteria %v), got %d", quantity, table, criteria, count)
	}
	return nil
}
