package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	intconfig "toursbackend/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testEnv() intconfig.Env {
	var env intconfig.Env
	env.Auth.JWTSecret = testSecret
	env.Payments.SingleSuccess = true
	return env
}

func tokenFor(t *testing.T, userID, role string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func setupRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	intconfig.DB = db
	t.Cleanup(func() {
		intconfig.DB = nil
		db.Close()
	})
	return NewRouter(testEnv()), mock
}

func doJSON(r *gin.Engine, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestHealth(t *testing.T) {
	r, _ := setupRouter(t)
	w, body := doJSON(r, http.MethodGet, "/api/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	r, _ := setupRouter(t)
	w, body := doJSON(r, http.MethodPost, "/api/payments", "", `{"booking":"b-1","amount":"100"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body, "errors")
}

func TestProtectedRouteWithBadToken(t *testing.T) {
	r, _ := setupRouter(t)
	w, _ := doJSON(r, http.MethodGet, "/api/bookings", "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProcessPaymentEndpoint(t *testing.T) {
	r, mock := setupRouter(t)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("b-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "tour_id", "package_id", "travelers_count",
			"total_price", "status", "booking_date", "special_requests", "created_at", "updated_at"}).
			AddRow("b-1", "u-1", "t-1", nil, 4, "60000.00", "PENDING", now, "", now, now))
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO payments").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE bookings").WithArgs("CONFIRMED", sqlmock.AnyArg(), "b-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w, body := doJSON(r, http.MethodPost, "/api/payments", tokenFor(t, "u-1", "customer"),
		`{"booking":"b-1","amount":"60000.00","payment_method":"CREDIT_CARD","status":"FAILED","transaction_id":"mine"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "SUCCESS", data["status"])
	assert.Equal(t, "60000.00", data["amount"])
	assert.Equal(t, "CREDIT_CARD", data["payment_method"])
	assert.Regexp(t, `^TXN-[0-9A-F]{10}$`, data["transaction_id"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessPaymentEndpointOtherUsersBooking(t *testing.T) {
	r, mock := setupRouter(t)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("b-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "tour_id", "package_id", "travelers_count",
			"total_price", "status", "booking_date", "special_requests", "created_at", "updated_at"}).
			AddRow("b-1", "u-1", "t-1", nil, 4, "60000.00", "PENDING", now, "", now, now))
	mock.ExpectRollback()

	w, body := doJSON(r, http.MethodPost, "/api/payments", tokenFor(t, "u-2", ""), `{"booking":"b-1","amount":"10"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, body["success"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingEndpointValidation(t *testing.T) {
	r, mock := setupRouter(t)

	w, body := doJSON(r, http.MethodPost, "/api/bookings", tokenFor(t, "u-1", ""), `{"travelers_count":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "tour")
	assert.Contains(t, errs, "travelers_count")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveRefundRequiresAdmin(t *testing.T) {
	r, mock := setupRouter(t)

	w, _ := doJSON(r, http.MethodPatch, "/api/refunds/r-1/resolve", tokenFor(t, "u-1", "customer"), `{"status":"PROCESSED"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBookingNotFound(t *testing.T) {
	r, mock := setupRouter(t)

	mock.ExpectQuery("FROM bookings b").WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w, body := doJSON(r, http.MethodGet, "/api/bookings/missing", tokenFor(t, "u-1", ""), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
}

func TestUnknownRoute(t *testing.T) {
	r, _ := setupRouter(t)
	w, _ := doJSON(r, http.MethodGet, "/api/nope", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

var bookingColumns = []string{"id", "user_id", "tour_id", "package_id", "travelers_count",
	"total_price", "status", "booking_date", "special_requests", "created_at", "updated_at"}

func TestCreateBookingIgnoresServerOwnedFields(t *testing.T) {
	r, mock := setupRouter(t)

	mock.ExpectQuery(`SELECT id, base_price FROM tours WHERE id = \?`).WithArgs("t-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "base_price"}).AddRow("t-1", "15000.00"))
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(sqlmock.AnyArg(), "u-1", "t-1", nil, 4, sqlmock.AnyArg(), "PENDING",
			sqlmock.AnyArg(), "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	w, body := doJSON(r, http.MethodPost, "/api/bookings", tokenFor(t, "u-1", ""),
		`{"tour":"t-1","travelers_count":4,"user":"u-2","status":"CONFIRMED","total_price":"1.00"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := body["data"].(map[string]any)
	assert.Equal(t, "u-1", data["user"])
	assert.Equal(t, "PENDING", data["status"])
	assert.Equal(t, "60000.00", data["total_price"])
	assert.Equal(t, float64(4), data["travelers_count"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingPaymentConfirmsBooking(t *testing.T) {
	r, mock := setupRouter(t)
	token := tokenFor(t, "u-1", "")

	mock.ExpectQuery(`FROM tours`).WithArgs("t-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "base_price"}).AddRow("t-1", "15000.00"))
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(1, 1))

	w, body := doJSON(r, http.MethodPost, "/api/bookings", token, `{"tour":"t-1","travelers_count":4}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	booking := body["data"].(map[string]any)
	assert.Equal(t, "PENDING", booking["status"])
	assert.Equal(t, "60000.00", booking["total_price"])
	id := booking["id"].(string)
	require.NotEmpty(t, id)

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs(id).
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(id, "u-1", "t-1", nil, 4, "60000.00", "PENDING", now, "", now, now))
	mock.ExpectQuery("SELECT COUNT").WithArgs(id, "SUCCESS").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO payments").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE bookings").WithArgs("CONFIRMED", sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w, body = doJSON(r, http.MethodPost, "/api/payments", token, `{"booking":"`+id+`","amount":"60000.00"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "SUCCESS", body["data"].(map[string]any)["status"])

	mock.ExpectQuery("FROM bookings b").WithArgs(id).
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(id, "u-1", "t-1", nil, 4, "60000.00", "CONFIRMED", now, "", now, now))

	w, body = doJSON(r, http.MethodGet, "/api/bookings/"+id, token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "CONFIRMED", body["data"].(map[string]any)["status"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceUpdateAndDeleteEndpoints(t *testing.T) {
	r, mock := setupRouter(t)
	admin := tokenFor(t, "a-1", "admin")
	now := time.Now().UTC()
	invoiceRow := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "booking_id", "invoice_number", "amount", "status",
			"due_date", "created_date", "created_at", "updated_at", "user_id"}).
			AddRow("i-1", "b-1", "INV-20260101-AAAAAAAA", "10.00", "UNPAID", now, now, now, now, "u-1")
	}

	mock.ExpectQuery("FROM invoices i").WithArgs("i-1").WillReturnRows(invoiceRow())
	mock.ExpectExec("UPDATE invoices SET amount").WillReturnResult(sqlmock.NewResult(0, 1))

	w, body := doJSON(r, http.MethodPut, "/api/invoices/i-1", admin, `{"due_date":"2027-02-01"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "2027-02-01", body["data"].(map[string]any)["due_date"])

	mock.ExpectQuery("FROM invoices i").WithArgs("i-1").WillReturnRows(invoiceRow())
	mock.ExpectExec("DELETE FROM invoices").WithArgs("i-1").WillReturnResult(sqlmock.NewResult(0, 1))

	w, body = doJSON(r, http.MethodDelete, "/api/invoices/i-1", admin, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "invoice deleted", body["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRefundUpdateAndDeleteEndpoints(t *testing.T) {
	r, mock := setupRouter(t)
	token := tokenFor(t, "u-1", "")
	now := time.Now().UTC()
	refundRow := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "payment_id", "amount", "reason", "status",
			"processed_at", "created_at", "updated_at", "user_id"}).
			AddRow("r-1", "p-1", "5.00", "x", "PENDING", nil, now, now, "u-1")
	}

	mock.ExpectQuery("FROM refunds r").WithArgs("r-1").WillReturnRows(refundRow())
	mock.ExpectExec("UPDATE refunds SET amount").WillReturnResult(sqlmock.NewResult(0, 1))

	w, body := doJSON(r, http.MethodPatch, "/api/refunds/r-1", token, `{"reason":"trip cancelled"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "trip cancelled", body["data"].(map[string]any)["reason"])

	mock.ExpectQuery("FROM refunds r").WithArgs("r-1").WillReturnRows(refundRow())
	mock.ExpectExec("DELETE FROM refunds").WithArgs("r-1").WillReturnResult(sqlmock.NewResult(0, 1))

	w, _ = doJSON(r, http.MethodDelete, "/api/refunds/r-1", token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}
