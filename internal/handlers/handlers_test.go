package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/leetwinoff/Airport-API-Service/config"
	"github.com/leetwinoff/Airport-API-Service/internal/models"
	"github.com/leetwinoff/Airport-API-Service/internal/server"
)

const testSecret = "handler-test-secret"

func setupTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	config.SeedRoles(db)

	r := gin.New()
	server.SetupRoutes(r, db)
	return r, db
}

func createUser(t *testing.T, db *gorm.DB, email, roleName string) *models.User {
	t.Helper()

	var role models.Role
	require.NoError(t, db.Where("name = ?", roleName).First(&role).Error)

	hashed, err := bcrypt.GenerateFromPassword([]byte("testpass123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{Email: email, Password: string(hashed), RoleID: role.ID}
	require.NoError(t, db.Create(&user).Error)
	user.Role = role
	return &user
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    user.Role.Name,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func createAirport(t *testing.T, db *gorm.DB, name, code, city string) *models.Airport {
	t.Helper()
	airport := models.Airport{Name: name, Code: code, ClosestBigCity: city}
	require.NoError(t, db.Create(&airport).Error)
	return &airport
}

func createFlight(t *testing.T, db *gorm.DB, rows, seatsInRow int, departure, arrival time.Time) *models.Flight {
	t.Helper()

	suffix := uuid.NewString()[:6]
	source := createAirport(t, db, "Src "+suffix, nextAirportCode(), "CityA")
	destination := createAirport(t, db, "Dst "+suffix, nextAirportCode(), "CityB")

	route := models.Route{SourceID: source.ID, DestinationID: destination.ID, Distance: 500}
	require.NoError(t, db.Create(&route).Error)

	airplaneType := models.AirplaneType{Brand: "Brand", Model: "M-" + suffix, DefaultRows: rows, DefaultSeatsInRow: seatsInRow}
	require.NoError(t, db.Create(&airplaneType).Error)

	airplane := models.Airplane{Name: "Plane " + suffix, Rows: rows, SeatsInRow: seatsInRow, AirplaneTypeID: airplaneType.ID}
	require.NoError(t, db.Create(&airplane).Error)

	flight := models.Flight{RouteID: route.ID, AirplaneID: airplane.ID, DepartureTime: departure, ArrivalTime: arrival}
	require.NoError(t, db.Create(&flight).Error)
	return &flight
}

var codeSeq int

func nextAirportCode() string {
	codeSeq++
	return string([]byte{
		byte('A' + codeSeq/676%26),
		byte('A' + codeSeq/26%26),
		byte('A' + codeSeq%26),
	})
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	r, _ := setupTestServer(t)

	for _, path := range []string{
		"/v1/crew-positions",
		"/v1/crews",
		"/v1/airports",
		"/v1/routes",
		"/v1/airplane-types",
		"/v1/airplanes",
		"/v1/flights",
		"/v1/orders",
		"/v1/tickets",
	} {
		rec := doJSON(r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestRegisterLoginAndProfile(t *testing.T) {
	r, _ := setupTestServer(t)

	rec := doJSON(r, http.MethodPost, "/v1/register", "", gin.H{
		"email":    "passenger@example.com",
		"password": "testpass123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// duplicate registration
	rec = doJSON(r, http.MethodPost, "/v1/register", "", gin.H{
		"email":    "passenger@example.com",
		"password": "testpass123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(r, http.MethodPost, "/v1/login", "", gin.H{
		"email":    "passenger@example.com",
		"password": "testpass123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var loginResp struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&loginResp))
	require.NotEmpty(t, loginResp.Access)
	require.NotEmpty(t, loginResp.Refresh)

	rec = doJSON(r, http.MethodGet, "/v1/me", loginResp.Access, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&profile))
	assert.Equal(t, "passenger@example.com", profile.Email)
	assert.Equal(t, models.RoleUser, profile.Role)
}

func TestRefreshRotationAndLogout(t *testing.T) {
	r, _ := setupTestServer(t)

	rec := doJSON(r, http.MethodPost, "/v1/register", "", gin.H{
		"email":    "rotate@example.com",
		"password": "testpass123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(r, http.MethodPost, "/v1/login", "", gin.H{
		"email":    "rotate@example.com",
		"password": "testpass123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var loginResp struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&loginResp))

	rec = doJSON(r, http.MethodPost, "/v1/token/refresh", "", gin.H{"refresh_token": loginResp.Refresh})
	require.Equal(t, http.StatusOK, rec.Code)

	var refreshResp struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&refreshResp))
	assert.NotEqual(t, loginResp.Refresh, refreshResp.Refresh)

	// the rotated-out token is no longer accepted
	rec = doJSON(r, http.MethodPost, "/v1/token/refresh", "", gin.H{"refresh_token": loginResp.Refresh})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(r, http.MethodPost, "/v1/logout", refreshResp.Access, gin.H{"refresh_token": refreshResp.Refresh})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(r, http.MethodPost, "/v1/token/refresh", "", gin.H{"refresh_token": refreshResp.Refresh})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCatalogMutationRequiresAdmin(t *testing.T) {
	r, db := setupTestServer(t)

	user := createUser(t, db, "user@example.com", models.RoleUser)
	admin := createUser(t, db, "admin@example.com", models.RoleAdmin)

	payload := gin.H{"name": "Heathrow", "code": "LHR", "closest_big_city": "London"}

	rec := doJSON(r, http.MethodPost, "/v1/airports", tokenFor(t, user), payload)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(r, http.MethodPost, "/v1/airports", tokenFor(t, admin), payload)
	assert.Equal(t, http.StatusCreated, rec.Code)

	// reads stay open to any authenticated user
	rec = doJSON(r, http.MethodGet, "/v1/airports", tokenFor(t, user), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var airports []models.Airport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&airports))
	assert.Len(t, airports, 1)
}

func TestAirportFilters(t *testing.T) {
	r, db := setupTestServer(t)
	user := createUser(t, db, "user@example.com", models.RoleUser)
	token := tokenFor(t, user)

	createAirport(t, db, "Boryspil", "KBP", "Kyiv")
	createAirport(t, db, "Heathrow", "LHR", "London")

	rec := doJSON(r, http.MethodGet, "/v1/airports?name=bory", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var airports []models.Airport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&airports))
	require.Len(t, airports, 1)
	assert.Equal(t, "Boryspil", airports[0].Name)

	rec = doJSON(r, http.MethodGet, "/v1/airports?closest_big_city=lond", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	airports = nil
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&airports))
	require.Len(t, airports, 1)
	assert.Equal(t, "LHR", airports[0].Code)
}

func TestRouteDistanceFilter(t *testing.T) {
	r, db := setupTestServer(t)
	user := createUser(t, db, "user@example.com", models.RoleUser)
	token := tokenFor(t, user)

	a := createAirport(t, db, "Alpha", "AAA", "CityA")
	b := createAirport(t, db, "Beta", "BBB", "CityB")

	short := models.Route{SourceID: a.ID, DestinationID: b.ID, Distance: 100}
	require.NoError(t, db.Create(&short).Error)
	long := models.Route{SourceID: b.ID, DestinationID: a.ID, Distance: 200}
	require.NoError(t, db.Create(&long).Error)

	rec := doJSON(r, http.MethodGet, "/v1/routes?distance=150", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var routes []models.Route
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&routes))
	require.Len(t, routes, 1)
	assert.Equal(t, float64(200), routes[0].Distance)

	// non-numeric distance is ignored, not an error
	rec = doJSON(r, http.MethodGet, "/v1/routes?distance=far", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	routes = nil
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&routes))
	assert.Len(t, routes, 2)

	rec = doJSON(r, http.MethodGet, "/v1/routes?source=alp", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	routes = nil
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&routes))
	require.Len(t, routes, 1)
	assert.Equal(t, "Alpha", routes[0].Source.Name)
}

func TestFlightListFilters(t *testing.T) {
	r, db := setupTestServer(t)
	user := createUser(t, db, "user@example.com", models.RoleUser)
	token := tokenFor(t, user)

	day1 := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 9, 11, 8, 0, 0, 0, time.UTC)
	flight1 := createFlight(t, db, 10, 6, day1, day1.Add(5*time.Hour))
	createFlight(t, db, 2, 2, day2, day2.Add(3*time.Hour))

	rec := doJSON(r, http.MethodGet, "/v1/flights?departure_date=2026-09-10", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var flights []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&flights))
	require.Len(t, flights, 1)
	assert.Equal(t, flight1.ID.String(), flights[0]["ID"])
	assert.Equal(t, float64(60), flights[0]["AvailableTickets"])

	// capacity 60 passes a >=10 bar, capacity 4 does not
	rec = doJSON(r, http.MethodGet, "/v1/flights?available_tickets=10", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	flights = nil
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&flights))
	require.Len(t, flights, 1)
	assert.Equal(t, flight1.ID.String(), flights[0]["ID"])

	rec = doJSON(r, http.MethodGet, "/v1/flights?arrival_date=2026-09-11", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	flights = nil
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&flights))
	assert.Len(t, flights, 1)

	// malformed date filter is ignored
	rec = doJSON(r, http.MethodGet, "/v1/flights?departure_date=not-a-date", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	flights = nil
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&flights))
	assert.Len(t, flights, 2)
}

func TestBookingFlowOverAPI(t *testing.T) {
	r, db := setupTestServer(t)
	user := createUser(t, db, "user@example.com", models.RoleUser)
	token := tokenFor(t, user)

	departure := time.Now().UTC().Add(24 * time.Hour)
	flight := createFlight(t, db, 10, 6, departure, departure.Add(2*time.Hour))

	rec := doJSON(r, http.MethodPost, "/v1/orders", token, gin.H{
		"tickets": []gin.H{
			{"flight_id": flight.ID, "row": 1, "seat": 1},
			{"flight_id": flight.ID, "row": 1, "seat": 2},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// same seat again conflicts
	rec = doJSON(r, http.MethodPost, "/v1/orders", token, gin.H{
		"tickets": []gin.H{
			{"flight_id": flight.ID, "row": 1, "seat": 1},
		},
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// seat outside the grid
	rec = doJSON(r, http.MethodPost, "/v1/orders", token, gin.H{
		"tickets": []gin.H{
			{"flight_id": flight.ID, "row": 11, "seat": 1},
		},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var ticketCount int64
	require.NoError(t, db.Model(&models.Ticket{}).Count(&ticketCount).Error)
	assert.Equal(t, int64(2), ticketCount)

	rec = doJSON(r, http.MethodGet, fmt.Sprintf("/v1/flights/%s", flight.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		AvailableTickets int64 `json:"available_tickets"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&detail))
	assert.Equal(t, int64(58), detail.AvailableTickets)

	// other users do not see this order
	other := createUser(t, db, "other@example.com", models.RoleUser)
	rec = doJSON(r, http.MethodGet, "/v1/orders", tokenFor(t, other), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listResp struct {
		Total int64 `json:"total"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listResp))
	assert.Zero(t, listResp.Total)

	rec = doJSON(r, http.MethodGet, "/v1/orders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listResp))
	assert.Equal(t, int64(1), listResp.Total)
}

func TestSingleTicketCreatesImplicitOrder(t *testing.T) {
	r, db := setupTestServer(t)
	user := createUser(t, db, "user@example.com", models.RoleUser)
	token := tokenFor(t, user)

	departure := time.Now().UTC().Add(24 * time.Hour)
	flight := createFlight(t, db, 10, 6, departure, departure.Add(2*time.Hour))

	rec := doJSON(r, http.MethodPost, "/v1/tickets", token, gin.H{
		"flight_id": flight.ID,
		"row":       2,
		"seat":      3,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Equal(t, int64(1), orderCount)

	var order models.Order
	require.NoError(t, db.Preload("Tickets").First(&order).Error)
	assert.Equal(t, user.ID, order.UserID)
	require.Len(t, order.Tickets, 1)
	assert.Equal(t, 2, order.Tickets[0].Row)
	assert.Equal(t, 3, order.Tickets[0].Seat)
}

func TestAppendTicketsEndpoint(t *testing.T) {
	r, db := setupTestServer(t)
	user := createUser(t, db, "user@example.com", models.RoleUser)
	other := createUser(t, db, "other@example.com", models.RoleUser)
	token := tokenFor(t, user)

	departure := time.Now().UTC().Add(24 * time.Hour)
	flight := createFlight(t, db, 10, 6, departure, departure.Add(2*time.Hour))

	rec := doJSON(r, http.MethodPost, "/v1/orders", token, gin.H{
		"tickets": []gin.H{{"flight_id": flight.ID, "row": 1, "seat": 1}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Order struct {
			ID string `json:"ID"`
		} `json:"order"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	require.NotEmpty(t, created.Order.ID)

	path := fmt.Sprintf("/v1/orders/%s/tickets", created.Order.ID)
	rec = doJSON(r, http.MethodPost, path, token, gin.H{
		"tickets": []gin.H{{"flight_id": flight.ID, "row": 1, "seat": 2}},
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	// another user cannot extend someone else's order
	rec = doJSON(r, http.MethodPost, path, tokenFor(t, other), gin.H{
		"tickets": []gin.H{{"flight_id": flight.ID, "row": 1, "seat": 3}},
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTicketQR(t *testing.T) {
	r, db := setupTestServer(t)
	user := createUser(t, db, "user@example.com", models.RoleUser)
	other := createUser(t, db, "other@example.com", models.RoleUser)
	token := tokenFor(t, user)

	departure := time.Now().UTC().Add(24 * time.Hour)
	flight := createFlight(t, db, 10, 6, departure, departure.Add(2*time.Hour))

	rec := doJSON(r, http.MethodPost, "/v1/tickets", token, gin.H{
		"flight_id": flight.ID,
		"row":       1,
		"seat":      1,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var ticket models.Ticket
	require.NoError(t, db.First(&ticket).Error)

	rec = doJSON(r, http.MethodGet, fmt.Sprintf("/v1/tickets/%s/qr", ticket.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())

	rec = doJSON(r, http.MethodGet, fmt.Sprintf("/v1/tickets/%s/qr", ticket.ID), tokenFor(t, other), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
