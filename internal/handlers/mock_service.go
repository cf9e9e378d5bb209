package handlers

import (
	"context"
	"net/http"
	"time"

	"accommodation_finder/internal/models"
	"accommodation_finder/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpUser    *models.User
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseIdentity service.Identity
	parseErr      error

	lastSignUp      service.RegisterInput
	lastGenUsername string
	lastGenPassword string
	lastParseToken  string
}

func (m *mockAuth) SignUp(ctx context.Context, in service.RegisterInput) (*models.User, error) {
	m.lastSignUp = in
	return m.signUpUser, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (service.Identity, error) {
	m.lastParseToken = token
	return m.parseIdentity, m.parseErr
}

type mockListings struct {
	listResp []models.Accommodation
	listErr  error

	getResp *models.Accommodation
	getErr  error

	byBrokerResp []models.Accommodation
	byBrokerErr  error

	createResp *models.Accommodation
	createErr  error
	updateResp *models.Accommodation
	updateErr  error
	deleteErr  error

	photoResp      *models.Photo
	photoErr       error
	removePhotoErr error

	lastCreateInput service.ListingInput
	lastUpdateID    int
	lastUpdateInput service.ListingInput
	lastDeleteID    int
	lastActor       service.Identity
	lastPhotoURL    string
	lastPhotoID     int
}

func (m *mockListings) List(ctx context.Context) ([]models.Accommodation, error) {
	return m.listResp, m.listErr
}
func (m *mockListings) Get(ctx context.Context, id int) (*models.Accommodation, error) {
	return m.getResp, m.getErr
}
func (m *mockListings) ListByBroker(ctx context.Context, brokerID int) ([]models.Accommodation, error) {
	return m.byBrokerResp, m.byBrokerErr
}
func (m *mockListings) Create(ctx context.Context, in service.ListingInput, actor service.Identity) (*models.Accommodation, error) {
	m.lastCreateInput = in
	m.lastActor = actor
	return m.createResp, m.createErr
}
func (m *mockListings) Update(ctx context.Context, id int, in service.ListingInput, actor service.Identity) (*models.Accommodation, error) {
	m.lastUpdateID = id
	m.lastUpdateInput = in
	m.lastActor = actor
	return m.updateResp, m.updateErr
}
func (m *mockListings) Delete(ctx context.Context, id int, actor service.Identity) error {
	m.lastDeleteID = id
	m.lastActor = actor
	return m.deleteErr
}
func (m *mockListings) AddPhoto(ctx context.Context, listingID int, photoURL string, actor service.Identity) (*models.Photo, error) {
	m.lastPhotoURL = photoURL
	m.lastActor = actor
	return m.photoResp, m.photoErr
}
func (m *mockListings) RemovePhoto(ctx context.Context, listingID, photoID int, actor service.Identity) error {
	m.lastPhotoID = photoID
	m.lastActor = actor
	return m.removePhotoErr
}

type mockAmenities struct {
	listResp   []models.Amenity
	listErr    error
	createResp *models.Amenity
	createErr  error

	lastCreateName string
}

func (m *mockAmenities) List(ctx context.Context) ([]models.Amenity, error) {
	return m.listResp, m.listErr
}
func (m *mockAmenities) Create(ctx context.Context, name string, actor service.Identity) (*models.Amenity, error) {
	m.lastCreateName = name
	return m.createResp, m.createErr
}

type mockEventLog struct {
	resp       []models.ListingEvent
	err        error
	lastFrom   time.Time
	lastTo     time.Time
	lastType   string
	lastListID int
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.ListingEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	m.lastListID = f.ListingID
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
