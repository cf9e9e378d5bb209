package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"accommodation_finder/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockAccommodationRepo(t *testing.T) (*AccommodationRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewAccommodationRepository(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func listingColumns() []string {
	return []string{"id", "title", "address", "price", "distance_from_university", "contact_email", "contact_phone", "broker_id"}
}

func expectRelations(m sqlmock.Sqlmock, listingID int, amenities []models.Amenity, photos []models.Photo) {
	amRows := sqlmock.NewRows([]string{"id", "name"})
	for _, a := range amenities {
		amRows.AddRow(a.ID, a.Name)
	}
	m.ExpectQuery(regexp.QuoteMeta(selectAmenitiesForListingSQL)).
		WithArgs(listingID).
		WillReturnRows(amRows)

	phRows := sqlmock.NewRows([]string{"id", "photo_url", "accommodation_id"})
	for _, p := range photos {
		phRows.AddRow(p.ID, p.PhotoURL, p.AccommodationID)
	}
	m.ExpectQuery(regexp.QuoteMeta(selectPhotosSQL)).
		WithArgs(listingID).
		WillReturnRows(phRows)
}

func TestAccommodationRepository_GetByID(t *testing.T) {
	repo, mock, cleanup := newMockAccommodationRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectAccommodationByIDSQL)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(listingColumns()).
			AddRow(1, "Room near campus", "Main St 1", 450.0, 1.2, "broker@agency.com", "+4912345", 3))
	expectRelations(mock, 1,
		[]models.Amenity{{ID: 1, Name: "WiFi"}, {ID: 2, Name: "Laundry"}},
		[]models.Photo{{ID: 5, PhotoURL: "https://img/1.jpg", AccommodationID: 1}})

	a, err := repo.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Title != "Room near campus" || a.BrokerID != 3 {
		t.Fatalf("unexpected listing: %+v", a)
	}
	if len(a.Amenities) != 2 || a.Amenities[0].Name != "WiFi" {
		t.Fatalf("unexpected amenities: %+v", a.Amenities)
	}
	if len(a.Photos) != 1 || a.Photos[0].PhotoURL != "https://img/1.jpg" {
		t.Fatalf("unexpected photos: %+v", a.Photos)
	}
}

func TestAccommodationRepository_GetByID_NotFound(t *testing.T) {
	repo, mock, cleanup := newMockAccommodationRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectAccommodationByIDSQL)).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(listingColumns()))

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAccommodationRepository_List(t *testing.T) {
	repo, mock, cleanup := newMockAccommodationRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectAccommodationsSQL)).
		WillReturnRows(sqlmock.NewRows(listingColumns()).
			AddRow(1, "Room near campus", "Main St 1", 450.0, 1.2, "a@b.c", "111", 3).
			AddRow(2, "Shared flat", "Side St 2", 300.0, 2.5, "a@b.c", "222", 3))
	expectRelations(mock, 1, nil, nil)
	expectRelations(mock, 2, nil, nil)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[1].Title != "Shared flat" {
		t.Fatalf("unexpected listings: %+v", got)
	}
}

func TestAccommodationRepository_ListByBroker_Empty(t *testing.T) {
	repo, mock, cleanup := newMockAccommodationRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectAccommodationsByBrokerSQL)).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows(listingColumns()))

	got, err := repo.ListByBroker(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestAccommodationRepository_Create(t *testing.T) {
	repo, mock, cleanup := newMockAccommodationRepo(t)
	defer cleanup()

	a := models.Accommodation{
		Title:                  "Room near campus",
		Address:                "Main St 1",
		Price:                  450,
		DistanceFromUniversity: 1.2,
		ContactEmail:           "a@b.c",
		ContactPhone:           "111",
		BrokerID:               3,
		Amenities:              []models.Amenity{{ID: 1}, {ID: 2}},
		Photos:                 []models.Photo{{PhotoURL: "https://img/1.jpg"}},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertAccommodationSQL)).
		WithArgs("Room near campus", "Main St 1", 450.0, 1.2, "a@b.c", "111", 3).
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertListingAmenitySQL)).
		WithArgs(10, 1).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertListingAmenitySQL)).
		WithArgs(10, 2).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertPhotoSQL)).
		WithArgs("https://img/1.jpg", 10).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	id, err := repo.Create(context.Background(), a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 10 {
		t.Fatalf("expected id 10, got %d", id)
	}
}

func TestAccommodationRepository_Create_InsertErrorRollsBack(t *testing.T) {
	repo, mock, cleanup := newMockAccommodationRepo(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertAccommodationSQL)).
		WithArgs("Room", "Main St 1", 0.0, 0.0, "a@b.c", "111", 3).
		WillReturnError(errors.New("db exec failed"))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), models.Accommodation{
		Title: "Room", Address: "Main St 1", ContactEmail: "a@b.c", ContactPhone: "111", BrokerID: 3,
	})
	if err == nil || !contains(err.Error(), "insert accommodation") {
		t.Fatalf("expected insert error, got %v", err)
	}
}

func TestAccommodationRepository_Update(t *testing.T) {
	repo, mock, cleanup := newMockAccommodationRepo(t)
	defer cleanup()

	a := models.Accommodation{
		ID:                     7,
		Title:                  "Updated",
		Address:                "Main St 1",
		Price:                  500,
		DistanceFromUniversity: 1.0,
		ContactEmail:           "a@b.c",
		ContactPhone:           "111",
		Amenities:              []models.Amenity{{ID: 4}},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(updateAccommodationSQL)).
		WithArgs("Updated", "Main St 1", 500.0, 1.0, "a@b.c", "111", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// The amenity set is fully replaced: clear, then reinsert.
	mock.ExpectExec(regexp.QuoteMeta(deleteListingAmenitySQL)).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(insertListingAmenitySQL)).
		WithArgs(7, 4).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := repo.Update(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAccommodationRepository_Update_NotFound(t *testing.T) {
	repo, mock, cleanup := newMockAccommodationRepo(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(updateAccommodationSQL)).
		WithArgs("Updated", "Main St 1", 0.0, 0.0, "a@b.c", "111", 99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), models.Accommodation{
		ID: 99, Title: "Updated", Address: "Main St 1", ContactEmail: "a@b.c", ContactPhone: "111",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAccommodationRepository_Delete_CascadesPhotosAndLinks(t *testing.T) {
	repo, mock, cleanup := newMockAccommodationRepo(t)
	defer cleanup()

	// Order matters: photos and amenity links go before the listing row.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deletePhotosByListingSQL)).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(deleteListingAmenitySQL)).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(deleteAccommodationSQL)).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Delete(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAccommodationRepository_Delete_NotFound(t *testing.T) {
	repo, mock, cleanup := newMockAccommodationRepo(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deletePhotosByListingSQL)).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(deleteListingAmenitySQL)).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(deleteAccommodationSQL)).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	if err := repo.Delete(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAccommodationRepository_AddPhoto(t *testing.T) {
	repo, mock, cleanup := newMockAccommodationRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(existsAccommodationSQL)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec(regexp.QuoteMeta(insertPhotoSQL)).
		WithArgs("https://img/2.jpg", 7).
		WillReturnResult(sqlmock.NewResult(8, 1))

	id, err := repo.AddPhoto(context.Background(), 7, "https://img/2.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 8 {
		t.Fatalf("expected photo id 8, got %d", id)
	}
}

func TestAccommodationRepository_AddPhoto_UnknownListing(t *testing.T) {
	repo, mock, cleanup := newMockAccommodationRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(existsAccommodationSQL)).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := repo.AddPhoto(context.Background(), 99, "https://img/2.jpg")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAccommodationRepository_DeletePhoto(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{"deleted", 1, nil},
		{"not found", 0, ErrNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockAccommodationRepo(t)
			defer cleanup()

			mock.ExpectExec(regexp.QuoteMeta(deletePhotoSQL)).
				WithArgs(4, 7).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := repo.DeletePhoto(context.Background(), 7, 4)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
